package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/sessionprobe/internal/service"
	"github.com/aussiebroadwan/sessionprobe/internal/store"
	"github.com/aussiebroadwan/sessionprobe/pkg/httpx"
	"github.com/aussiebroadwan/sessionprobe/pkg/probesdk"
)

// MaxItemSize caps a stored value. Browsers give localStorage ~5 MiB per
// origin; a session token or user record is far below this.
const MaxItemSize = 64 << 10

type ItemsHandler struct {
	SessionService *service.SessionService
}

// HandleList lists the stored items of a profile.
//
//	@Summary	List client storage items
//	@Tags		Storage
//	@Produce	json
//	@Param		profile	path		string	true	"Profile name"
//	@Success	200		{object}	probesdk.ListItemsResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/profiles/{profile}/items [get].
func (h *ItemsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profile := r.PathValue("profile")

	items, err := h.SessionService.ListItems(r.Context(), profile)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := probesdk.ListItemsResponse{
		Profile: profile,
		Items:   make([]probesdk.ItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet returns one stored item.
//
//	@Summary	Get a client storage item
//	@Tags		Storage
//	@Produce	json
//	@Param		profile	path		string	true	"Profile name"
//	@Param		key		path		string	true	"Item key"
//	@Success	200		{object}	probesdk.ItemResponse
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Router		/v1/profiles/{profile}/items/{key} [get].
func (h *ItemsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.SessionService.GetItem(r.Context(), r.PathValue("profile"), r.PathValue("key"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toItemResponse(item))
}

// HandlePut stores the raw request body as the item's value.
//
//	@Summary	Set a client storage item
//	@Tags		Storage
//	@Accept		plain
//	@Param		profile	path	string	true	"Profile name"
//	@Param		key		path	string	true	"Item key"
//	@Success	204
//	@Failure	400	{object}	httpx.ErrorResponse
//	@Failure	413	{object}	httpx.ErrorResponse
//	@Router		/v1/profiles/{profile}/items/{key} [put].
func (h *ItemsHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxItemSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.WriteError(w, http.StatusRequestEntityTooLarge,
				httpx.ErrorCodePayloadTooLarge, "item value exceeds 64 KiB")
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeInvalidRequest, "unreadable body")
		return
	}

	if err := h.SessionService.SetItem(r.Context(), r.PathValue("profile"), r.PathValue("key"), string(body)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes one stored item.
//
//	@Summary	Remove a client storage item
//	@Tags		Storage
//	@Param		profile	path	string	true	"Profile name"
//	@Param		key		path	string	true	"Item key"
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/v1/profiles/{profile}/items/{key} [delete].
func (h *ItemsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionService.RemoveItem(r.Context(), r.PathValue("profile"), r.PathValue("key")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleClear removes every item of a profile.
//
//	@Summary	Clear a profile
//	@Tags		Storage
//	@Produce	json
//	@Param		profile	path		string	true	"Profile name"
//	@Success	200		{object}	probesdk.ClearProfileResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Router		/v1/profiles/{profile} [delete].
func (h *ItemsHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	profile := r.PathValue("profile")

	n, err := h.SessionService.ClearProfile(r.Context(), profile)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, probesdk.ClearProfileResponse{Profile: profile, Removed: n})
}

func toItemResponse(item store.Item) probesdk.ItemResponse {
	return probesdk.ItemResponse{
		Profile:   item.Profile,
		Key:       item.Key,
		Value:     item.Value,
		UpdatedAt: item.UpdatedAt,
	}
}
