package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/sessionprobe/internal/service"
	"github.com/aussiebroadwan/sessionprobe/internal/store"
	"github.com/aussiebroadwan/sessionprobe/pkg/httpx"
	"github.com/aussiebroadwan/sessionprobe/pkg/inspect"
	"github.com/aussiebroadwan/sessionprobe/pkg/slogx"
)

type SessionHandler struct {
	SessionService *service.SessionService
}

// HandleInspectProfile inspects the client storage stored for a profile.
//
//	@Summary		Inspect a stored session
//	@Description	Reports token/user presence, the decoded user record and whether path is the admin route.
//	@Description	A malformed user record is reported as user=null, never as an error.
//	@Tags			Session
//	@Produce		json
//	@Param			profile	path		string	true	"Profile name"
//	@Param			path	query		string	false	"Navigation path of the client"
//	@Success		200		{object}	probesdk.InspectionResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Router			/v1/profiles/{profile}/session [get].
func (h *SessionHandler) HandleInspectProfile(w http.ResponseWriter, r *http.Request) {
	profile := r.PathValue("profile")

	res, err := h.SessionService.InspectProfile(r.Context(), profile, r.URL.Query().Get("path"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleDebugSession inspects the calling browser's own session state, taken
// from its cookies. Only mounted when debug endpoints are enabled.
//
//	@Summary		Inspect the caller's session
//	@Description	Reads the token and user cookies of the request. The path is taken from X-Client-Path, the path query parameter or the Referer.
//	@Tags			Debug
//	@Produce		json
//	@Param			path			query		string	false	"Navigation path of the client"
//	@Param			X-Client-Path	header		string	false	"Navigation path of the client"
//	@Success		200				{object}	probesdk.InspectionResponse
//	@Router			/debug/session [get].
func (h *SessionHandler) HandleDebugSession(w http.ResponseWriter, r *http.Request) {
	ctx := slogx.WithContext(r.Context(), slogx.FromContext(r.Context()).With("source", "cookies"))

	res, err := h.SessionService.InspectClient(ctx,
		httpx.NewCookieStorage(r),
		inspect.PathFunc(func() string { return httpx.ClientPath(r) }),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, res)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case service.IsClientError(err):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorCodeInvalidRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrorCodeNotFound, "item not found")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrorCodeServerError, "internal server error")
	}
}
