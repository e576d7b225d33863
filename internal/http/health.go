package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/sessionprobe/internal/store"
	"github.com/aussiebroadwan/sessionprobe/pkg/httpx"
	"github.com/aussiebroadwan/sessionprobe/pkg/probesdk"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always returns 200 OK while the process is serving
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	probesdk.HealthResponse
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, probesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Returns 503 when client storage cannot be reached
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	probesdk.HealthResponse
//	@Failure		503	{object}	probesdk.HealthResponse
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &probesdk.HealthChecks{Storage: "ok"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Storage = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, probesdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
