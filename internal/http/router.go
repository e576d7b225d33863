package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/sessionprobe/internal/service"
	"github.com/aussiebroadwan/sessionprobe/internal/store"
	"github.com/aussiebroadwan/sessionprobe/pkg/httpx"
	"github.com/aussiebroadwan/sessionprobe/pkg/slogx"

	_ "github.com/aussiebroadwan/sessionprobe/api/probe" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	SessionService *service.SessionService

	// DebugEndpoints mounts /debug/session. Off unless explicitly enabled.
	DebugEndpoints bool
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerItems()
	r.registerDebug()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			sessionprobe API
//	@version		0.1.0
//	@description	Inspects persisted client-side session state (auth token, user record, admin route).
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSessions() {
	h := &SessionHandler{SessionService: r.SessionService}

	r.Mux.Handle("GET /v1/profiles/{profile}/session",
		httpx.Chain(http.HandlerFunc(h.HandleInspectProfile),
			httpx.RateLimitByProfile(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerItems() {
	h := &ItemsHandler{SessionService: r.SessionService}

	// Reads - lenient
	r.Mux.Handle("GET /v1/profiles/{profile}/items",
		httpx.Chain(http.HandlerFunc(h.HandleList), httpx.RateLimitByProfile(httpx.LenientLimit)),
	)
	r.Mux.Handle("GET /v1/profiles/{profile}/items/{key}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), httpx.RateLimitByProfile(httpx.LenientLimit)),
	)

	// Writes - moderate
	r.Mux.Handle("PUT /v1/profiles/{profile}/items/{key}",
		httpx.Chain(http.HandlerFunc(h.HandlePut), httpx.RateLimitByProfile(httpx.ModerateLimit)),
	)
	r.Mux.Handle("DELETE /v1/profiles/{profile}/items/{key}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete), httpx.RateLimitByProfile(httpx.ModerateLimit)),
	)
	r.Mux.Handle("DELETE /v1/profiles/{profile}",
		httpx.Chain(http.HandlerFunc(h.HandleClear), httpx.RateLimitByProfile(httpx.ModerateLimit)),
	)
}

func (r *Router) registerDebug() {
	if !r.DebugEndpoints {
		return
	}

	h := &SessionHandler{SessionService: r.SessionService}
	r.Mux.Handle("GET /debug/session",
		httpx.Chain(http.HandlerFunc(h.HandleDebugSession), httpx.RateLimitByIP(httpx.LenientLimit)),
	)
	r.logger.Warn("debug endpoints enabled", "routes", []string{"/debug/session"})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
}
