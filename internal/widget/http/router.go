package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/checkout/internal/widget/gate"
	"github.com/aussiebroadwan/checkout/internal/widget/notify"
	"github.com/aussiebroadwan/checkout/internal/widget/registry"
	"github.com/aussiebroadwan/checkout/internal/widget/service"
	"github.com/aussiebroadwan/checkout/internal/widget/store"
	"github.com/aussiebroadwan/checkout/pkg/httpx"
	"github.com/aussiebroadwan/checkout/pkg/slogx"

	_ "github.com/aussiebroadwan/checkout/api/widget" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// store is nil when clients come from a registry file.
	store    store.Store
	registry *registry.Snapshot
	gate     *gate.Gate

	SessionService *service.SessionService
}

func NewRouter(
	reg *registry.Snapshot,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	g := gate.New(reg)

	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		registry:     reg,
		gate:         g,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SecurityHeaders(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerWidget()
	r.registerSessions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Checkout Widget Service API
//	@version		0.1.0
//	@description	Issues session tokens to merchant back ends and serves the embeddable checkout widget.
//	@description
//	@description	The widget loads only inside pages served from the client's allowed origins and only with a session token
//	@description	that verifies under the client secret.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/checkout
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.basic	BasicAuth
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// The nonce policy only suits pages that mark their scripts with the nonce,
// so it wraps the widget route alone.
func (r *Router) registerWidget() {
	r.Mux.Handle("GET /checkout", CSPMiddleware(r.gate.Policy)(&CheckoutHandler{
		Gate:  r.gate,
		Audit: notify.Audit{},
	}))
}

func (r *Router) registerSessions() {
	r.Mux.Handle("POST /v1/sessions", &SessionsHandler{SessionService: r.SessionService})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.registry))
}
