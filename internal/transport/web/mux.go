package web

import (
	"net/http"
	"time"

	"github.com/mkhoa1412/code-challenge-sub003/internal/app"
	"github.com/mkhoa1412/code-challenge-sub003/internal/config"
	"github.com/mkhoa1412/code-challenge-sub003/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux creates and configures the HTTP router / Crée et configure le routeur HTTP
func NewMux(h *Handler, conf *config.Config, container *app.Container) http.Handler {
	mux := http.NewServeMux()
	mw := NewMiddleware(conf, container.Metrics)

	// Health check endpoints (no auth, for load balancers and orchestrators)
	// Note: SecurityHeaders is applied globally below, so no need to add it here
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /readiness", h.ReadinessCheck)

	// Prometheus metrics endpoint (admin only when auth is enabled)
	// This endpoint exposes internal system metrics. If Prometheus must scrape
	// without auth, run metrics on a separate internal port or whitelist IPs
	// at the infrastructure level.
	mux.Handle("GET /metrics", chain(
		promhttp.Handler().ServeHTTP,
		mw.Auth,
		mw.RequireRole(domain.RoleAdmin),
	))

	// Token exchange (public; rate limited globally)
	mux.Handle("POST /api/auth/token", chain(h.handle(h.IssueToken)))

	// Resource endpoints. Reads are public; writes need the editor role.
	// The role check is transparent while authentication is disabled.
	// Les lectures sont publiques ; les écritures exigent le rôle editor.
	mux.Handle("GET /api/resources", chain(h.handle(h.ListResources)))
	mux.Handle("GET /api/resources/categories", chain(h.handle(h.ListCategories)))
	mux.Handle("GET /api/resources/{id}", chain(h.handle(h.GetResource)))
	mux.Handle("POST /api/resources", chain(h.handle(h.CreateResource), mw.Auth, mw.RequireRole(domain.RoleEditor)))
	mux.Handle("PUT /api/resources/{id}", chain(h.handle(h.UpdateResource), mw.Auth, mw.RequireRole(domain.RoleEditor)))
	mux.Handle("DELETE /api/resources/{id}", chain(h.handle(h.DeleteResource), mw.Auth, mw.RequireRole(domain.RoleEditor)))

	// Global middlewares - applied in reverse order / Middlewares globaux appliqués en ordre inverse
	var handler http.Handler = mux
	handler = mw.MetricsMiddleware(handler) // Metrics first to capture everything
	handler = mw.RateLimit(handler)
	handler = mw.SecurityHeaders(handler)
	handler = mw.Cors(handler)
	handler = Timeout(30 * time.Second)(handler) // 30s timeout for all requests / Timeout de 30s pour toutes les requêtes
	handler = Logging(handler)                   // Logging includes request ID
	handler = RequestID(handler)                 // RequestID first - generates ID for all middleware

	return handler
}

// chain applies middleware to HTTP handler / Applique les middlewares au gestionnaire HTTP
func chain(f http.HandlerFunc, middlewares ...func(http.Handler) http.Handler) http.Handler {
	var handler http.Handler = f

	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}
