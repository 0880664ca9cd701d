package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HealthResponse represents the response structure for health check endpoints.
type HealthResponse struct {
	Status    string            `json:"status"`           // "ok" or "error"
	Timestamp time.Time         `json:"timestamp"`        // Current server time
	Checks    map[string]string `json:"checks,omitempty"` // Individual component health
	Uptime    string            `json:"uptime,omitempty"` // Server uptime (optional)
}

var startTime = time.Now()

// HealthCheck handles the /health endpoint.
// This is a lightweight endpoint that always returns 200 OK if the service is running.
// It does NOT check dependencies; use /readiness for that.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// ReadinessCheck handles the /readiness endpoint.
// It verifies that critical dependencies are available, so orchestrators and
// load balancers know whether the instance can take traffic.
//
// Returns:
// - 200 OK if all dependencies are healthy
// - 503 Service Unavailable if any dependency is unhealthy
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	dbStatus := h.checkDatabase(r.Context())
	checks["database"] = dbStatus

	status := "ok"
	httpStatus := http.StatusOK
	if dbStatus != "ok" {
		status = "error"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(response)
}

// checkDatabase verifies database connectivity by executing a simple ping.
// Returns "ok" if database is reachable, "error" otherwise.
func (h *Handler) checkDatabase(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.container.DB.PingContext(ctx); err != nil {
		return "error"
	}

	var result int
	if err := h.container.DB.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return "error"
	}

	return "ok"
}
