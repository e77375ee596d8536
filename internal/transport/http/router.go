// Package httptransport assembles the service's HTTP surface: the
// scan-envelope API, health checks and the Prometheus scrape endpoint.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scanhub/internal/intake/handler"
	"scanhub/pkg/platform/httputil"
)

// HealthCheck is one named dependency probe run by /healthz.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// RouterConfig carries everything the router mounts.
type RouterConfig struct {
	Logger    *slog.Logger
	Envelopes *handler.Handler
	Health    []HealthCheck
}

// NewRouter wires all public endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth(cfg.Logger, cfg.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	cfg.Envelopes.Register(r)
	return r
}

func handleHealth(logger *slog.Logger, checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		failures := map[string]string{}
		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "check", check.Name, "error", err)
				failures[check.Name] = err.Error()
			}
		}
		if len(failures) > 0 {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":   "degraded",
				"failures": failures,
			})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
