package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"debt-tracker/service"
)

type RouterDeps struct {
	Payoff    *service.PayoffService
	Health    *service.HealthService
	Snapshots *service.SnapshotService
	Limiter   *RateLimiter
	Logger    *zap.Logger
}

// NewRouter registra todas las rutas. Las del motor y de snapshots pasan por
// el rate limiter; /metrics y /healthz no.
func NewRouter(deps RouterDeps) http.Handler {
	payoffHandler := NewPayoffHandler(deps.Payoff, deps.Logger)
	healthHandler := NewHealthHandler(deps.Health, deps.Logger)
	snapshotHandler := NewSnapshotHandler(deps.Snapshots, deps.Health, deps.Logger)

	mux := http.NewServeMux()
	limited := func(route string, handler http.HandlerFunc) {
		mux.Handle(route, MetricsMiddleware(route,
			RateLimitMiddleware(deps.Limiter, deps.Logger, handler),
		))
	}

	limited("/payoff/simulate", payoffHandler.Simulate)
	limited("/payoff/compare", payoffHandler.Compare)
	limited("/payoff/scenarios", payoffHandler.Scenarios)
	limited("/health/score", healthHandler.Score)

	limited("/snapshots/{key}", snapshotHandler.Snapshot)
	limited("/snapshots/{key}/export", snapshotHandler.Export)
	limited("/snapshots/{key}/import", snapshotHandler.Import)
	limited("/snapshots/{key}/summary", snapshotHandler.Summary)
	limited("/snapshots/{key}/health", snapshotHandler.Health)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return RequestIDMiddleware(deps.Logger, mux)
}
