package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/health"
	appmw "github.com/rushiparkhe18/JalMarg-2.0/internal/middleware"
)

// Readiness reports whether the service's external dependencies are
// reachable; cmd/routeserver passes the grid store.
type Readiness interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the chi router serving /route, /healthz, /readyz,
// and /metrics.
func NewRouter(p Planner, ready Readiness, l *zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(appmw.Recover(l))
	r.Use(appmw.Logging(l))
	r.Use(appmw.CORS())

	r.Get("/healthz", health.Liveness())
	r.Get("/readyz", readinessHandler(ready))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Post("/route", RouteHandler(p, l))

	return r
}

func readinessHandler(ready Readiness) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready == nil {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		if err := ready.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready: " + err.Error()))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
