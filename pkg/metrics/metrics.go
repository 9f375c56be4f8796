package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DeliveriesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crickit_deliveries_recorded_total",
		Help: "Ball events appended to match ledgers.",
	})

	MatchesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crickit_matches_completed_total",
		Help: "Matches that reached a result.",
	})
)

type HealthFunc func(ctx context.Context) error

// StartMetricsServer serves /metrics and /healthz on its own port, off the
// API listener. Run once from main.
func StartMetricsServer(port string, healthFn HealthFunc) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		if err := healthFn(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(fmt.Sprintf("unhealthy: %v", err)))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		_ = srv.ListenAndServe()
	}()

	return srv
}
