// Package metrics exposes Prometheus instrumentation for check-ins, progress
// queries and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/evcraddock/campus-explorer/internal/visit"
)

// Progress query kinds.
const (
	KindReport  = "report"
	KindSummary = "summary"
)

var (
	CheckIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campus_checkins_total",
			Help: "Total number of landmark check-ins recorded",
		},
	)

	Undos = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campus_checkins_undone_total",
			Help: "Total number of check-ins removed by undo",
		},
	)

	ProgressQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_progress_queries_total",
			Help: "Total number of progress reports and summaries computed",
		},
		[]string{"kind"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campus_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordVisitEvent counts check-in and undo events. Register it with
// visit.Service.Subscribe.
func RecordVisitEvent(e visit.Event) {
	switch e.Kind {
	case visit.CheckedIn:
		CheckIns.Inc()
	case visit.Undone:
		Undos.Inc()
	}
}

// RecordProgressQuery counts a computed report or summary.
func RecordProgressQuery(kind string) {
	ProgressQueries.WithLabelValues(kind).Inc()
}

// RecordAPIRequest observes one request's latency.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Middleware times each request, labelled by its chi route pattern so that
// usernames and ids do not blow up label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RecordAPIRequest(r.Method, route, status, time.Since(start))
	})
}
