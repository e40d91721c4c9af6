package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aigovhub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	assessmentsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aigovhub_assessments_completed_total",
			Help: "Assessments that reached Completed status",
		},
	)
	riskReclassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aigovhub_risk_reclassifications_total",
			Help: "Automatic asset risk level changes by new level",
		},
		[]string{"level"},
	)
	discoveredAssets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aigovhub_discovered_assets_total",
			Help: "Assets registered through auto-discovery sync",
		},
	)
)

// PrometheusMiddleware records request duration, labeled by the chi route
// pattern rather than the raw path to keep cardinality bounded.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		httpRequestDuration.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Observe(duration)
	})
}

// RecordAssessmentCompleted bumps the completion counter.
func RecordAssessmentCompleted() {
	assessmentsCompleted.Inc()
}

// RecordRiskReclassification records an automatic risk level change.
func RecordRiskReclassification(level string) {
	riskReclassifications.WithLabelValues(level).Inc()
}

// RecordDiscoveredAssets adds n to the auto-discovery counter.
func RecordDiscoveredAssets(n int) {
	discoveredAssets.Add(float64(n))
}
