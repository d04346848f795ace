package providers

import (
	"net/http"
	"time"
)

// statusRecorder remembers the status written by an ingest or query
// handler; handlers that never call WriteHeader count as 200.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// MetricsMiddleware counts every request against the sample API and
// observes its latency, labelled by route path and status bucket.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		metrics.IncRequestsTotal(r.URL.Path, rec.status)
		metrics.ObserveRequestDuration(r.URL.Path, time.Since(start))
	})
}
