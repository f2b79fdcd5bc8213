package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/forgo/statline/api/internal/metrics"
)

// Metrics records request counts and latency per route pattern. Requests
// the mux could not route are counted under "unmatched".
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		path := routeOf(r)
		metrics.RequestTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
