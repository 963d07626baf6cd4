package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/forgo/shepherd/api/internal/metrics"
)

// Metrics records request count and latency per route pattern. It reads the
// pattern the mux matched, so it has to wrap the mux directly with no
// context-rewriting middleware in between.
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			m.ObserveRequest(r.Method, routeOf(r.Pattern), wrapped.statusCode, time.Since(start))
		})
	}
}

// routeOf drops the method prefix from a mux pattern ("GET /v1/x" -> "/v1/x")
func routeOf(pattern string) string {
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		return pattern[i+1:]
	}
	return pattern
}
