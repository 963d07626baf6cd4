package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/shepherd/api/internal/metrics"
)

// requestCount returns the http_requests_total sample matching route and status
func requestCount(t *testing.T, m *metrics.Metrics, route, status string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != "shepherd_http_requests_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			if labels["route"] == route && labels["status"] == status {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/ministries/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := Metrics(m)(mux)

	for _, id := range []string{"youth", "worship", "hospitality"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/ministries/"+id, nil))
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 3.0, requestCount(t, m, "/v1/ministries/{id}", "200"))
	assert.Equal(t, 1.0, requestCount(t, m, "unmatched", "404"))
}

func TestRouteOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/v1/x/{id}", routeOf("GET /v1/x/{id}"))
	assert.Equal(t, "/healthz", routeOf("/healthz"))
	assert.Empty(t, routeOf(""))
}
