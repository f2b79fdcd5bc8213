package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTotal_CountsByOutcome(t *testing.T) {
	before := testutil.ToFloat64(SearchTotal.WithLabelValues("team", OutcomeOK))
	SearchTotal.WithLabelValues("team", OutcomeOK).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SearchTotal.WithLabelValues("team", OutcomeOK)))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	SeededRecords.WithLabelValues("schedule").Add(3)
	RequestTotal.WithLabelValues("GET", "/v1/teams", "200").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, name := range []string{"statline_seeded_records_total", "statline_http_requests_total"} {
		assert.True(t, strings.Contains(body, name), "missing %s", name)
	}
}
