package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := New()

	c.RecordFeeQuote("card", false)
	c.RecordFeeQuote("card", false)
	c.RecordSettlement("settled", 50)
	c.RecordSettlement("insufficient_balance", 0)
	c.RecordCompliance("expired")
	c.RecordImpactAward("volunteer", 260)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.feeQuotes.WithLabelValues("card", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.settlements.WithLabelValues("settled")))
	assert.Equal(t, 50.0, testutil.ToFloat64(c.pointsMoved))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.compliance.WithLabelValues("expired")))
	assert.Equal(t, 260.0, testutil.ToFloat64(c.awardPoints.WithLabelValues("volunteer")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.RecordCompliance("current")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `impactcore_compliance_evaluations_total{status="current"} 1`)
}
