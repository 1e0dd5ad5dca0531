package service

// MetricsCollector receives rule-engine activity. The Prometheus
// implementation lives in internal/metrics.
type MetricsCollector interface {
	RecordFeeQuote(paymentMethod string, exempt bool)
	RecordSettlement(result string, points int64)
	RecordCompliance(status string)
	RecordImpactAward(sourceType string, points float64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFeeQuote(string, bool)       {}
func (NoopMetricsCollector) RecordSettlement(string, int64)    {}
func (NoopMetricsCollector) RecordCompliance(string)           {}
func (NoopMetricsCollector) RecordImpactAward(string, float64) {}

func orNoop(m MetricsCollector) MetricsCollector {
	if m == nil {
		return NoopMetricsCollector{}
	}
	return m
}
