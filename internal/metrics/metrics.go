package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exports rule-engine activity to Prometheus.
type Collector struct {
	registry    *prometheus.Registry
	feeQuotes   *prometheus.CounterVec
	settlements *prometheus.CounterVec
	pointsMoved prometheus.Counter
	compliance  *prometheus.CounterVec
	awards      *prometheus.CounterVec
	awardPoints *prometheus.CounterVec
}

// New registers the collectors on a fresh registry together with the Go
// runtime and process collectors.
func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		feeQuotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impactcore",
			Subsystem: "fees",
			Name:      "quotes_total",
			Help:      "Fee breakdowns computed, segmented by payment method and exemption outcome.",
		}, []string{"payment_method", "exempt"}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impactcore",
			Subsystem: "barter",
			Name:      "settlements_total",
			Help:      "Barter settlement attempts segmented by result.",
		}, []string{"result"}),
		pointsMoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impactcore",
			Subsystem: "barter",
			Name:      "points_settled_total",
			Help:      "Points moved between ledgers by completed settlements.",
		}),
		compliance: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impactcore",
			Subsystem: "compliance",
			Name:      "evaluations_total",
			Help:      "Tax filing evaluations segmented by resulting status.",
		}, []string{"status"}),
		awards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impactcore",
			Subsystem: "impact",
			Name:      "awards_total",
			Help:      "Impact point rows appended, segmented by source type.",
		}, []string{"source_type"}),
		awardPoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impactcore",
			Subsystem: "impact",
			Name:      "points_awarded_total",
			Help:      "Impact points awarded, segmented by source type.",
		}, []string{"source_type"}),
	}
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		c.feeQuotes,
		c.settlements,
		c.pointsMoved,
		c.compliance,
		c.awards,
		c.awardPoints,
	)
	return c
}

func (c *Collector) RecordFeeQuote(paymentMethod string, exempt bool) {
	c.feeQuotes.WithLabelValues(paymentMethod, strconv.FormatBool(exempt)).Inc()
}

func (c *Collector) RecordSettlement(result string, points int64) {
	c.settlements.WithLabelValues(result).Inc()
	if points > 0 {
		c.pointsMoved.Add(float64(points))
	}
}

func (c *Collector) RecordCompliance(status string) {
	c.compliance.WithLabelValues(status).Inc()
}

func (c *Collector) RecordImpactAward(sourceType string, points float64) {
	c.awards.WithLabelValues(sourceType).Inc()
	if points > 0 {
		c.awardPoints.WithLabelValues(sourceType).Add(points)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
