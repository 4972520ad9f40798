// Package metrics exposes Prometheus counters for review activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the process collectors and the review counters.
var Registry = prometheus.NewRegistry()

var (
	Decisions = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "prodx",
		Name:      "review_decisions_total",
		Help:      "Product review decisions by outcome.",
	}, []string{"decision", "result"})

	Notifications = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "prodx",
		Name:      "notifications_total",
		Help:      "Decision emails by delivery state.",
	}, []string{"state"})

	ReportDuration = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "prodx",
		Name:      "report_query_seconds",
		Help:      "Time spent computing dashboard aggregates.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"report"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}
