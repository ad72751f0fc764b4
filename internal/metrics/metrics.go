package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vortex"

var (
	// Operations counts console operations by name and outcome.
	Operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Console operations by name and outcome.",
	}, []string{"operation", "outcome"})

	// DocumentSaves counts document writes by outcome.
	DocumentSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_saves_total",
		Help:      "Whole-document writes to the persistence medium.",
	}, []string{"outcome"})

	// HeartbeatUp is 1 while the external endpoint answers, 0 otherwise.
	HeartbeatUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "heartbeat_up",
		Help:      "Whether the last external heartbeat probe got a response.",
	})
)

// Observe records one operation outcome derived from err.
func Observe(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	Operations.WithLabelValues(operation, outcome).Inc()
}
