// Package metrics exposes transfer counters for Prometheus
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session results
const (
	SessionCompleted         = "completed"
	SessionNothingNegotiated = "nothing_negotiated"
	SessionHalted            = "halted"
	SessionStopped           = "stopped"
	SessionFailed            = "failed"
)

var (
	SessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dicomsend_sessions_total",
		Help: "Associations attempted, by result",
	}, []string{"result"})

	ObjectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dicomsend_objects_total",
		Help: "Objects handled, by class of the final status",
	}, []string{"status_class"})

	BytesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dicomsend_bytes_sent_total",
		Help: "Data set bytes sent in C-STORE requests",
	})

	PresentationContextsProposed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dicomsend_presentation_contexts_proposed_total",
		Help: "Presentation contexts proposed across all associations",
	})

	PendingObjects = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dicomsend_pending_objects",
		Help: "Objects still waiting to be sent in the current job",
	})
)

// WriteTextfile writes every registered metric to path in the text
// exposition format, for the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
