package log

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SinkMetrics exposes counters for the file sinks. Attaching metrics is
// optional: all observation hooks are nil-safe, so the sink layer carries no
// mandatory observability and never logs or measures its own failures.
type SinkMetrics struct {
	linesTotal     prometheus.Counter
	bytesTotal     prometheus.Counter
	rotationsTotal prometheus.Counter
	prunedTotal    prometheus.Counter
}

// NewSinkMetrics creates and registers the sink counters with reg. Pass
// prometheus.DefaultRegisterer to use the process-global registry.
func NewSinkMetrics(reg prometheus.Registerer) *SinkMetrics {
	factory := promauto.With(reg)
	return &SinkMetrics{
		linesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "simlog_sink_lines_total",
			Help: "Log lines written to the file sink.",
		}),
		bytesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "simlog_sink_bytes_total",
			Help: "Bytes written to the file sink, including line terminators.",
		}),
		rotationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "simlog_sink_rotations_total",
			Help: "Completed size-based rotations.",
		}),
		prunedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "simlog_sink_pruned_files_total",
			Help: "Rotated files deleted by retention pruning.",
		}),
	}
}

func (m *SinkMetrics) observeWrite(n int) {
	if m == nil {
		return
	}
	m.linesTotal.Inc()
	m.bytesTotal.Add(float64(n))
}

func (m *SinkMetrics) observeRotation() {
	if m == nil {
		return
	}
	m.rotationsTotal.Inc()
}

func (m *SinkMetrics) observePruned(n int) {
	if m == nil || n == 0 {
		return
	}
	m.prunedTotal.Add(float64(n))
}
