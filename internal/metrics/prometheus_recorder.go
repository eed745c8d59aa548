package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "adminui"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	emitDuration  prom.Histogram
	emitOutcomes  *prom.CounterVec
	documentBytes prom.Gauge
}

// NewPrometheusRecorder constructs the emit metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		emitDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "emit_duration_seconds",
			Help:      "Duration of writing the admin UI page",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		emitOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "emit_outcomes_total",
			Help:      "Emit runs by outcome",
		}, []string{"outcome"}),
		documentBytes: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "document_bytes",
			Help:      "Size of the last written admin UI page",
		}),
	}
	reg.MustRegister(pr.emitDuration, pr.emitOutcomes, pr.documentBytes)
	return pr
}

func (p *PrometheusRecorder) ObserveEmitDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.emitDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncEmitOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.emitOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetDocumentBytes(n int) {
	if p == nil {
		return
	}
	p.documentBytes.Set(float64(n))
}
