package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resultados posibles de una corrida por escuela.
const (
	OutcomeComputed = "computed"
	OutcomeCacheHit = "cache_hit"
	OutcomeFailed   = "failed"
)

// Recorder agrupa los colectores Prometheus del motor. Un Recorder nil es
// válido y no registra nada, así los tests no necesitan un registry.
type Recorder struct {
	predictions *prometheus.CounterVec
	duration    prometheus.Histogram
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "admitpath",
			Name:      "predictions_total",
			Help:      "Corridas de predicción por resultado.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "admitpath",
			Name:      "prediction_batch_seconds",
			Help:      "Duración total de un request de predicción en lote.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(r.predictions, r.duration)
	}
	return r
}

func (r *Recorder) Prediction(outcome string) {
	if r == nil {
		return
	}
	r.predictions.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ObserveBatch(d time.Duration) {
	if r == nil {
		return
	}
	r.duration.Observe(d.Seconds())
}
