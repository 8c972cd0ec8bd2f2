package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/inventory-stock-api/internal/application/inventory"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

var _ inventory.BatchObserver = (*PipelineMetrics)(nil)

// PipelineMetrics métricas Prometheus del pipeline de actualización de stock.
type PipelineMetrics struct {
	items     *prometheus.CounterVec
	batches   *prometheus.CounterVec
	batchSize *prometheus.HistogramVec
	duration  *prometheus.HistogramVec
}

// NewPipelineMetrics crea y registra las métricas en reg.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "items_processed_total",
			Help:      "Artículos procesados por modo y resultado.",
		}, []string{"mode", "status"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "batches_processed_total",
			Help:      "Lotes procesados por modo y estado.",
		}, []string{"mode", "status"}),
		batchSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inventory",
			Name:      "batch_size_items",
			Help:      "Cantidad de artículos por lote.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"mode"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inventory",
			Name:      "batch_duration_seconds",
			Help:      "Duración del procesamiento de un lote.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
	}
	reg.MustRegister(m.items, m.batches, m.batchSize, m.duration)
	return m
}

func (m *PipelineMetrics) ObserveItem(mode string, r entity.ItemResult) {
	m.items.WithLabelValues(mode, r.Status).Inc()
}

func (m *PipelineMetrics) ObserveBatch(mode, status string, size int, elapsed time.Duration) {
	m.batches.WithLabelValues(mode, status).Inc()
	m.batchSize.WithLabelValues(mode).Observe(float64(size))
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
}
