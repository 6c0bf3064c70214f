// Package prometheus is the concrete, client_golang-backed implementation
// of pkg/metrics.AllocatorMetrics.
package prometheus

import (
	"github.com/marmos91/pasdb/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// allocatorMetrics is the Prometheus implementation of
// metrics.AllocatorMetrics.
type allocatorMetrics struct {
	bumpAllocations     *prometheus.CounterVec
	bumpBytes           prometheus.Counter
	freeListReuses      *prometheus.CounterVec
	freeListBytes       prometheus.Counter
	dataAreaGrowths     prometheus.Counter
	dataAreaCurrentSize prometheus.Gauge
	slotCount           prometheus.Gauge
	nameShifts          prometheus.Histogram
}

// New creates a Prometheus-backed AllocatorMetrics registered against reg.
func New(reg prometheus.Registerer) metrics.AllocatorMetrics {
	sizeBuckets := []float64{
		16, 64, 256, 1024, 4096, 16384, 65536, 262144, 1048576,
	}

	return &allocatorMetrics{
		bumpAllocations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "pasdb_allocator_bump_allocations_total",
				Help: "Total number of bump-region allocations, bucketed by size",
			},
			[]string{"size_bucket"},
		),
		bumpBytes: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "pasdb_allocator_bump_bytes_total",
				Help: "Total bytes handed out by the bump allocator",
			},
		),
		freeListReuses: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "pasdb_allocator_free_list_reuses_total",
				Help: "Total number of free-list first-fit reuses, bucketed by size",
			},
			[]string{"size_bucket"},
		),
		freeListBytes: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "pasdb_allocator_free_list_bytes_total",
				Help: "Total bytes satisfied from the free list instead of the bump region",
			},
		),
		dataAreaGrowths: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "pasdb_allocator_data_area_growths_total",
				Help: "Total number of data-area relocations (make+copy growth events)",
			},
		),
		dataAreaCurrentSize: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "pasdb_allocator_data_area_bytes",
				Help: "Current size of the data area in bytes",
			},
		),
		slotCount: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "pasdb_allocator_slots",
				Help: "Current number of live slot-map entries",
			},
		),
		nameShifts: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pasdb_allocator_name_shift_entries",
				Help:    "Number of name/slot index entries shifted per insert or delete",
				Buckets: sizeBuckets,
			},
		),
	}
}

func sizeBucket(size int) string {
	switch {
	case size <= 16:
		return "16"
	case size <= 64:
		return "64"
	case size <= 256:
		return "256"
	case size <= 1024:
		return "1k"
	case size <= 4096:
		return "4k"
	case size <= 16384:
		return "16k"
	case size <= 65536:
		return "64k"
	default:
		return "large"
	}
}

func (m *allocatorMetrics) BumpAllocation(size int) {
	m.bumpAllocations.WithLabelValues(sizeBucket(size)).Inc()
	m.bumpBytes.Add(float64(size))
}

func (m *allocatorMetrics) FreeListReuse(size int) {
	m.freeListReuses.WithLabelValues(sizeBucket(size)).Inc()
	m.freeListBytes.Add(float64(size))
}

func (m *allocatorMetrics) DataAreaGrown(oldSize, newSize uint64) {
	m.dataAreaGrowths.Inc()
	m.dataAreaCurrentSize.Set(float64(newSize))
}

func (m *allocatorMetrics) SlotCount(n int) {
	m.slotCount.Set(float64(n))
}

func (m *allocatorMetrics) NameShift(n int) {
	m.nameShifts.Observe(float64(n))
}
