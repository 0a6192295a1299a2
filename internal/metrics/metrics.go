package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	dbQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swapindexor_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"db", "operation"},
	)

	dbQueryTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swapindexor_db_query_duration_seconds",
			Help:    "Duration of database queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"db", "operation"},
	)

	dbErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swapindexor_db_errors_total",
			Help: "Total number of database errors",
		},
		[]string{"db", "error_type"},
	)

	// Indexing metrics
	LastIndexedBlock = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swapindexor_last_indexed_block",
			Help: "Height of the highest block accepted by a component",
		},
		[]string{"component", "network"},
	)

	BlocksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swapindexor_blocks_processed_total",
			Help: "Total number of blocks accepted",
		},
		[]string{"component", "network"},
	)

	BlockProcessingTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swapindexor_block_processing_duration_seconds",
			Help:    "Time taken to accept a block",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"component", "network"},
	)

	Reorgs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swapindexor_reorgs_total",
			Help: "Total number of blocks invalidated by chain reorganizations",
		},
		[]string{"component", "network"},
	)

	SwapsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swapindexor_swaps_detected_total",
			Help: "Total number of swaps detected in accepted blocks",
		},
		[]string{"network"},
	)

	IndexedSwaps = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swapindexor_indexed_swaps",
			Help: "Number of swaps currently held by the swap index",
		},
		[]string{"network"},
	)

	WindowSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swapindexor_window_blocks",
			Help: "Number of blocks currently held by the chain window",
		},
		[]string{"network"},
	)

	IndexReady = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swapindexor_index_ready",
			Help: "Whether the swap index reached the chain tip (1=ready, 0=catching up)",
		},
		[]string{"network"},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "swapindexor_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swapindexor_errors_total",
			Help: "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swapindexor_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "swapindexor_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swapindexor_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func DBQueryInc(db string, operation string) {
	dbQueries.WithLabelValues(db, operation).Inc()
}

func DBQueryDuration(db string, operation string, duration time.Duration) {
	dbQueryTime.WithLabelValues(db, operation).Observe(duration.Seconds())
}

func DBErrorsInc(db string, errorType string) {
	dbErrors.WithLabelValues(db, errorType).Inc()
}

func BlockProcessingTimeLog(component, network string, duration time.Duration) {
	BlockProcessingTime.WithLabelValues(component, network).Observe(duration.Seconds())
}

func LastIndexedBlockSet(component, network string, height uint64) {
	LastIndexedBlock.WithLabelValues(component, network).Set(float64(height))
}

func BlocksProcessedInc(component, network string, count uint64) {
	BlocksProcessed.WithLabelValues(component, network).Add(float64(count))
}

func ReorgsInc(component, network string) {
	Reorgs.WithLabelValues(component, network).Inc()
}

func SwapsDetectedInc(network string, count int) {
	SwapsDetected.WithLabelValues(network).Add(float64(count))
}

func IndexedSwapsSet(network string, count int) {
	IndexedSwaps.WithLabelValues(network).Set(float64(count))
}

func WindowSizeSet(network string, size int) {
	WindowSize.WithLabelValues(network).Set(float64(size))
}

func IndexReadySet(network string, ready bool) {
	IndexReady.WithLabelValues(network).Set(boolToFloat(ready))
}

func ErrorsInc(component, severity string) {
	Errors.WithLabelValues(component, severity).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	ComponentHealth.WithLabelValues(component).Set(boolToFloat(healthy))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// UpdateSystemMetrics updates runtime system metrics.
// This should be called periodically (e.g., every 15 seconds).
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())

	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
