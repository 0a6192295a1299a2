package db

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	maintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swapindexor_maintenance_runs_total",
			Help: "Total number of archive maintenance runs by trigger",
		},
		[]string{"db", "trigger", "status"},
	)

	maintenanceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swapindexor_maintenance_duration_seconds",
			Help:    "Duration of archive maintenance runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"db"},
	)

	maintenanceLastRun = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swapindexor_maintenance_last_run_timestamp",
			Help: "Unix timestamp of the last maintenance run",
		},
		[]string{"db"},
	)

	maintenanceSpaceReclaimed = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swapindexor_maintenance_space_reclaimed_bytes",
			Help: "Bytes reclaimed by the last maintenance run",
		},
		[]string{"db"},
	)

	walCheckpoints = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swapindexor_wal_checkpoint_total",
			Help: "Total number of WAL checkpoints",
		},
		[]string{"db", "mode"},
	)

	vacuumRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swapindexor_vacuum_total",
			Help: "Total number of VACUUM runs",
		},
		[]string{"db"},
	)

	dbSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swapindexor_db_size_bytes",
			Help: "Archive database size in bytes, WAL and shared memory files included",
		},
		[]string{"db"},
	)
)

func maintenanceRunLog(db, trigger string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	maintenanceRuns.WithLabelValues(db, trigger, status).Inc()
	maintenanceDuration.WithLabelValues(db).Observe(duration.Seconds())
	maintenanceLastRun.WithLabelValues(db).Set(float64(time.Now().UTC().Unix()))
}

func spaceReclaimedLog(db string, bytes uint64) {
	maintenanceSpaceReclaimed.WithLabelValues(db).Set(float64(bytes))
}

func walCheckpointInc(db, mode string) {
	walCheckpoints.WithLabelValues(db, mode).Inc()
}

func vacuumRunsInc(db string) {
	vacuumRuns.WithLabelValues(db).Inc()
}

// DBSizeLog records the current size of a database.
func DBSizeLog(db string, sizeBytes int64) {
	dbSize.WithLabelValues(db).Set(float64(sizeBytes))
}
