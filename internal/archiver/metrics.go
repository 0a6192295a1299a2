package archiver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archivedHeight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swapindexor_archive_height",
			Help: "Height of the highest archived block",
		},
		[]string{"network"},
	)

	reorgDepth = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swapindexor_archive_reorg_depth_blocks",
			Help:    "Number of archived blocks dropped per reorganization",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"network"},
	)

	reorgLastDetected = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swapindexor_archive_reorg_last_detected_timestamp",
			Help: "Unix timestamp of the last reorganization seen by the archiver",
		},
		[]string{"network"},
	)
)

func archivedHeightSet(network string, height uint64) {
	archivedHeight.WithLabelValues(network).Set(float64(height))
}

func reorgLog(network string, depth int) {
	reorgDepth.WithLabelValues(network).Observe(float64(depth))
	reorgLastDetected.WithLabelValues(network).Set(float64(time.Now().UTC().Unix()))
}
