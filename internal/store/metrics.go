package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var retentionBlocksPruned = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "swapindexor_retention_blocks_pruned_total",
		Help: "Total number of archived blocks pruned by the retention policy",
	},
	[]string{"db"},
)

func retentionBlocksPrunedInc(db string, count uint64) {
	retentionBlocksPruned.WithLabelValues(db).Add(float64(count))
}
