package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swapindexor_rpc_requests_total",
		Help: "Node JSON-RPC calls by method",
	}, []string{"method"})

	rpcErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swapindexor_rpc_errors_total",
		Help: "Failed node JSON-RPC calls by method and error class",
	}, []string{"method", "error_type"})

	rpcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swapindexor_rpc_request_duration_seconds",
		Help:    "Node JSON-RPC call latency including retries",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	rpcRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swapindexor_rpc_retries_total",
		Help: "Node JSON-RPC call retries by method",
	}, []string{"method"})
)

// observeCall records one finished call, err being its final outcome.
func observeCall(method string, start time.Time, err error) {
	rpcRequests.WithLabelValues(method).Inc()
	rpcDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		rpcErrors.WithLabelValues(method, errorType(err)).Inc()
	}
}

// RPCRetryInc counts a repeated attempt of method.
func RPCRetryInc(method string) {
	rpcRetries.WithLabelValues(method).Inc()
}
