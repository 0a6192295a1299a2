package api

import (
	"time"

	"github.com/goran-ethernal/SwapIndexor/internal/synchronizer"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
)

// SwapsResponse is a list of swaps of one network.
type SwapsResponse struct {
	Network string             `json:"network"`
	Count   int                `json:"count"`
	Swaps   []chain.SwapRecord `json:"swaps"`
}

// HistoryResponse is one page of swap history. Next is omitted once the scan reached the
// chain tip.
type HistoryResponse struct {
	Network string             `json:"network"`
	Swaps   []chain.SwapRecord `json:"swaps"`
	Next    string             `json:"next,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Networks  []NetworkHealth `json:"networks"`
}

// NetworkHealth is the health of one network. A network is healthy while its synchronizer
// runs; Ready tells whether the index has reached the chain tip at least once.
type NetworkHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Ready   bool   `json:"ready"`
}

// NetworkInfo describes a configured network.
type NetworkInfo struct {
	Name      string              `json:"name"`
	Archive   bool                `json:"archive"`
	Status    synchronizer.Status `json:"status"`
	Endpoints []string            `json:"endpoints"`
}
