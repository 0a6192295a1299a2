package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/internal/swaps"
	"github.com/goran-ethernal/SwapIndexor/internal/synchronizer"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
)

const defaultLastCount = 10

// SwapIndexer is the read side of one indexed network.
type SwapIndexer interface {
	Name() string
	Archived() bool
	GetAll() []chain.SwapRecord
	GetLast(n int) []chain.SwapRecord
	History(ctx context.Context, limit int, cursor swaps.Cursor) (*swaps.Page, error)
	// DefaultPageSize is the history page size used when a request names no limit.
	DefaultPageSize() int
	Status() synchronizer.Status
}

// NetworkRegistry gives access to the indexed networks.
type NetworkRegistry interface {
	// GetByName returns nil for an unknown network.
	GetByName(name string) SwapIndexer
	ListAll() []SwapIndexer
}

// Handler handles HTTP requests for the API.
type Handler struct {
	registry NetworkRegistry
	log      *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(registry NetworkRegistry, log *logger.Logger) *Handler {
	return &Handler{
		registry: registry,
		log:      log,
	}
}

// ListNetworks returns the configured networks with their status.
// @Summary List networks
// @Description Get every configured network with its synchronizer status and endpoints
// @Tags Networks
// @Produce json
// @Success 200 {array} NetworkInfo "List of networks"
// @Router /networks [get]
func (h *Handler) ListNetworks(w http.ResponseWriter, r *http.Request) {
	networks := h.registry.ListAll()

	infos := make([]NetworkInfo, 0, len(networks))
	for _, n := range networks {
		infos = append(infos, NetworkInfo{
			Name:    n.Name(),
			Archive: n.Archived(),
			Status:  n.Status(),
			Endpoints: []string{
				fmt.Sprintf("/api/v1/networks/%s/swaps", n.Name()),
				fmt.Sprintf("/api/v1/networks/%s/swaps/last", n.Name()),
				fmt.Sprintf("/api/v1/networks/%s/swaps/history", n.Name()),
				fmt.Sprintf("/api/v1/networks/%s/status", n.Name()),
			},
		})
	}

	respondJSON(w, http.StatusOK, infos)
}

// GetSwaps returns every swap held by the index of a network.
// @Summary Get indexed swaps
// @Description Retrieve all swaps in the recent-block window, oldest first
// @Tags Swaps
// @Produce json
// @Param network path string true "Network name"
// @Success 200 {object} SwapsResponse "Indexed swaps"
// @Failure 404 {object} ErrorResponse "Network not found"
// @Router /networks/{network}/swaps [get]
func (h *Handler) GetSwaps(w http.ResponseWriter, r *http.Request) {
	n, ok := h.lookup(w, r)
	if !ok {
		return
	}

	records := n.GetAll()
	respondJSON(w, http.StatusOK, SwapsResponse{Network: n.Name(), Count: len(records), Swaps: records})
}

// GetLastSwaps returns the most recent swaps of a network.
// @Summary Get the latest swaps
// @Description Retrieve the n most recent swaps, newest first
// @Tags Swaps
// @Produce json
// @Param network path string true "Network name"
// @Param n query int false "Number of swaps" default(10)
// @Success 200 {object} SwapsResponse "Latest swaps"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 404 {object} ErrorResponse "Network not found"
// @Router /networks/{network}/swaps/last [get]
func (h *Handler) GetLastSwaps(w http.ResponseWriter, r *http.Request) {
	n, ok := h.lookup(w, r)
	if !ok {
		return
	}

	count := defaultLastCount
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid n: must be a non-negative integer")
			return
		}
		count = parsed
	}

	records := n.GetLast(count)
	respondJSON(w, http.StatusOK, SwapsResponse{Network: n.Name(), Count: len(records), Swaps: records})
}

// GetSwapHistory returns one page of swap history.
// @Summary Get swap history
// @Description Scan the chain for swaps from a cursor. Pass the returned next value to get the following page.
// @Tags Swaps
// @Produce json
// @Param network path string true "Network name"
// @Param limit query int false "Maximum number of swaps, capped at 100. Zero or less returns none"
// @Param next query string false "Cursor returned by the previous page"
// @Success 200 {object} HistoryResponse "Page of swaps"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 404 {object} ErrorResponse "Network not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /networks/{network}/swaps/history [get]
func (h *Handler) GetSwapHistory(w http.ResponseWriter, r *http.Request) {
	n, ok := h.lookup(w, r)
	if !ok {
		return
	}

	limit := n.DefaultPageSize()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid limit: must be an integer")
			return
		}
		limit = parsed
	}

	cursor, err := swaps.DecodeCursor(r.URL.Query().Get("next"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid next: %v", err))
		return
	}

	page, err := n.History(r.Context(), limit, cursor)
	if err != nil {
		h.log.Errorw("failed to query swap history", "network", n.Name(), "error", err)
		respondError(w, http.StatusInternalServerError, "failed to query swap history")
		return
	}

	resp := HistoryResponse{Network: n.Name(), Swaps: page.Swaps}
	if page.Next != nil {
		resp.Next = page.Next.Encode()
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetStatus returns the synchronizer status of a network.
// @Summary Get network status
// @Description Window bounds, sync mode and the ready flag of a network
// @Tags Networks
// @Produce json
// @Param network path string true "Network name"
// @Success 200 {object} synchronizer.Status "Synchronizer status"
// @Failure 404 {object} ErrorResponse "Network not found"
// @Router /networks/{network}/status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	n, ok := h.lookup(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, n.Status())
}

// Health returns the health status of the API and all networks.
// @Summary Health check
// @Description Check the health status of the API and all indexed networks
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "API and network health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	networks := h.registry.ListAll()

	statuses := make([]NetworkHealth, 0, len(networks))
	for _, n := range networks {
		st := n.Status()
		statuses = append(statuses, NetworkHealth{
			Name:    n.Name(),
			Healthy: st.Running,
			Ready:   st.Ready,
		})
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Networks:  statuses,
	})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (SwapIndexer, bool) {
	name := r.PathValue("network")
	if name == "" {
		respondError(w, http.StatusBadRequest, "network name is required")
		return nil, false
	}

	n := h.registry.GetByName(name)
	if n == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("network '%s' not found", name))
		return nil, false
	}
	return n, true
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Encode first so a failure can still change the status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
