package synchronizer

import "github.com/goran-ethernal/SwapIndexor/pkg/chain"

// Mode is the synchronization mode.
type Mode string

const (
	// ModeCatchUp fetches the blocks below the near-tip offset concurrently.
	ModeCatchUp Mode = "catch-up"
	// ModeLinear follows the chain one block at a time.
	ModeLinear Mode = "linear"
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// Status is a point-in-time view of a synchronizer.
type Status struct {
	Network        string          `json:"network"`
	Mode           Mode            `json:"mode"`
	Running        bool            `json:"running"`
	Ready          bool            `json:"ready"`
	WindowSize     int             `json:"window_size"`
	WindowCapacity int             `json:"window_capacity"`
	Lowest         *chain.BlockRef `json:"lowest,omitempty"`
	Highest        *chain.BlockRef `json:"highest,omitempty"`
	Swaps          int             `json:"swaps"`
}
