// Package swaps holds the materialized swap view of a network and the cursor-paginated
// history query.
package swaps

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
)

// Index is the time-ordered list of swaps detected in the blocks of a chain window.
// Writers are serialized by the owning synchronizer; readers see whole transitions.
type Index struct {
	mu      sync.RWMutex
	records []chain.SwapRecord
	ready   atomic.Bool
}

// NewIndex creates an empty index that is not ready.
func NewIndex() *Index {
	return &Index{}
}

// Append adds records and keeps the index ordered by timestamp.
func (x *Index) Append(records ...chain.SwapRecord) {
	x.Apply(nil, records)
}

// Invalidate removes every record of the block with the given hash.
func (x *Index) Invalidate(blockHash string) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	return x.invalidateLocked(blockHash)
}

// Apply removes the records of every block in invalidate and appends records as a single
// transition.
func (x *Index) Apply(invalidate []string, records []chain.SwapRecord) {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, hash := range invalidate {
		x.invalidateLocked(hash)
	}

	if len(records) == 0 {
		return
	}
	x.records = append(x.records, records...)
	slices.SortStableFunc(x.records, func(a, b chain.SwapRecord) int {
		return compareTimestamps(a.Timestamp, b.Timestamp)
	})
}

func (x *Index) invalidateLocked(blockHash string) int {
	before := len(x.records)
	x.records = slices.DeleteFunc(x.records, func(r chain.SwapRecord) bool {
		return r.Block != nil && r.Block.Hash == blockHash
	})
	return before - len(x.records)
}

// GetAll returns every record, oldest first.
func (x *Index) GetAll() []chain.SwapRecord {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return slices.Clone(x.records)
}

// GetLast returns the n most recent records, most recent first.
func (x *Index) GetLast(n int) []chain.SwapRecord {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if n <= 0 {
		return []chain.SwapRecord{}
	}
	n = min(n, len(x.records))

	out := slices.Clone(x.records[len(x.records)-n:])
	slices.Reverse(out)
	return out
}

func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return len(x.records)
}

// IsReady reports whether the synchronizer has reached the chain tip at least once.
func (x *Index) IsReady() bool {
	return x.ready.Load()
}

// SetReady marks the index ready. It returns true only for the call that flipped the flag.
func (x *Index) SetReady() bool {
	return x.ready.CompareAndSwap(false, true)
}

// compareTimestamps orders decimal second strings. Shorter strings are smaller so values of
// different width still compare numerically.
func compareTimestamps(a, b string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}
