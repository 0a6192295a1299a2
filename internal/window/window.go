// Package window holds the bounded, height-ordered cache of recent blocks a synchronizer
// keeps for one network.
package window

import (
	"sort"
	"sync"

	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
)

// ChainWindow is an ascending-by-height sequence of blocks with unique hashes.
// Mutations are expected from a single owner; reads are safe from any goroutine.
type ChainWindow struct {
	mu       sync.RWMutex
	blocks   []*chain.Block
	capacity int
}

// New creates an empty window holding at most capacity blocks.
func New(capacity int) *ChainWindow {
	return &ChainWindow{
		blocks:   make([]*chain.Block, 0, capacity),
		capacity: capacity,
	}
}

// Enqueue inserts the block keeping height order. A block whose hash is already present is ignored.
// Callers dequeue first when the window is full.
func (w *ChainWindow) Enqueue(b *chain.Block) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, existing := range w.blocks {
		if existing.Hash == b.Hash {
			return false
		}
	}

	idx := sort.Search(len(w.blocks), func(i int) bool {
		return w.blocks[i].Height > b.Height
	})
	w.blocks = append(w.blocks, nil)
	copy(w.blocks[idx+1:], w.blocks[idx:])
	w.blocks[idx] = b

	return true
}

// Contains reports whether a block with the given hash is held.
func (w *ChainWindow) Contains(hash string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, b := range w.blocks {
		if b.Hash == hash {
			return true
		}
	}
	return false
}

// Dequeue removes and returns the lowest block.
func (w *ChainWindow) Dequeue() (*chain.Block, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.blocks) == 0 {
		return nil, false
	}
	b := w.blocks[0]
	w.blocks[0] = nil
	w.blocks = w.blocks[1:]
	return b, true
}

// Invalidate removes every block with the given hash and reports how many were removed.
func (w *ChainWindow) Invalidate(hash string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	kept := w.blocks[:0]
	removed := 0
	for _, b := range w.blocks {
		if b.Hash == hash {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	clear(w.blocks[len(kept):])
	w.blocks = kept
	return removed
}

func (w *ChainWindow) IsFull() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.blocks) >= w.capacity
}

// Highest returns the block with the greatest height.
func (w *ChainWindow) Highest() (*chain.Block, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if len(w.blocks) == 0 {
		return nil, false
	}
	return w.blocks[len(w.blocks)-1], true
}

// Lowest returns the block with the smallest height.
func (w *ChainWindow) Lowest() (*chain.Block, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if len(w.blocks) == 0 {
		return nil, false
	}
	return w.blocks[0], true
}

func (w *ChainWindow) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.blocks)
}

func (w *ChainWindow) Capacity() int {
	return w.capacity
}

// Snapshot returns the refs of the blocks currently held, lowest first.
func (w *ChainWindow) Snapshot() []chain.BlockRef {
	w.mu.RLock()
	defer w.mu.RUnlock()

	refs := make([]chain.BlockRef, len(w.blocks))
	for i, b := range w.blocks {
		refs[i] = b.Ref()
	}
	return refs
}
