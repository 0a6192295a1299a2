// Package chaintest provides an in-memory chain.Source for tests.
package chaintest

import (
	"context"
	"fmt"
	"sync"

	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
)

var _ chain.Source = (*Chain)(nil)

type historyKey struct {
	owner  string
	height uint64
	txn    int
}

// Chain is a mutable canonical chain. Height 0 is a genesis block without transactions.
type Chain struct {
	mu sync.Mutex

	blocks     []*chain.Block
	byHash     map[string]*chain.Block
	histories  map[historyKey]*chain.AccountHistory
	failures   map[uint64]int
	generation int

	historyCalls int
	blockCalls   int
}

// New returns a chain holding only its genesis block.
func New() *Chain {
	c := &Chain{
		byHash:    make(map[string]*chain.Block),
		histories: make(map[historyKey]*chain.AccountHistory),
		failures:  make(map[uint64]int),
	}
	c.AddBlock()
	return c
}

// AddBlock appends a block on top of the tip. Transaction orders are assigned by position.
func (c *Chain) AddBlock(txs ...chain.Transaction) *chain.Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.addBlockLocked(txs)
}

// AddBlocks appends n empty blocks.
func (c *Chain) AddBlocks(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for range n {
		c.addBlockLocked(nil)
	}
}

func (c *Chain) addBlockLocked(txs []chain.Transaction) *chain.Block {
	height := uint64(len(c.blocks))
	prev := ""
	if height > 0 {
		prev = c.blocks[height-1].Hash
	}

	for i := range txs {
		txs[i].Order = i
		if txs[i].VoutCount == 0 {
			txs[i].VoutCount = len(txs[i].Vouts)
		}
	}

	b := &chain.Block{
		Hash:         fmt.Sprintf("%064x", uint64(c.generation)<<32|height),
		Height:       height,
		PreviousHash: prev,
		Time:         1_600_000_000 + int64(height)*30,
		MedianTime:   1_600_000_000 + int64(height)*30,
		TxCount:      len(txs),
		Transactions: txs,
	}
	c.blocks = append(c.blocks, b)
	c.byHash[b.Hash] = b
	return b
}

// Reorg drops every block at or above height; following AddBlock calls build the fork with
// fresh hashes.
func (c *Chain) Reorg(height uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range c.blocks[height:] {
		delete(c.byHash, b.Hash)
	}
	c.blocks = c.blocks[:height]
	c.generation++
}

// SetHistory records the amounts owner sees for the transaction at (height, txn).
func (c *Chain) SetHistory(owner string, height uint64, txn int, amounts ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.histories[historyKey{owner, height, txn}] = &chain.AccountHistory{
		Owner:       owner,
		TxN:         txn,
		BlockHeight: height,
		Amounts:     amounts,
	}
}

// FailHeight makes the next n fetches of height fail.
func (c *Chain) FailHeight(height uint64, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures[height] = n
}

// Block returns the canonical block at height.
func (c *Chain) Block(height uint64) *chain.Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blocks[height]
}

// HistoryCalls returns how many account history lookups were served.
func (c *Chain) HistoryCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.historyCalls
}

// BlockCalls returns how many block-by-height lookups were served.
func (c *Chain) BlockCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blockCalls
}

func (c *Chain) GetChainHeight(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return uint64(len(c.blocks) - 1), nil
}

func (c *Chain) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if height >= uint64(len(c.blocks)) {
		return "", chain.ErrHeightOutOfRange
	}
	return c.blocks[height].Hash, nil
}

func (c *Chain) GetBlock(ctx context.Context, hash string) (*chain.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.byHash[hash]
	if !ok {
		return nil, chain.ErrNotFound
	}
	return copyBlock(b, true), nil
}

func (c *Chain) GetBlockByHeight(ctx context.Context, height uint64) (*chain.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blockCalls++
	if n := c.failures[height]; n > 0 {
		c.failures[height] = n - 1
		return nil, fmt.Errorf("connection reset fetching block %d", height)
	}
	if height >= uint64(len(c.blocks)) {
		return nil, chain.ErrHeightOutOfRange
	}
	return copyBlock(c.blocks[height], true), nil
}

func (c *Chain) ListBlocks(ctx context.Context, fromHeight uint64, limit int) ([]*chain.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*chain.Block
	for h := fromHeight; h < uint64(len(c.blocks)) && len(out) < limit; h++ {
		out = append(out, copyBlock(c.blocks[h], false))
	}
	return out, nil
}

func (c *Chain) GetTransactions(ctx context.Context, blockHash string, offset, limit int) ([]chain.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.byHash[blockHash]
	if !ok {
		return nil, chain.ErrNotFound
	}
	if offset >= len(b.Transactions) {
		return nil, nil
	}
	end := min(offset+limit, len(b.Transactions))
	return append([]chain.Transaction(nil), b.Transactions[offset:end]...), nil
}

func (c *Chain) GetVout(ctx context.Context, txid string, n int) (*chain.Vout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range c.blocks {
		for _, tx := range b.Transactions {
			if tx.TxID == txid && n < len(tx.Vouts) {
				v := tx.Vouts[n]
				return &v, nil
			}
		}
	}
	return nil, chain.ErrNotFound
}

func (c *Chain) GetAccountHistory(ctx context.Context, owner string, height uint64, txn int) (*chain.AccountHistory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.historyCalls++
	h, ok := c.histories[historyKey{owner, height, txn}]
	if !ok {
		return &chain.AccountHistory{Owner: owner, BlockHeight: height, TxN: txn}, nil
	}
	return h, nil
}

func copyBlock(b *chain.Block, withTxs bool) *chain.Block {
	cp := *b
	cp.Transactions = nil
	if withTxs {
		cp.Transactions = append([]chain.Transaction(nil), b.Transactions...)
	}
	return &cp
}
