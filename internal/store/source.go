package store

import (
	"context"
	"errors"

	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
)

var _ chain.Source = (*Source)(nil)

// Source serves chain data out of the archive. Account history is not archived and is read
// from history instead.
type Source struct {
	store   *Store
	history chain.HistorySource
}

// NewSource adapts s to chain.Source.
func NewSource(s *Store, history chain.HistorySource) *Source {
	return &Source{store: s, history: history}
}

// GetChainHeight returns the height of the highest archived block, 0 when the archive is empty.
func (s *Source) GetChainHeight(ctx context.Context) (uint64, error) {
	b, err := s.store.HighestBlock(ctx)
	if errors.Is(err, chain.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return b.Height, nil
}

func (s *Source) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	blocks, err := s.store.QueryBlocksFrom(ctx, height, 1)
	if err != nil {
		return "", err
	}
	if len(blocks) == 0 {
		return "", chain.ErrHeightOutOfRange
	}
	if blocks[0].Height != height {
		return "", chain.ErrNotFound
	}
	return blocks[0].Hash, nil
}

func (s *Source) GetBlock(ctx context.Context, hash string) (*chain.Block, error) {
	return s.store.QueryByBlockHash(ctx, hash)
}

func (s *Source) GetBlockByHeight(ctx context.Context, height uint64) (*chain.Block, error) {
	return s.store.QueryByHeight(ctx, height)
}

func (s *Source) ListBlocks(ctx context.Context, fromHeight uint64, limit int) ([]*chain.Block, error) {
	return s.store.QueryBlocksFrom(ctx, fromHeight, limit)
}

func (s *Source) GetTransactions(ctx context.Context, blockHash string, offset, limit int) ([]chain.Transaction, error) {
	return s.store.QueryTransactions(ctx, blockHash, offset, limit)
}

func (s *Source) GetVout(ctx context.Context, txid string, n int) (*chain.Vout, error) {
	return s.store.QueryVout(ctx, txid, n)
}

func (s *Source) GetAccountHistory(ctx context.Context, owner string, height uint64, txn int) (*chain.AccountHistory, error) {
	return s.history.GetAccountHistory(ctx, owner, height, txn)
}
