package chain

import (
	"context"
	"errors"
)

var (
	// ErrHeightOutOfRange is returned when a block is requested beyond the current tip.
	ErrHeightOutOfRange = errors.New("block height out of range")

	// ErrNotFound is returned when a block, transaction or output is unknown to the source.
	ErrNotFound = errors.New("not found")
)

// BlockSource reads blocks of the canonical chain.
type BlockSource interface {
	// GetChainHeight returns the height of the current tip.
	GetChainHeight(ctx context.Context) (uint64, error)

	// GetBlockHash returns the hash of the canonical block at height.
	GetBlockHash(ctx context.Context, height uint64) (string, error)

	// GetBlock returns the block with the given hash, including its transactions.
	GetBlock(ctx context.Context, hash string) (*Block, error)

	// GetBlockByHeight returns the canonical block at height, including its transactions.
	// It returns ErrHeightOutOfRange when height is beyond the tip.
	GetBlockByHeight(ctx context.Context, height uint64) (*Block, error)

	// ListBlocks returns up to limit canonical blocks in ascending height order starting at
	// fromHeight. Transactions are not loaded; TxCount is set.
	ListBlocks(ctx context.Context, fromHeight uint64, limit int) ([]*Block, error)
}

// TxSource reads transactions and their outputs.
type TxSource interface {
	// GetTransactions returns up to limit transactions of a block starting at position offset.
	GetTransactions(ctx context.Context, blockHash string, offset, limit int) ([]Transaction, error)

	// GetVout returns output n of transaction txid.
	GetVout(ctx context.Context, txid string, n int) (*Vout, error)
}

// HistorySource reads per-address account history.
type HistorySource interface {
	// GetAccountHistory returns the history entry of owner caused by the transaction at
	// position txn of the block at height.
	GetAccountHistory(ctx context.Context, owner string, height uint64, txn int) (*AccountHistory, error)
}

// Source is the full chain data source consumed by the indexer.
type Source interface {
	BlockSource
	TxSource
	HistorySource
}
