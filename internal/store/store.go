// Package store persists canonical blocks, their transactions and outputs in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/internal/db"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/internal/metrics"
	"github.com/goran-ethernal/SwapIndexor/internal/migrations"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
	"github.com/russross/meddler"
)

// Store is the archive of one network.
type Store struct {
	name        string
	db          *sql.DB
	maintenance db.Maintenance
	log         *logger.Logger
}

// New wraps an already migrated database. name labels logs and metrics.
func New(name string, sqlDB *sql.DB, maintenance db.Maintenance, log *logger.Logger) *Store {
	if maintenance == nil {
		maintenance = &db.NoOpMaintenance{}
	}

	return &Store{
		name:        name,
		db:          sqlDB,
		maintenance: maintenance,
		log:         log.WithComponent(common.ComponentStore),
	}
}

// Open opens and migrates the archive database of a network.
func Open(name string, cfg *config.ArchiveConfig, log *logger.Logger) (*Store, error) {
	if dir := filepath.Dir(cfg.DB.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := db.Open(cfg.DB, migrations.All(), log)
	if err != nil {
		return nil, err
	}

	maintenance := db.NewMaintenanceCoordinator(name, cfg.DB.Path, sqlDB, cfg.Maintenance, log)

	s := New(name, sqlDB, maintenance, log)
	s.log.Infow("archive opened", "network", name, "path", cfg.DB.Path)

	return s, nil
}

// Start starts background maintenance.
func (s *Store) Start(ctx context.Context) error {
	return s.maintenance.Start(ctx)
}

// Close stops maintenance and closes the database.
func (s *Store) Close() error {
	if err := s.maintenance.Stop(); err != nil {
		s.log.Warnw("failed to stop maintenance", "network", s.name, "error", err)
	}
	return s.db.Close()
}

// DB returns the underlying database.
func (s *Store) DB() *sql.DB {
	return s.db
}

// run executes op under the maintenance operation lock and records its metrics.
func (s *Store) run(op string, fn func() error) error {
	unlock := s.maintenance.AcquireOperationLock()
	defer unlock()

	start := time.Now()
	metrics.DBQueryInc(s.name, op)
	err := fn()
	metrics.DBQueryDuration(s.name, op, time.Since(start))

	if err != nil && !errors.Is(err, chain.ErrNotFound) && !errors.Is(err, chain.ErrHeightOutOfRange) {
		metrics.DBErrorsInc(s.name, op)
	}

	return err
}

// QueryByHeight returns the stored block at height with its transactions. Outputs are not
// loaded. It returns chain.ErrHeightOutOfRange above the highest stored block and
// chain.ErrNotFound for a pruned or never archived height.
func (s *Store) QueryByHeight(ctx context.Context, height uint64) (*chain.Block, error) {
	var block *chain.Block
	err := s.run("query_by_height", func() error {
		row := &blockRow{}
		err := meddler.QueryRow(s.db, row, `SELECT * FROM blocks WHERE height = ?`, height)
		if errors.Is(err, sql.ErrNoRows) {
			return s.missingHeight(height)
		}
		if err != nil {
			return fmt.Errorf("failed to query block %d: %w", height, err)
		}

		block = row.toBlock()
		block.Transactions, err = s.queryTransactions(row.Hash, 0, -1)
		return err
	})

	return block, err
}

func (s *Store) missingHeight(height uint64) error {
	var highest sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(height) FROM blocks`).Scan(&highest); err != nil {
		return fmt.Errorf("failed to query highest block: %w", err)
	}
	if !highest.Valid || uint64(highest.Int64) < height {
		return chain.ErrHeightOutOfRange
	}
	return fmt.Errorf("block %d: %w", height, chain.ErrNotFound)
}

// QueryByBlockHash returns the stored block with hash and its transactions.
func (s *Store) QueryByBlockHash(ctx context.Context, hash string) (*chain.Block, error) {
	var block *chain.Block
	err := s.run("query_by_hash", func() error {
		row := &blockRow{}
		err := meddler.QueryRow(s.db, row, `SELECT * FROM blocks WHERE hash = ?`, hash)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("block %s: %w", hash, chain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to query block %s: %w", hash, err)
		}

		block = row.toBlock()
		block.Transactions, err = s.queryTransactions(hash, 0, -1)
		return err
	})

	return block, err
}

// QueryBlocksFrom returns up to limit stored blocks at or above height, ascending, without
// transactions.
func (s *Store) QueryBlocksFrom(ctx context.Context, height uint64, limit int) ([]*chain.Block, error) {
	var blocks []*chain.Block
	err := s.run("query_blocks_from", func() error {
		var rows []*blockRow
		err := meddler.QueryAll(s.db, &rows,
			`SELECT * FROM blocks WHERE height >= ? ORDER BY height ASC LIMIT ?`, height, limit)
		if err != nil {
			return fmt.Errorf("failed to query blocks from %d: %w", height, err)
		}

		blocks = make([]*chain.Block, len(rows))
		for i, r := range rows {
			blocks[i] = r.toBlock()
		}
		return nil
	})

	return blocks, err
}

// QueryTransactions returns up to limit transactions of a block starting at position offset.
func (s *Store) QueryTransactions(ctx context.Context, hash string, offset, limit int) ([]chain.Transaction, error) {
	var txs []chain.Transaction
	err := s.run("query_transactions", func() error {
		var err error
		txs, err = s.queryTransactions(hash, offset, limit)
		return err
	})

	return txs, err
}

func (s *Store) queryTransactions(hash string, offset, limit int) ([]chain.Transaction, error) {
	var rows []*txRow
	err := meddler.QueryAll(s.db, &rows,
		`SELECT * FROM transactions WHERE block_hash = ? AND tx_order >= ? ORDER BY tx_order ASC LIMIT ?`,
		hash, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions of %s: %w", hash, err)
	}

	txs := make([]chain.Transaction, len(rows))
	for i, r := range rows {
		txs[i] = r.toTransaction()
	}
	return txs, nil
}

// QueryVout returns output n of transaction txid.
func (s *Store) QueryVout(ctx context.Context, txid string, n int) (*chain.Vout, error) {
	var vout *chain.Vout
	err := s.run("query_vout", func() error {
		row := &voutRow{}
		err := meddler.QueryRow(s.db, row, `SELECT * FROM vouts WHERE txid = ? AND n = ?`, txid, n)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("vout %s:%d: %w", txid, n, chain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to query vout %s:%d: %w", txid, n, err)
		}

		vout = row.toVout()
		return nil
	})

	return vout, err
}

// HighestBlock returns the highest stored block without transactions, or chain.ErrNotFound
// when the store is empty.
func (s *Store) HighestBlock(ctx context.Context) (*chain.Block, error) {
	return s.edgeBlock("highest_block", "DESC")
}

// LowestBlock returns the lowest stored block without transactions, or chain.ErrNotFound
// when the store is empty.
func (s *Store) LowestBlock(ctx context.Context) (*chain.Block, error) {
	return s.edgeBlock("lowest_block", "ASC")
}

func (s *Store) edgeBlock(op, order string) (*chain.Block, error) {
	var block *chain.Block
	err := s.run(op, func() error {
		row := &blockRow{}
		err := meddler.QueryRow(s.db, row, `SELECT * FROM blocks ORDER BY height `+order+` LIMIT 1`)
		if errors.Is(err, sql.ErrNoRows) {
			return chain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query %s: %w", op, err)
		}

		block = row.toBlock()
		return nil
	})

	return block, err
}

// BlockCount returns the number of stored blocks.
func (s *Store) BlockCount(ctx context.Context) (uint64, error) {
	var count uint64
	err := s.run("block_count", func() error {
		return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blocks`).Scan(&count)
	})

	return count, err
}

// Checkpoint returns the archive sync state.
func (s *Store) Checkpoint(ctx context.Context) (*SyncState, error) {
	var state SyncState
	err := s.run("checkpoint", func() error {
		if err := meddler.QueryRow(s.db, &state, `SELECT * FROM sync_state WHERE id = 1`); err != nil {
			return fmt.Errorf("failed to get sync state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &state, nil
}

// SaveBlock stores a block with its transactions and outputs and moves the checkpoint to it,
// all in one database transaction.
func (s *Store) SaveBlock(ctx context.Context, block *chain.Block) error {
	return s.run("save_block", func() error {
		return s.withTx(ctx, func(tx *sql.Tx) error {
			if err := meddler.Insert(tx, "blocks", blockRowOf(block)); err != nil {
				return fmt.Errorf("failed to insert block %d: %w", block.Height, err)
			}

			for _, t := range block.Transactions {
				row := &txRow{
					BlockHash: block.Hash,
					Order:     t.Order,
					TxID:      t.TxID,
					Weight:    t.Weight,
					VoutCount: t.VoutCount,
				}
				if err := meddler.Insert(tx, "transactions", row); err != nil {
					return fmt.Errorf("failed to insert transaction %s: %w", t.TxID, err)
				}

				for _, v := range t.Vouts {
					if _, err := tx.ExecContext(ctx,
						`INSERT OR REPLACE INTO vouts (txid, n, block_hash, value, script_hex, token_id)
						VALUES (?, ?, ?, ?, ?, ?)`,
						t.TxID, v.N, block.Hash, v.Value, v.ScriptHex, v.TokenID,
					); err != nil {
						return fmt.Errorf("failed to insert vout %s:%d: %w", t.TxID, v.N, err)
					}
				}
			}

			return s.setCheckpoint(tx, block.Height, block.Hash)
		})
	})
}

// DeleteBlock removes a block with its transactions and outputs. When the block is the
// checkpoint, the checkpoint steps back to its parent.
func (s *Store) DeleteBlock(ctx context.Context, hash string) error {
	return s.run("delete_block", func() error {
		return s.withTx(ctx, func(tx *sql.Tx) error {
			row := &blockRow{}
			err := meddler.QueryRow(tx, row, `SELECT * FROM blocks WHERE hash = ?`, hash)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("block %s: %w", hash, chain.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("failed to query block %s: %w", hash, err)
			}

			for _, q := range []string{
				`DELETE FROM vouts WHERE block_hash = ?`,
				`DELETE FROM transactions WHERE block_hash = ?`,
				`DELETE FROM blocks WHERE hash = ?`,
			} {
				if _, err := tx.ExecContext(ctx, q, hash); err != nil {
					return fmt.Errorf("failed to delete block %s: %w", hash, err)
				}
			}

			var state SyncState
			if err := meddler.QueryRow(tx, &state, `SELECT * FROM sync_state WHERE id = 1`); err != nil {
				return fmt.Errorf("failed to get sync state: %w", err)
			}
			if state.Hash != hash {
				return nil
			}

			parent := uint64(0)
			if row.Height > 0 {
				parent = row.Height - 1
			}
			return s.setCheckpoint(tx, parent, row.PreviousHash)
		})
	})
}

// Reset empties the archive and clears the checkpoint.
func (s *Store) Reset(ctx context.Context) error {
	return s.run("reset", func() error {
		return s.withTx(ctx, func(tx *sql.Tx) error {
			for _, table := range []string{"vouts", "transactions", "blocks"} {
				if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
					return fmt.Errorf("failed to empty %s: %w", table, err)
				}
			}
			return s.setCheckpoint(tx, 0, "")
		})
	})
}

// PruneBelow removes every block below height and returns how many were removed.
func (s *Store) PruneBelow(ctx context.Context, height uint64) (int64, error) {
	var pruned int64
	err := s.run("prune_below", func() error {
		return s.withTx(ctx, func(tx *sql.Tx) error {
			for _, q := range []string{
				`DELETE FROM vouts WHERE block_hash IN (SELECT hash FROM blocks WHERE height < ?)`,
				`DELETE FROM transactions WHERE block_hash IN (SELECT hash FROM blocks WHERE height < ?)`,
			} {
				if _, err := tx.ExecContext(ctx, q, height); err != nil {
					return fmt.Errorf("failed to prune below %d: %w", height, err)
				}
			}

			res, err := tx.ExecContext(ctx, `DELETE FROM blocks WHERE height < ?`, height)
			if err != nil {
				return fmt.Errorf("failed to prune below %d: %w", height, err)
			}
			pruned, _ = res.RowsAffected()
			return nil
		})
	})
	if err != nil {
		return 0, err
	}

	if pruned > 0 {
		retentionBlocksPrunedInc(s.name, uint64(pruned))
		s.log.Infow("pruned archive", "network", s.name, "below", height, "blocks", pruned)

		if err := s.maintenance.BlocksPruned(ctx, pruned); err != nil {
			s.log.Warnw("maintenance after pruning failed", "network", s.name, "error", err)
		}
	}

	return pruned, nil
}

func (s *Store) setCheckpoint(tx *sql.Tx, height uint64, hash string) error {
	state := &SyncState{
		ID:        1,
		Height:    height,
		Hash:      hash,
		UpdatedAt: time.Now().Unix(),
	}
	if err := meddler.Update(tx, "sync_state", state); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
