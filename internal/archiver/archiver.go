// Package archiver copies canonical blocks from the node into the archive store.
package archiver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/internal/db"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/internal/metrics"
	"github.com/goran-ethernal/SwapIndexor/internal/store"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
)

// Archive is the store the archiver writes to.
type Archive interface {
	Checkpoint(ctx context.Context) (*store.SyncState, error)
	SaveBlock(ctx context.Context, block *chain.Block) error
	DeleteBlock(ctx context.Context, hash string) error
	Reset(ctx context.Context) error
	HighestBlock(ctx context.Context) (*chain.Block, error)
	LowestBlock(ctx context.Context) (*chain.Block, error)
	PruneBelow(ctx context.Context, height uint64) (int64, error)
}

// Archiver follows the node one block at a time. Every block is checked against the
// archived tip; a mismatch drops the tip and the archiver walks back until the chains join.
type Archiver struct {
	network  string
	cfg      config.ArchiveConfig
	capacity uint64
	source   chain.BlockSource
	archive  Archive
	log      *logger.Logger
}

// New creates an archiver. capacity sets the default start height, capacity blocks below
// the node tip, when the configuration has none.
func New(
	network string,
	cfg config.ArchiveConfig,
	capacity int,
	source chain.BlockSource,
	archive Archive,
	log *logger.Logger,
) *Archiver {
	return &Archiver{
		network:  network,
		cfg:      cfg,
		capacity: uint64(capacity),
		source:   source,
		archive:  archive,
		log:      log.WithComponent(common.ComponentArchiver),
	}
}

// Run archives until ctx is cancelled. It polls every PollInterval once caught up and after
// a failed step.
func (a *Archiver) Run(ctx context.Context) error {
	a.log.Infow("starting archiver",
		"network", a.network,
		"batch_size", a.cfg.BatchSize,
		"poll_interval", a.cfg.PollInterval.Duration,
	)

	for {
		saved, err := a.Step(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			a.log.Errorw("archive step failed", "network", a.network, "error", err)
			metrics.ErrorsInc(common.ComponentArchiver, "error")
		}

		if saved > 0 && err == nil {
			continue
		}

		select {
		case <-ctx.Done():
			a.log.Infow("archiver stopped", "network", a.network)
			return nil
		case <-time.After(a.cfg.PollInterval.Duration):
		}
	}
}

// Step archives up to BatchSize blocks and applies the retention policy. It returns the
// number of blocks saved.
func (a *Archiver) Step(ctx context.Context) (int, error) {
	saved := 0
	for saved < a.cfg.BatchSize {
		ok, err := a.next(ctx)
		var reorgErr *ReorgDetectedError
		if errors.As(err, &reorgErr) {
			if err := a.handleReorg(ctx, reorgErr); err != nil {
				return saved, err
			}
			continue
		}
		if err != nil {
			return saved, err
		}
		if !ok {
			break
		}
		saved++
	}

	if saved > 0 {
		a.log.Debugw("archived blocks", "network", a.network, "count", saved)
	}

	if err := a.applyRetention(ctx); err != nil {
		return saved, err
	}

	return saved, nil
}

// next archives the block following the checkpoint. It reports false when the node has no
// such block yet.
func (a *Archiver) next(ctx context.Context) (bool, error) {
	state, err := a.archive.Checkpoint(ctx)
	if err != nil {
		return false, err
	}

	height := state.Height + 1
	if state.Hash == "" {
		if height, err = a.startHeight(ctx); err != nil {
			return false, err
		}
	}

	block, err := a.source.GetBlockByHeight(ctx, height)
	if errors.Is(err, chain.ErrHeightOutOfRange) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get block %d: %w", height, err)
	}

	if state.Hash != "" && block.PreviousHash != state.Hash {
		return false, NewReorgError(height, state.Hash, block.PreviousHash)
	}

	if err := a.archive.SaveBlock(ctx, block); err != nil {
		return false, fmt.Errorf("failed to archive block %d: %w", height, err)
	}

	archivedHeightSet(a.network, block.Height)
	metrics.BlocksProcessedInc(common.ComponentArchiver, a.network, 1)
	metrics.LastIndexedBlockSet(common.ComponentArchiver, a.network, block.Height)

	return true, nil
}

func (a *Archiver) startHeight(ctx context.Context) (uint64, error) {
	if a.cfg.StartHeight > 0 {
		return a.cfg.StartHeight, nil
	}

	tip, err := a.source.GetChainHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain height: %w", err)
	}
	if tip > a.capacity {
		return tip - a.capacity, nil
	}
	return 1, nil
}

// handleReorg drops the archived tip. The checkpoint moves to its parent, so the next step
// compares the node against the block below.
func (a *Archiver) handleReorg(ctx context.Context, reorgErr *ReorgDetectedError) error {
	a.log.Warnw("reorg detected, dropping archived tip",
		"network", a.network,
		"height", reorgErr.Height-1,
		"archived_hash", reorgErr.ArchivedHash,
		"node_parent_hash", reorgErr.ParentHash,
	)

	err := a.archive.DeleteBlock(ctx, reorgErr.ArchivedHash)
	if errors.Is(err, chain.ErrNotFound) {
		// the fork is older than anything archived
		a.log.Warnw("reorg deeper than the archive, restarting from the start height", "network", a.network)
		return a.archive.Reset(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to drop archived block %s: %w", reorgErr.ArchivedHash, err)
	}

	reorgLog(a.network, 1)
	metrics.ReorgsInc(common.ComponentArchiver, a.network)

	return nil
}

// applyRetention prunes the oldest blocks past max_blocks, and halves the archive, oldest
// first, while it exceeds max_db_size_mb.
func (a *Archiver) applyRetention(ctx context.Context) error {
	policy := a.cfg.RetentionPolicy
	if !policy.IsEnabled() {
		return nil
	}

	highest, err := a.archive.HighestBlock(ctx)
	if errors.Is(err, chain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if policy.MaxBlocks > 0 && highest.Height >= policy.MaxBlocks {
		if _, err := a.archive.PruneBelow(ctx, highest.Height-policy.MaxBlocks+1); err != nil {
			return fmt.Errorf("failed to apply max_blocks retention: %w", err)
		}
	}

	if policy.MaxDBSizeMB == 0 {
		return nil
	}

	size, err := db.DBTotalSize(a.cfg.DB.Path)
	if err != nil {
		return err
	}
	if uint64(size) <= common.MBToBytes(policy.MaxDBSizeMB) {
		return nil
	}

	lowest, err := a.archive.LowestBlock(ctx)
	if err != nil {
		return err
	}
	cut := lowest.Height + (highest.Height-lowest.Height)/2
	a.log.Warnw("archive over size limit, pruning",
		"network", a.network,
		"size_mb", common.BytesToMB(uint64(size)),
		"limit_mb", policy.MaxDBSizeMB,
		"below", cut,
	)
	if _, err := a.archive.PruneBelow(ctx, cut); err != nil {
		return fmt.Errorf("failed to apply max_db_size_mb retention: %w", err)
	}

	return nil
}
