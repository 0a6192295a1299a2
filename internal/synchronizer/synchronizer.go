package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/internal/metrics"
	"github.com/goran-ethernal/SwapIndexor/internal/swaps"
	"github.com/goran-ethernal/SwapIndexor/internal/window"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrAlreadyRunning is returned by Start on a running synchronizer.
	ErrAlreadyRunning = errors.New("synchronizer already running")

	// ErrStopTimeout is returned by Stop when the in-flight cycle outlives the stop timeout.
	ErrStopTimeout = errors.New("timed out waiting for synchronization cycle to finish")
)

// Detector extracts the swaps of a block.
type Detector interface {
	DetectBlock(ctx context.Context, block *chain.Block) ([]chain.SwapRecord, error)
}

// Synchronizer keeps a window of recent canonical blocks and the swaps they hold.
// It starts in catch-up mode, fetching the blocks just below the tip concurrently, and then
// follows the chain block by block, repairing reorgs by walking back through the window.
type Synchronizer struct {
	network  string
	cfg      config.SyncConfig
	source   chain.BlockSource
	detector Detector
	window   *window.ChainWindow
	index    *swaps.Index
	log      *logger.Logger

	mode     atomic.Value
	running  atomic.Bool
	indexing atomic.Bool

	// transition serializes window and index mutations
	transition sync.Mutex

	stopCh chan struct{}
	done   chan struct{}
}

// New creates a synchronizer for one network.
func New(
	network string,
	cfg config.SyncConfig,
	source chain.BlockSource,
	detector Detector,
	w *window.ChainWindow,
	index *swaps.Index,
	log *logger.Logger,
) *Synchronizer {
	s := &Synchronizer{
		network:  network,
		cfg:      cfg,
		source:   source,
		detector: detector,
		window:   w,
		index:    index,
		log:      log.WithComponent(common.ComponentSynchronizer),
	}
	s.mode.Store(ModeCatchUp)

	return s
}

// Mode returns the current synchronization mode.
func (s *Synchronizer) Mode() Mode {
	return s.mode.Load().(Mode) //nolint:forcetypeassert
}

func (s *Synchronizer) setMode(mode Mode) {
	prev := s.Mode()
	if prev == mode {
		return
	}
	s.log.Infof("switching sync mode from %v to %v", prev, mode)
	s.mode.Store(mode)
}

// Start launches the polling loop. A cycle runs immediately and then on every poll interval.
// Cycles never overlap: a tick that fires while a cycle is in flight is skipped.
func (s *Synchronizer) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})

	s.log.Infow("starting synchronizer",
		"network", s.network,
		"window_capacity", s.window.Capacity(),
		"poll_interval", s.cfg.PollInterval.Duration,
	)

	go s.loop(ctx)

	return nil
}

func (s *Synchronizer) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.PollInterval.Duration)
	defer ticker.Stop()

	go s.Cycle(ctx)

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			go s.Cycle(ctx)
		}
	}
}

// Stop stops scheduling cycles and waits for the in-flight one, polling every
// StopPollInterval for at most StopTimeout.
func (s *Synchronizer) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	close(s.stopCh)
	<-s.done

	deadline := time.NewTimer(s.cfg.StopTimeout.Duration)
	defer deadline.Stop()
	poll := time.NewTicker(s.cfg.StopPollInterval.Duration)
	defer poll.Stop()

	for s.indexing.Load() {
		select {
		case <-poll.C:
		case <-deadline.C:
			s.log.Warnw("synchronization cycle still running after stop timeout",
				"network", s.network,
				"timeout", s.cfg.StopTimeout.Duration,
			)
			return ErrStopTimeout
		}
	}

	s.log.Infow("synchronizer stopped", "network", s.network)

	return nil
}

// IsRunning reports whether the synchronizer accepts new cycles.
func (s *Synchronizer) IsRunning() bool {
	return s.running.Load()
}

// Cycle runs one synchronization cycle. It returns immediately if the synchronizer is not
// running or a cycle is already in flight. Otherwise it catches up once, if still needed, and
// then takes linear steps until there is no more work or the synchronizer is stopped.
func (s *Synchronizer) Cycle(ctx context.Context) {
	if !s.running.Load() {
		return
	}
	if !s.indexing.CompareAndSwap(false, true) {
		s.log.Debug("synchronization cycle already in flight, skipping")
		return
	}
	defer s.indexing.Store(false)

	for s.running.Load() {
		if s.Mode() == ModeCatchUp {
			if err := s.catchUp(ctx); err != nil {
				s.cycleFailed("catch-up failed", err)
				return
			}
			continue
		}

		worked, err := s.step(ctx)
		if err != nil {
			s.cycleFailed("linear step failed", err)
			return
		}
		if !worked {
			return
		}
	}
}

func (s *Synchronizer) cycleFailed(msg string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	s.log.Errorw(msg, "network", s.network, "error", err)
	metrics.ErrorsInc(common.ComponentSynchronizer, "error")
}

// catchUp fills the window with the blocks just below the near-tip offset.
func (s *Synchronizer) catchUp(ctx context.Context) error {
	start := time.Now()

	tip, err := s.source.GetChainHeight(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain height: %w", err)
	}

	from, to := catchUpRange(tip, uint64(s.window.Capacity()), s.cfg.NearTipOffset)

	s.log.Infow("catching up",
		"network", s.network,
		"chain_height", tip,
		"from", from,
		"to", to,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.FetchConcurrency)

	for height := from; height < to; height++ {
		g.Go(func() error {
			block, records, err := s.fetchWithRetry(gctx, height)
			if err != nil {
				return err
			}
			if block != nil {
				s.accept(block, records)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.log.Infow("catch-up finished",
		"network", s.network,
		"blocks", s.window.Len(),
		"swaps", s.index.Len(),
		"duration", time.Since(start),
	)
	s.setMode(ModeLinear)

	return nil
}

// fetchWithRetry fetches and scans the block at height, retrying with jittered backoff until
// it succeeds or ctx is cancelled. A height the source does not hold yields a nil block.
func (s *Synchronizer) fetchWithRetry(ctx context.Context, height uint64) (*chain.Block, []chain.SwapRecord, error) {
	for retry := 0; ; retry++ {
		if retry > 0 {
			delay := common.Backoff(retry, s.cfg.CatchUpRetryBackoff.Duration, s.cfg.CatchUpRetryMaxBackoff.Duration, 2)
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		block, records, err := s.fetch(ctx, height)
		if err == nil {
			return block, records, nil
		}
		if errors.Is(err, chain.ErrNotFound) {
			s.log.Debugw("block not held by source, skipping", "network", s.network, "height", height)
			return nil, nil, nil
		}
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}

		s.log.Warnw("failed to fetch block, retrying",
			"network", s.network,
			"height", height,
			"retry", retry+1,
			"error", err,
		)
		metrics.ErrorsInc(common.ComponentSynchronizer, "warning")
	}
}

func (s *Synchronizer) fetch(ctx context.Context, height uint64) (*chain.Block, []chain.SwapRecord, error) {
	block, err := s.source.GetBlockByHeight(ctx, height)
	if err != nil {
		return nil, nil, err
	}

	records, err := s.detector.DetectBlock(ctx, block)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to detect swaps in block %d: %w", height, err)
	}

	return block, records, nil
}

// step advances the window by one block. It reports whether it did any work.
func (s *Synchronizer) step(ctx context.Context) (bool, error) {
	highest, ok := s.window.Highest()
	if !ok {
		return s.seed(ctx)
	}

	next, err := s.source.GetBlockByHeight(ctx, highest.Height+1)
	if errors.Is(err, chain.ErrHeightOutOfRange) {
		if s.index.SetReady() {
			s.log.Infow("swap index ready",
				"network", s.network,
				"height", highest.Height,
				"swaps", s.index.Len(),
			)
			metrics.IndexReadySet(s.network, true)
		}
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get block %d: %w", highest.Height+1, err)
	}

	if next.PreviousHash != highest.Hash {
		s.log.Warnw("reorg detected, dropping window tip",
			"network", s.network,
			"height", highest.Height,
			"hash", highest.Hash,
			"next_previous_hash", next.PreviousHash,
		)
		s.invalidate(highest.Hash)
		metrics.ReorgsInc(common.ComponentSynchronizer, s.network)
		return true, nil
	}

	records, err := s.detector.DetectBlock(ctx, next)
	if err != nil {
		return false, fmt.Errorf("failed to detect swaps in block %d: %w", next.Height, err)
	}
	s.accept(next, records)

	return true, nil
}

// seed starts an empty window one capacity below the tip.
func (s *Synchronizer) seed(ctx context.Context) (bool, error) {
	tip, err := s.source.GetChainHeight(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get chain height: %w", err)
	}

	height := uint64(1)
	if capacity := uint64(s.window.Capacity()); tip > capacity {
		height = tip - capacity
	}

	block, records, err := s.fetch(ctx, height)
	if errors.Is(err, chain.ErrHeightOutOfRange) || errors.Is(err, chain.ErrNotFound) {
		s.log.Debugw("seed block not available yet, waiting",
			"network", s.network,
			"height", height,
			"tip", tip,
			"reason", err,
		)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.accept(block, records)

	return true, nil
}

// accept adds block and its swaps, evicting the lowest block first when the window is full.
func (s *Synchronizer) accept(block *chain.Block, records []chain.SwapRecord) {
	start := time.Now()

	s.transition.Lock()
	defer s.transition.Unlock()

	if s.window.Contains(block.Hash) {
		return
	}

	var evicted []string
	if s.window.IsFull() {
		if lowest, ok := s.window.Dequeue(); ok {
			evicted = append(evicted, lowest.Hash)
		}
	}

	s.window.Enqueue(block)
	s.index.Apply(evicted, records)

	s.log.Debugw("block indexed",
		"network", s.network,
		"height", block.Height,
		"hash", block.Hash,
		"swaps", len(records),
	)

	metrics.BlocksProcessedInc(common.ComponentSynchronizer, s.network, 1)
	metrics.LastIndexedBlockSet(common.ComponentSynchronizer, s.network, block.Height)
	metrics.SwapsDetectedInc(s.network, len(records))
	metrics.IndexedSwapsSet(s.network, s.index.Len())
	metrics.WindowSizeSet(s.network, s.window.Len())
	metrics.BlockProcessingTimeLog(common.ComponentSynchronizer, s.network, time.Since(start))
}

// invalidate removes the block with hash and every swap it carried.
func (s *Synchronizer) invalidate(hash string) {
	s.transition.Lock()
	defer s.transition.Unlock()

	s.window.Invalidate(hash)
	s.index.Apply([]string{hash}, nil)

	metrics.IndexedSwapsSet(s.network, s.index.Len())
	metrics.WindowSizeSet(s.network, s.window.Len())
}

// Status returns a snapshot of the synchronizer state.
func (s *Synchronizer) Status() Status {
	st := Status{
		Network:        s.network,
		Mode:           s.Mode(),
		Running:        s.IsRunning(),
		Ready:          s.index.IsReady(),
		WindowSize:     s.window.Len(),
		WindowCapacity: s.window.Capacity(),
		Swaps:          s.index.Len(),
	}
	if b, ok := s.window.Lowest(); ok {
		ref := b.Ref()
		st.Lowest = &ref
	}
	if b, ok := s.window.Highest(); ok {
		ref := b.Ref()
		st.Highest = &ref
	}

	return st
}

// catchUpRange returns the half-open height range [from, to) catch-up fetches.
func catchUpRange(tip, capacity, offset uint64) (uint64, uint64) {
	if tip <= offset {
		return 1, 1
	}
	to := tip - offset

	from := uint64(1)
	if to > capacity+1 {
		from = to - capacity
	}
	if to < from {
		to = from
	}

	return from, to
}
