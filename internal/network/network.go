// Package network assembles the components that index one chain.
package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goran-ethernal/SwapIndexor/internal/archiver"
	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/internal/dex"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/internal/rpc"
	"github.com/goran-ethernal/SwapIndexor/internal/store"
	"github.com/goran-ethernal/SwapIndexor/internal/swaps"
	"github.com/goran-ethernal/SwapIndexor/internal/synchronizer"
	"github.com/goran-ethernal/SwapIndexor/internal/window"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
)

// Options holds the settings shared by every network.
type Options struct {
	Sync       config.SyncConfig
	Pagination config.PaginationConfig
	Logging    *config.LoggingConfig

	// Log overrides the per-component loggers built from Logging
	Log *logger.Logger
}

// Network is the instance set of one chain: its window, swap index, detector, synchronizer
// and paginator, plus the archive when the persisted variant is enabled.
type Network struct {
	name string
	cfg  config.NetworkConfig

	window    *window.ChainWindow
	index     *swaps.Index
	detector  *dex.Detector
	sync      *synchronizer.Synchronizer
	paginator *swaps.Paginator

	store    *store.Store
	archiver *archiver.Archiver

	defaultLimit int

	closeNode func()
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	log       *logger.Logger
}

// New dials the node of cfg and assembles the network.
func New(ctx context.Context, cfg config.NetworkConfig, opts Options) (*Network, error) {
	client, err := rpc.NewClient(ctx, cfg.RPCURL, cfg.Retry, componentLogger(common.ComponentRPC, opts))
	if err != nil {
		return nil, fmt.Errorf("network %s: %w", cfg.Name, err)
	}

	n, err := Assemble(cfg, client, opts)
	if err != nil {
		client.Close()
		return nil, err
	}
	n.closeNode = client.Close

	return n, nil
}

// Assemble builds the network over node. With the archive enabled the synchronizer, the
// detector and the paginator read blocks from the archive and node only serves account
// history and feeds the archiver.
func Assemble(cfg config.NetworkConfig, node chain.Source, opts Options) (*Network, error) {
	params, err := dex.ParamsForNetwork(cfg.Name)
	if err != nil {
		return nil, err
	}

	n := &Network{
		name:         cfg.Name,
		cfg:          cfg,
		window:       window.New(cfg.BlockCacheCount),
		index:        swaps.NewIndex(),
		defaultLimit: opts.Pagination.DefaultLimit,
		log:          componentLogger(common.ComponentSynchronizer, opts),
	}

	var source chain.Source = node
	if cfg.ArchiveEnabled() {
		n.store, err = store.Open(cfg.Name, cfg.Archive, componentLogger(common.ComponentStore, opts))
		if err != nil {
			return nil, fmt.Errorf("network %s: %w", cfg.Name, err)
		}
		source = store.NewSource(n.store, node)
		n.archiver = archiver.New(
			cfg.Name,
			*cfg.Archive,
			cfg.BlockCacheCount,
			node,
			n.store,
			componentLogger(common.ComponentArchiver, opts),
		)
	}

	n.detector = dex.NewDetector(source, params, componentLogger(common.ComponentSwapDetector, opts))
	n.sync = synchronizer.New(
		cfg.Name,
		opts.Sync,
		source,
		n.detector,
		n.window,
		n.index,
		componentLogger(common.ComponentSynchronizer, opts),
	)
	n.paginator = swaps.NewPaginator(
		source,
		n.detector,
		opts.Pagination.StartHeight,
		componentLogger(common.ComponentSwapDetector, opts),
	)

	return n, nil
}

func componentLogger(component string, opts Options) *logger.Logger {
	if opts.Log != nil {
		return opts.Log.WithComponent(component)
	}
	if opts.Logging == nil {
		return logger.GetDefaultLogger().WithComponent(component)
	}
	return logger.NewComponentLoggerFromConfig(component, opts.Logging)
}

// Name returns the network name.
func (n *Network) Name() string {
	return n.name
}

// Archived reports whether the network runs over the archive.
func (n *Network) Archived() bool {
	return n.store != nil
}

// Start starts archive maintenance, the archiver and the synchronizer.
func (n *Network) Start(ctx context.Context) error {
	ctx, n.cancel = context.WithCancel(ctx)

	if n.store != nil {
		if err := n.store.Start(ctx); err != nil {
			return fmt.Errorf("network %s: failed to start archive maintenance: %w", n.name, err)
		}

		n.wg.Add(1)
		go func() {
			defer n.wg.Done()
			if err := n.archiver.Run(ctx); err != nil {
				n.log.Errorw("archiver stopped with error", "network", n.name, "error", err)
			}
		}()
	}

	if err := n.sync.Start(ctx); err != nil {
		return fmt.Errorf("network %s: %w", n.name, err)
	}

	n.log.Infow("network started", "network", n.name, "archive", n.Archived())
	return nil
}

// Stop stops the synchronizer first, then the archiver, and closes the archive and the node
// connection. A synchronizer that outlives its stop timeout is reported, the rest of the
// shutdown still runs.
func (n *Network) Stop() error {
	var errs []error
	if err := n.sync.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("network %s: %w", n.name, err))
	}

	if n.cancel != nil {
		n.cancel()
	}
	n.wg.Wait()

	if n.store != nil {
		if err := n.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("network %s: failed to close archive: %w", n.name, err))
		}
	}
	if n.closeNode != nil {
		n.closeNode()
	}

	n.log.Infow("network stopped", "network", n.name)
	return errors.Join(errs...)
}

// GetAll returns every indexed swap, oldest first.
func (n *Network) GetAll() []chain.SwapRecord {
	return n.index.GetAll()
}

// GetLast returns the n most recent swaps.
func (n *Network) GetLast(count int) []chain.SwapRecord {
	return n.index.GetLast(count)
}

// History returns one page of swap history starting at cursor.
func (n *Network) History(ctx context.Context, limit int, cursor swaps.Cursor) (*swaps.Page, error) {
	return n.paginator.Page(ctx, limit, cursor)
}

// DefaultPageSize returns the configured history page size.
func (n *Network) DefaultPageSize() int {
	return n.defaultLimit
}

// Status returns the synchronizer status.
func (n *Network) Status() synchronizer.Status {
	return n.sync.Status()
}

// Synchronizer exposes the network synchronizer.
func (n *Network) Synchronizer() *synchronizer.Synchronizer {
	return n.sync
}
