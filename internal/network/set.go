package network

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/goran-ethernal/SwapIndexor/pkg/api"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
)

var _ api.NetworkRegistry = (*Set)(nil)

// Set holds the networks of one process, in configuration order.
type Set struct {
	networks []*Network
	byName   map[string]*Network
}

// NewSet dials and assembles every configured network. Networks built before a failure are
// released.
func NewSet(ctx context.Context, cfg *config.Config, opts Options) (*Set, error) {
	opts.Sync = cfg.Sync
	opts.Pagination = cfg.Pagination
	if opts.Logging == nil {
		opts.Logging = cfg.Logging
	}

	networks := make([]*Network, 0, len(cfg.Networks))
	for _, netCfg := range cfg.Networks {
		n, err := New(ctx, netCfg, opts)
		if err != nil {
			for _, built := range networks {
				_ = built.Stop()
			}
			return nil, err
		}
		networks = append(networks, n)
	}

	return NewSetOf(networks...), nil
}

// NewSetOf groups already assembled networks.
func NewSetOf(networks ...*Network) *Set {
	s := &Set{
		networks: networks,
		byName:   make(map[string]*Network, len(networks)),
	}
	for _, n := range networks {
		s.byName[n.Name()] = n
	}
	return s
}

// Start starts every network. When one fails the networks already started are stopped.
func (s *Set) Start(ctx context.Context) error {
	for i, n := range s.networks {
		if err := n.Start(ctx); err != nil {
			for _, started := range s.networks[:i] {
				_ = started.Stop()
			}
			return err
		}
	}
	return nil
}

// Stop stops all networks concurrently and returns the first failure.
func (s *Set) Stop() error {
	var g errgroup.Group
	for _, n := range s.networks {
		g.Go(n.Stop)
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to stop networks: %w", err)
	}
	return nil
}

// Networks returns the networks in configuration order.
func (s *Set) Networks() []*Network {
	return s.networks
}

// Get returns the network called name.
func (s *Set) Get(name string) (*Network, bool) {
	n, ok := s.byName[name]
	return n, ok
}

// GetByName implements api.NetworkRegistry.
func (s *Set) GetByName(name string) api.SwapIndexer {
	n, ok := s.byName[name]
	if !ok {
		return nil
	}
	return n
}

// ListAll implements api.NetworkRegistry.
func (s *Set) ListAll() []api.SwapIndexer {
	out := make([]api.SwapIndexer, len(s.networks))
	for i, n := range s.networks {
		out[i] = n
	}
	return out
}
