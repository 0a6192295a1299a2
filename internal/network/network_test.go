package network

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/internal/dex"
	"github.com/goran-ethernal/SwapIndexor/internal/dex/dextest"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/internal/swaps"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain/chaintest"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
	"github.com/stretchr/testify/require"
)

// testChain builds n blocks; the heights in swapAt carry one swap each.
func testChain(n int, swapAt ...uint64) *chaintest.Chain {
	c := chaintest.New()
	fromScript, fromAddr := dextest.P2PKH(0x51, dex.RegTestParams)
	toScript, toAddr := dextest.P2PKH(0x52, dex.RegTestParams)

	for h := uint64(1); h <= uint64(n); h++ {
		txs := []chain.Transaction{dextest.PlainTx(fmt.Sprintf("plain-%d", h))}
		for _, s := range swapAt {
			if s == h {
				txs = append(txs, dextest.SwapTx(fmt.Sprintf("swap-%d", h), fromScript, toScript))
				c.SetHistory(fromAddr, h, 1, "-10@DFI")
				c.SetHistory(toAddr, h, 1, "0.25@ETH")
			}
		}
		c.AddBlock(txs...)
	}
	return c
}

func testOptions() Options {
	return Options{
		Sync: config.SyncConfig{
			PollInterval:           common.NewDuration(10 * time.Millisecond),
			FetchConcurrency:       4,
			NearTipOffset:          3,
			CatchUpRetryBackoff:    common.NewDuration(time.Millisecond),
			CatchUpRetryMaxBackoff: common.NewDuration(5 * time.Millisecond),
			StopTimeout:            common.NewDuration(time.Second),
			StopPollInterval:       common.NewDuration(5 * time.Millisecond),
		},
		Pagination: config.PaginationConfig{StartHeight: 1, DefaultLimit: 20},
		Log:        logger.NewNopLogger(),
	}
}

func testNetworkConfig(t *testing.T, archive bool) config.NetworkConfig {
	t.Helper()

	cfg := config.NetworkConfig{
		Name:            "regtest",
		RPCURL:          "http://127.0.0.1:19554",
		BlockCacheCount: 10,
	}
	if archive {
		cfg.Archive = &config.ArchiveConfig{
			Enabled:      true,
			PollInterval: common.NewDuration(5 * time.Millisecond),
		}
		cfg.Archive.DB.Path = filepath.Join(t.TempDir(), "regtest.sqlite")
	}
	cfg.ApplyDefaults()
	return cfg
}

func swapIDs(records []chain.SwapRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func TestAssemble_UnknownNetwork(t *testing.T) {
	cfg := testNetworkConfig(t, false)
	cfg.Name = "devnet"

	_, err := Assemble(cfg, chaintest.New(), testOptions())
	require.Error(t, err)
}

func TestNetwork_Variants(t *testing.T) {
	tests := []struct {
		name        string
		archive     bool
		wantHistory []string
	}{
		{name: "rpc", archive: false, wantHistory: []string{"swap-12", "swap-25"}},
		// the archive starts one window below the tip
		{name: "archive", archive: true, wantHistory: []string{"swap-25"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			c := testChain(30, 12, 25)

			n, err := Assemble(testNetworkConfig(t, tt.archive), c, testOptions())
			require.NoError(t, err)
			require.Equal(t, "regtest", n.Name())
			require.Equal(t, tt.archive, n.Archived())

			require.NoError(t, n.Start(ctx))

			require.Eventually(t, func() bool {
				st := n.Status()
				return st.Ready && st.Highest != nil && st.Highest.Height == 30
			}, 5*time.Second, 10*time.Millisecond)

			st := n.Status()
			require.Equal(t, "regtest", st.Network)
			require.True(t, st.Running)
			require.Equal(t, 10, st.WindowSize)
			require.Equal(t, []string{"swap-25"}, swapIDs(n.GetAll()))
			require.Equal(t, []string{"swap-25"}, swapIDs(n.GetLast(5)))

			require.Equal(t, 20, n.DefaultPageSize())

			page, err := n.History(ctx, n.DefaultPageSize(), swaps.Cursor{})
			require.NoError(t, err)
			require.Equal(t, tt.wantHistory, swapIDs(page.Swaps))

			empty, err := n.History(ctx, 0, swaps.Cursor{})
			require.NoError(t, err)
			require.Empty(t, empty.Swaps)
			require.Equal(t, chain.TokenAmount{Symbol: "DFI", Amount: "10.00000000"}, page.Swaps[0].From)

			require.NoError(t, n.Stop())
			require.False(t, n.Status().Running)
		})
	}
}

func TestSet(t *testing.T) {
	ctx := context.Background()

	n, err := Assemble(testNetworkConfig(t, false), testChain(5, 3), testOptions())
	require.NoError(t, err)

	set := NewSetOf(n)

	got, ok := set.Get("regtest")
	require.True(t, ok)
	require.Same(t, n, got)

	_, ok = set.Get("mainnet")
	require.False(t, ok)
	require.Nil(t, set.GetByName("mainnet"))
	require.NotNil(t, set.GetByName("regtest"))

	all := set.ListAll()
	require.Len(t, all, 1)
	require.Equal(t, "regtest", all[0].Name())
	require.Len(t, set.Networks(), 1)

	require.NoError(t, set.Start(ctx))
	require.Eventually(t, func() bool { return n.Status().Ready }, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, []string{"swap-3"}, swapIDs(n.GetAll()))
	require.NoError(t, set.Stop())
}
