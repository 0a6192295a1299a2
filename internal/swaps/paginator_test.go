package swaps

import (
	"context"
	"fmt"
	"testing"

	"github.com/goran-ethernal/SwapIndexor/internal/dex"
	"github.com/goran-ethernal/SwapIndexor/internal/dex/dextest"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain/chaintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type swapChain struct {
	*chaintest.Chain

	fromScript []byte
	toScript   []byte
	fromAddr   string
	toAddr     string
}

func newSwapChain() *swapChain {
	c := &swapChain{Chain: chaintest.New()}
	c.fromScript, c.fromAddr = dextest.P2PKH(0x21, dex.RegTestParams)
	c.toScript, c.toAddr = dextest.P2PKH(0x22, dex.RegTestParams)
	return c
}

// addBlock appends a block whose transactions are swaps where layout has 's' and plain
// transactions elsewhere.
func (c *swapChain) addBlock(layout string) *chain.Block {
	tip, _ := c.GetChainHeight(context.Background())
	height := tip + 1

	txs := make([]chain.Transaction, 0, len(layout))
	for i, kind := range layout {
		txid := fmt.Sprintf("tx-%d-%d", height, i)
		if kind == 's' {
			txs = append(txs, dextest.SwapTx(txid, c.fromScript, c.toScript))
			c.SetHistory(c.fromAddr, height, i, "-1@DFI")
			c.SetHistory(c.toAddr, height, i, "2@BTC")
			continue
		}
		txs = append(txs, dextest.PlainTx(txid))
	}
	return c.AddBlock(txs...)
}

func newPaginator(c *swapChain) *Paginator {
	detector := dex.NewDetector(c, dex.RegTestParams, logger.NewNopLogger())
	return NewPaginator(c, detector, 0, logger.NewNopLogger())
}

func TestPaginator_Continuity(t *testing.T) {
	c := newSwapChain()
	c.addBlock("")
	c.addBlock(".s.")
	c.addBlock("..s.")
	c.addBlock("s.")

	p := newPaginator(c)
	ctx := context.Background()

	two, err := p.Page(ctx, 2, Cursor{})
	require.NoError(t, err)
	require.Len(t, two.Swaps, 2)

	one, err := p.Page(ctx, 1, Cursor{})
	require.NoError(t, err)
	require.Len(t, one.Swaps, 1)
	assert.Equal(t, two.Swaps[0], one.Swaps[0])
	require.NotNil(t, one.Next)

	following, err := p.Page(ctx, 1, *one.Next)
	require.NoError(t, err)
	require.Len(t, following.Swaps, 1)
	assert.Equal(t, two.Swaps[1], following.Swaps[0])
}

func TestPaginator_CursorAdvance(t *testing.T) {
	c := newSwapChain()
	c.addBlock(".s.") // height 1
	c.addBlock("..s") // height 2
	c.addBlock("s")   // height 3

	p := newPaginator(c)
	ctx := context.Background()

	page, err := p.Page(ctx, 1, Cursor{})
	require.NoError(t, err)
	require.Len(t, page.Swaps, 1)
	assert.Equal(t, "tx-1-1", page.Swaps[0].ID)
	assert.Equal(t, NewCursor(1, 2), page.Next)

	page, err = p.Page(ctx, 1, *page.Next)
	require.NoError(t, err)
	require.Len(t, page.Swaps, 1)
	assert.Equal(t, "tx-2-2", page.Swaps[0].ID)
	// Last transaction of the block moves on to the next height.
	assert.Equal(t, NewCursor(3, 0), page.Next)

	page, err = p.Page(ctx, 5, *page.Next)
	require.NoError(t, err)
	require.Len(t, page.Swaps, 1)
	assert.Equal(t, "tx-3-0", page.Swaps[0].ID)
	assert.Nil(t, page.Next, "scan reached the tip")
}

func TestPaginator_WalkVisitsEverySwapOnce(t *testing.T) {
	layouts := [][]string{
		{".ss.", "...."},
		{".s", "s"},
		{"", "ss", "s.s", "..", "sss", "s"},
	}

	for _, blocks := range layouts {
		t.Run(fmt.Sprintf("%q", blocks), func(t *testing.T) {
			c := newSwapChain()
			for _, layout := range blocks {
				c.addBlock(layout)
			}
			p := newPaginator(c)
			ctx := context.Background()

			all, err := p.Page(ctx, MaxPageSize, Cursor{})
			require.NoError(t, err)
			require.Nil(t, all.Next)

			for _, limit := range []int{1, 2, 3} {
				var walked []string
				cursor := Cursor{}
				for pages := 0; ; pages++ {
					require.Less(t, pages, 50, "walk did not terminate")

					page, err := p.Page(ctx, limit, cursor)
					require.NoError(t, err)
					require.LessOrEqual(t, len(page.Swaps), limit)
					for _, s := range page.Swaps {
						walked = append(walked, s.ID)
					}
					if page.Next == nil {
						break
					}
					cursor = *page.Next
				}

				require.Equal(t, swapIDs(all.Swaps), walked, "limit=%d", limit)
			}
		})
	}
}

func swapIDs(records []chain.SwapRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func TestPaginator_OmitsBlockRef(t *testing.T) {
	c := newSwapChain()
	c.addBlock("s.")

	page, err := newPaginator(c).Page(context.Background(), 10, Cursor{})
	require.NoError(t, err)
	require.Len(t, page.Swaps, 1)

	assert.Nil(t, page.Swaps[0].Block)
	assert.Equal(t, "1.00000000", page.Swaps[0].From.Amount)
	assert.Equal(t, "2.00000000", page.Swaps[0].To.Amount)
}

func TestPaginator_LimitClamping(t *testing.T) {
	c := newSwapChain()
	for range 120 {
		c.addBlock("s.")
	}
	p := newPaginator(c)

	tests := []struct {
		limit int
		want  int
	}{
		{limit: -1, want: 0},
		{limit: 0, want: 0},
		{limit: 3, want: 3},
		{limit: 100, want: 100},
		{limit: 101, want: 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%d", tt.limit), func(t *testing.T) {
			page, err := p.Page(context.Background(), tt.limit, Cursor{})
			require.NoError(t, err)
			assert.Len(t, page.Swaps, tt.want)
		})
	}
}

func TestPaginator_ScansAcrossBlockBatches(t *testing.T) {
	c := newSwapChain()
	c.AddBlocks(450)
	c.addBlock(".s")

	page, err := newPaginator(c).Page(context.Background(), 10, Cursor{})
	require.NoError(t, err)
	require.Len(t, page.Swaps, 1)
	assert.Equal(t, "tx-451-1", page.Swaps[0].ID)
}

func TestPaginator_StartHeight(t *testing.T) {
	c := newSwapChain()
	c.addBlock("s")
	c.addBlock("s")

	detector := dex.NewDetector(c, dex.RegTestParams, logger.NewNopLogger())
	p := NewPaginator(c, detector, 2, logger.NewNopLogger())

	page, err := p.Page(context.Background(), 10, Cursor{})
	require.NoError(t, err)
	require.Len(t, page.Swaps, 1)
	assert.Equal(t, "tx-2-0", page.Swaps[0].ID)
}
