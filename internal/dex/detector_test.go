package dex_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goran-ethernal/SwapIndexor/internal/dex"
	"github.com/goran-ethernal/SwapIndexor/internal/dex/dextest"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	histories map[string][]string
	vouts     map[string]chain.Vout
	err       error
	calls     []string
}

func (f *fakeLookup) GetAccountHistory(_ context.Context, owner string, _ uint64, _ int) (*chain.AccountHistory, error) {
	f.calls = append(f.calls, owner)
	if f.err != nil {
		return nil, f.err
	}
	return &chain.AccountHistory{Owner: owner, Amounts: f.histories[owner]}, nil
}

func (f *fakeLookup) GetVout(_ context.Context, txid string, n int) (*chain.Vout, error) {
	v, ok := f.vouts[txid]
	if !ok || n != 0 {
		return nil, chain.ErrNotFound
	}
	return &v, nil
}

var testBlock = &chain.Block{Hash: "blockhash", Height: 1200, MedianTime: 1_650_000_000}

func TestDetector_Detect(t *testing.T) {
	fromScript, fromAddr := dextest.P2PKH(0x01, dex.MainNetParams)
	toScript, toAddr := dextest.P2PKH(0x02, dex.MainNetParams)

	lookup := &fakeLookup{histories: map[string][]string{
		fromAddr: {"-10.00000000@DFI"},
		toAddr:   {"0.00012345@BTC"},
	}}
	detector := dex.NewDetector(lookup, dex.MainNetParams, logger.NewNopLogger())

	tx := dextest.SwapTx("tx1", fromScript, toScript)
	tx.Order = 3

	record, err := detector.Detect(context.Background(), testBlock, tx)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, chain.SwapRecord{
		ID:        "tx1",
		Timestamp: "1650000000",
		From:      chain.TokenAmount{Symbol: "DFI", Amount: "10.00000000"},
		To:        chain.TokenAmount{Symbol: "BTC", Amount: "0.00012345"},
		Block:     &chain.BlockRef{Hash: "blockhash", Height: 1200},
	}, *record)
	assert.Equal(t, []string{fromAddr, toAddr}, lookup.calls)
}

func TestDetector_SelfSwapQueriesHistoryOnce(t *testing.T) {
	script, addr := dextest.P2PKH(0x03, dex.MainNetParams)

	lookup := &fakeLookup{histories: map[string][]string{
		addr: {"-1@DFI", "2.5@dUSD"},
	}}
	detector := dex.NewDetector(lookup, dex.MainNetParams, logger.NewNopLogger())

	record, err := detector.Detect(context.Background(), testBlock, dextest.SwapTx("self", script, script))
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "1.00000000", record.From.Amount)
	assert.Equal(t, "2.50000000", record.To.Amount)
	assert.Equal(t, []string{addr}, lookup.calls)
}

func TestDetector_LoadsScriptLazily(t *testing.T) {
	fromScript, fromAddr := dextest.P2PKH(0x04, dex.TestNetParams)
	toScript, toAddr := dextest.P2PKH(0x05, dex.TestNetParams)

	full := dextest.SwapTx("lazy", fromScript, toScript)
	lookup := &fakeLookup{
		histories: map[string][]string{fromAddr: {"-1@DFI"}, toAddr: {"1@ETH"}},
		vouts:     map[string]chain.Vout{"lazy": full.Vouts[0]},
	}
	detector := dex.NewDetector(lookup, dex.TestNetParams, logger.NewNopLogger())

	tx := full
	tx.Vouts = nil

	record, err := detector.Detect(context.Background(), testBlock, tx)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "ETH", record.To.Symbol)
}

func TestDetector_Rejects(t *testing.T) {
	fromScript, fromAddr := dextest.P2PKH(0x06, dex.MainNetParams)
	toScript, toAddr := dextest.P2PKH(0x07, dex.MainNetParams)

	histories := map[string][]string{
		fromAddr: {"-1@DFI"},
		toAddr:   {"1@BTC"},
	}

	tests := []struct {
		name      string
		tx        func() chain.Transaction
		histories map[string][]string
	}{
		{
			name: "single output",
			tx: func() chain.Transaction {
				tx := dextest.SwapTx("a", fromScript, toScript)
				tx.VoutCount = 1
				return tx
			},
			histories: histories,
		},
		{
			name: "three outputs",
			tx: func() chain.Transaction {
				tx := dextest.SwapTx("b", fromScript, toScript)
				tx.VoutCount = 3
				return tx
			},
			histories: histories,
		},
		{
			name: "excluded weight",
			tx: func() chain.Transaction {
				tx := dextest.SwapTx("c", fromScript, toScript)
				tx.Weight = 605
				return tx
			},
			histories: histories,
		},
		{
			name: "not a dftx",
			tx: func() chain.Transaction {
				tx := dextest.PlainTx("d")
				tx.VoutCount = 2
				return tx
			},
			histories: histories,
		},
		{
			name: "invalid script hex",
			tx: func() chain.Transaction {
				tx := dextest.SwapTx("e", fromScript, toScript)
				tx.Vouts[0].ScriptHex = "zz"
				return tx
			},
			histories: histories,
		},
		{
			name: "unresolvable from script",
			tx: func() chain.Transaction {
				return dextest.SwapTx("f", []byte{0x6a}, toScript)
			},
			histories: histories,
		},
		{
			name: "no outgoing amount",
			tx: func() chain.Transaction {
				return dextest.SwapTx("g", fromScript, toScript)
			},
			histories: map[string][]string{fromAddr: {"1@DFI"}, toAddr: {"1@BTC"}},
		},
		{
			name: "no incoming amount",
			tx: func() chain.Transaction {
				return dextest.SwapTx("h", fromScript, toScript)
			},
			histories: map[string][]string{fromAddr: {"-1@DFI"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := dex.NewDetector(&fakeLookup{histories: tt.histories}, dex.MainNetParams, logger.NewNopLogger())

			record, err := detector.Detect(context.Background(), testBlock, tt.tx())
			require.NoError(t, err)
			assert.Nil(t, record)
		})
	}
}

func TestDetector_SourceErrorPropagates(t *testing.T) {
	fromScript, _ := dextest.P2PKH(0x08, dex.MainNetParams)
	toScript, _ := dextest.P2PKH(0x09, dex.MainNetParams)

	boom := errors.New("rpc unavailable")
	detector := dex.NewDetector(&fakeLookup{err: boom}, dex.MainNetParams, logger.NewNopLogger())

	_, err := detector.Detect(context.Background(), testBlock, dextest.SwapTx("x", fromScript, toScript))
	require.ErrorIs(t, err, boom)
}

func TestDetector_DetectBlock(t *testing.T) {
	fromScript, fromAddr := dextest.P2PKH(0x0a, dex.MainNetParams)
	toScript, toAddr := dextest.P2PKH(0x0b, dex.MainNetParams)

	lookup := &fakeLookup{histories: map[string][]string{
		fromAddr: {"-1@DFI"},
		toAddr:   {"1@BTC"},
	}}
	detector := dex.NewDetector(lookup, dex.MainNetParams, logger.NewNopLogger())

	block := *testBlock
	block.Transactions = []chain.Transaction{
		dextest.PlainTx("p0"),
		dextest.SwapTx("s1", fromScript, toScript),
		dextest.PlainTx("p2"),
		dextest.SwapTx("s3", fromScript, toScript),
	}

	records, err := detector.DetectBlock(context.Background(), &block)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "s1", records[0].ID)
	assert.Equal(t, "s3", records[1].ID)
}
