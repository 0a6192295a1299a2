package store

import "github.com/goran-ethernal/SwapIndexor/pkg/chain"

type blockRow struct {
	Hash         string `meddler:"hash"`
	Height       uint64 `meddler:"height"`
	PreviousHash string `meddler:"previous_hash"`
	Time         int64  `meddler:"time"`
	MedianTime   int64  `meddler:"median_time"`
	TxCount      int    `meddler:"tx_count"`
}

type txRow struct {
	BlockHash string `meddler:"block_hash"`
	Order     int    `meddler:"tx_order"`
	TxID      string `meddler:"txid"`
	Weight    int    `meddler:"weight"`
	VoutCount int    `meddler:"vout_count"`
}

type voutRow struct {
	TxID      string `meddler:"txid"`
	N         int    `meddler:"n"`
	BlockHash string `meddler:"block_hash"`
	Value     string `meddler:"value"`
	ScriptHex string `meddler:"script_hex"`
	TokenID   int    `meddler:"token_id"`
}

// SyncState is the archive checkpoint: the highest block stored.
type SyncState struct {
	ID        int64  `meddler:"id,pk"`
	Height    uint64 `meddler:"last_height"`
	Hash      string `meddler:"last_hash"`
	UpdatedAt int64  `meddler:"updated_at"`
}

func (r *blockRow) toBlock() *chain.Block {
	return &chain.Block{
		Hash:         r.Hash,
		Height:       r.Height,
		PreviousHash: r.PreviousHash,
		Time:         r.Time,
		MedianTime:   r.MedianTime,
		TxCount:      r.TxCount,
	}
}

func (r *txRow) toTransaction() chain.Transaction {
	return chain.Transaction{
		TxID:      r.TxID,
		Order:     r.Order,
		Weight:    r.Weight,
		VoutCount: r.VoutCount,
	}
}

func (r *voutRow) toVout() *chain.Vout {
	return &chain.Vout{
		N:         r.N,
		Value:     r.Value,
		ScriptHex: r.ScriptHex,
		TokenID:   r.TokenID,
	}
}

func blockRowOf(b *chain.Block) *blockRow {
	return &blockRow{
		Hash:         b.Hash,
		Height:       b.Height,
		PreviousHash: b.PreviousHash,
		Time:         b.Time,
		MedianTime:   b.MedianTime,
		TxCount:      b.TxCount,
	}
}
