package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
)

// rawBlock is the getblock response. Numeric heights may arrive as decimal literals.
type rawBlock struct {
	Hash         string      `json:"hash"`
	Height       json.Number `json:"height"`
	PreviousHash string      `json:"previousblockhash"`
	Time         int64       `json:"time"`
	MedianTime   int64       `json:"mediantime"`
	NTx          int         `json:"nTx"`
	Tx           []rawTx     `json:"tx"`
}

type rawTx struct {
	TxID   string    `json:"txid"`
	Weight int       `json:"weight"`
	Vout   []rawVout `json:"vout"`
}

type rawVout struct {
	Value        json.Number `json:"value"`
	N            int         `json:"n"`
	TokenID      int         `json:"tokenId"`
	ScriptPubKey struct {
		Hex string `json:"hex"`
	} `json:"scriptPubKey"`
}

type rawAccountHistory struct {
	Owner       string      `json:"owner"`
	BlockHeight json.Number `json:"blockHeight"`
	BlockHash   string      `json:"blockHash"`
	Type        string      `json:"type"`
	TxN         int         `json:"txn"`
	TxID        string      `json:"txid"`
	Amounts     []string    `json:"amounts"`
}

// UnmarshalJSON accepts the verbosity 1 form where tx is a list of ids.
func (t *rawTx) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		t.TxID = id
		return nil
	}

	type plain rawTx
	return json.Unmarshal(data, (*plain)(t))
}

func (r *rawBlock) toBlock() (*chain.Block, error) {
	height, err := common.ParseHeight(r.Height)
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", r.Hash, err)
	}

	b := &chain.Block{
		Hash:         r.Hash,
		Height:       height,
		PreviousHash: r.PreviousHash,
		Time:         r.Time,
		MedianTime:   r.MedianTime,
		TxCount:      r.NTx,
	}
	if b.TxCount == 0 {
		b.TxCount = len(r.Tx)
	}
	if len(r.Tx) > 0 {
		b.Transactions = make([]chain.Transaction, len(r.Tx))
		for i := range r.Tx {
			b.Transactions[i] = r.Tx[i].toTransaction(i)
		}
	}
	return b, nil
}

func (t *rawTx) toTransaction(order int) chain.Transaction {
	tx := chain.Transaction{
		TxID:      t.TxID,
		Order:     order,
		Weight:    t.Weight,
		VoutCount: len(t.Vout),
		Vouts:     make([]chain.Vout, len(t.Vout)),
	}
	for i, v := range t.Vout {
		tx.Vouts[i] = chain.Vout{
			N:         v.N,
			Value:     v.Value.String(),
			ScriptHex: v.ScriptPubKey.Hex,
			TokenID:   v.TokenID,
		}
	}
	return tx
}

func (r *rawAccountHistory) toAccountHistory() (*chain.AccountHistory, error) {
	var height uint64
	if r.BlockHeight != "" {
		h, err := common.ParseHeight(r.BlockHeight)
		if err != nil {
			return nil, fmt.Errorf("account history of %s: %w", r.Owner, err)
		}
		height = h
	}

	return &chain.AccountHistory{
		Owner:       r.Owner,
		TxID:        r.TxID,
		TxN:         r.TxN,
		Type:        r.Type,
		BlockHeight: height,
		BlockHash:   r.BlockHash,
		Amounts:     r.Amounts,
	}, nil
}
