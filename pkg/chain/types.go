package chain

import "strconv"

// Block is a block of the canonical chain. Identity is Hash; Height is unique only within
// the canonical chain at a given instant.
type Block struct {
	Hash         string        `json:"hash"`
	Height       uint64        `json:"height"`
	PreviousHash string        `json:"previousblockhash"`
	Time         int64         `json:"time"`
	MedianTime   int64         `json:"mediantime"`
	TxCount      int           `json:"nTx"`
	Transactions []Transaction `json:"tx,omitempty"`
}

// Ref returns the {hash, height} pair identifying the block.
func (b *Block) Ref() BlockRef {
	return BlockRef{Hash: b.Hash, Height: b.Height}
}

// Timestamp renders the median time the way swap records carry it.
func (b *Block) Timestamp() string {
	return strconv.FormatInt(b.MedianTime, 10)
}

// BlockRef identifies a block.
type BlockRef struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}

// Transaction is a transaction and its position inside its block.
// Vouts may be empty when the source loads outputs lazily; VoutCount is always set.
type Transaction struct {
	TxID      string `json:"txid"`
	Order     int    `json:"order"`
	Weight    int    `json:"weight"`
	VoutCount int    `json:"voutCount"`
	Vouts     []Vout `json:"vout,omitempty"`
}

// Vout is a transaction output.
type Vout struct {
	N         int    `json:"n"`
	Value     string `json:"value"`
	ScriptHex string `json:"scriptHex"`
	TokenID   int    `json:"tokenId"`
}

// AccountHistory is one entry of an address' ledger: the signed balance deltas
// ("-1.23000000@DFI") the transaction at (BlockHeight, TxN) caused.
type AccountHistory struct {
	Owner       string   `json:"owner"`
	TxID        string   `json:"txid"`
	TxN         int      `json:"txn"`
	Type        string   `json:"type"`
	BlockHeight uint64   `json:"blockHeight"`
	BlockHash   string   `json:"blockHash"`
	Amounts     []string `json:"amounts"`
}
