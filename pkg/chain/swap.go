package chain

// TokenAmount is a non-negative fixed-point amount (8 fractional digits) of a token.
type TokenAmount struct {
	Symbol string `json:"symbol"`
	Amount string `json:"amount"`
}

// SwapRecord is a detected DEX swap. Timestamp is the block median time in seconds.
type SwapRecord struct {
	ID        string      `json:"id"`
	Timestamp string      `json:"timestamp"`
	From      TokenAmount `json:"from"`
	To        TokenAmount `json:"to"`
	Block     *BlockRef   `json:"block,omitempty"`
}

// WithoutBlock returns a copy of the record without its block reference.
func (s SwapRecord) WithoutBlock() SwapRecord {
	s.Block = nil
	return s
}
