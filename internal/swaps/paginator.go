package swaps

import (
	"context"
	"fmt"

	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
)

const (
	// MaxPageSize caps the number of swaps a page holds.
	MaxPageSize = 100

	blockBatchSize = 200
	txBatchSize    = 200
)

// Detector classifies a transaction of a block. A nil record means "not a swap".
type Detector interface {
	Detect(ctx context.Context, block *chain.Block, tx chain.Transaction) (*chain.SwapRecord, error)
}

// PageSource is what the paginator walks.
type PageSource interface {
	ListBlocks(ctx context.Context, fromHeight uint64, limit int) ([]*chain.Block, error)
	GetTransactions(ctx context.Context, blockHash string, offset, limit int) ([]chain.Transaction, error)
}

// Page is one page of swap history. Next is nil once the scan reached the chain tip.
type Page struct {
	Swaps []chain.SwapRecord
	Next  *Cursor
}

// Paginator serves swap history by scanning the chain from a cursor.
type Paginator struct {
	source      PageSource
	detector    Detector
	startHeight uint64
	log         *logger.Logger
}

// NewPaginator creates a paginator. Cursors without a height start at startHeight.
func NewPaginator(source PageSource, detector Detector, startHeight uint64, log *logger.Logger) *Paginator {
	return &Paginator{
		source:      source,
		detector:    detector,
		startHeight: startHeight,
		log:         log,
	}
}

// Page returns up to limit swaps found at or after cursor. limit is clamped to MaxPageSize;
// a non-positive limit returns no swaps.
//
// A cursor names the first transaction not yet scanned: after the transaction at position
// order of block height it is {height, order+1}, or {height+1, 0} when that transaction was
// the last of its block. The order of the incoming cursor applies to the first scanned block
// only.
func (p *Paginator) Page(ctx context.Context, limit int, cursor Cursor) (*Page, error) {
	page := &Page{Swaps: []chain.SwapRecord{}}
	if limit <= 0 {
		return page, nil
	}
	limit = min(limit, MaxPageSize)

	height := p.startHeight
	if cursor.Height != nil {
		height = *cursor.Height
	}
	offset := 0
	if cursor.Order != nil {
		offset = *cursor.Order
	}

	for {
		blocks, err := p.source.ListBlocks(ctx, height, blockBatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list blocks from %d: %w", height, err)
		}
		if len(blocks) == 0 {
			return page, nil
		}

		for _, block := range blocks {
			next, full, err := p.scanBlock(ctx, block, offset, limit, page)
			if err != nil {
				return nil, err
			}
			offset = 0
			if full {
				page.Next = next
				return page, nil
			}
		}

		height = blocks[len(blocks)-1].Height + 1
	}
}

// scanBlock detects swaps in block starting at position offset until the page holds limit
// swaps. It reports the cursor following the last scanned transaction and whether the page
// is full.
func (p *Paginator) scanBlock(
	ctx context.Context, block *chain.Block, offset, limit int, page *Page,
) (*Cursor, bool, error) {
	var next *Cursor

	for pos := offset; pos < block.TxCount; pos += txBatchSize {
		txs, err := p.source.GetTransactions(ctx, block.Hash, pos, txBatchSize)
		if err != nil {
			return nil, false, fmt.Errorf("failed to get transactions of block %s: %w", block.Hash, err)
		}
		if len(txs) == 0 {
			break
		}

		for i, tx := range txs {
			order := pos + i
			tx.Order = order

			record, err := p.detector.Detect(ctx, block, tx)
			if err != nil {
				return nil, false, fmt.Errorf("failed to detect swap in %s: %w", tx.TxID, err)
			}
			if record != nil {
				page.Swaps = append(page.Swaps, record.WithoutBlock())
			}

			if order+1 >= block.TxCount {
				next = NewCursor(block.Height+1, 0)
			} else {
				next = NewCursor(block.Height, order+1)
			}

			if len(page.Swaps) >= limit {
				p.log.Debugw("page filled", "height", block.Height, "order", order, "swaps", len(page.Swaps))
				return next, true, nil
			}
		}
	}

	return next, false, nil
}
