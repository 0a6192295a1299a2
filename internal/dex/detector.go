// Package dex recognises DEX swap transactions and turns them into swap records.
package dex

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
)

// excludedWeight is the weight of a known class of non-swap transactions that otherwise
// pass the output count filter.
const excludedWeight = 605

// Lookup is the part of a chain data source the detector reads from.
type Lookup interface {
	chain.HistorySource
	GetVout(ctx context.Context, txid string, n int) (*chain.Vout, error)
}

// Detector classifies transactions of one network.
type Detector struct {
	lookup Lookup
	params *chaincfg.Params
	log    *logger.Logger
}

// NewDetector creates a detector resolving addresses with params.
func NewDetector(lookup Lookup, params *chaincfg.Params, log *logger.Logger) *Detector {
	return &Detector{
		lookup: lookup,
		params: params,
		log:    log,
	}
}

// Detect returns the swap carried by tx, or nil when tx is not a swap.
// Errors come only from the data source.
func (d *Detector) Detect(ctx context.Context, block *chain.Block, tx chain.Transaction) (*chain.SwapRecord, error) {
	if tx.VoutCount != 2 || tx.Weight == excludedWeight {
		return nil, nil
	}

	scriptHex, err := d.firstOutputScript(ctx, tx)
	if err != nil {
		return nil, err
	}
	script, err := hex.DecodeString(scriptHex)
	if err != nil {
		return nil, nil
	}

	msg, ok := DecodeScript(script)
	if !ok {
		return nil, nil
	}
	swap, ok := SwapOf(msg)
	if !ok {
		return nil, nil
	}

	fromAddress := ScriptToAddress(swap.FromScript, d.params)
	toAddress := ScriptToAddress(swap.ToScript, d.params)
	if fromAddress == "" || toAddress == "" {
		d.log.Debugw("swap with unresolvable address", "txid", tx.TxID)
		return nil, nil
	}

	fromHistory, err := d.lookup.GetAccountHistory(ctx, fromAddress, block.Height, tx.Order)
	if err != nil {
		return nil, fmt.Errorf("account history of %s at %d/%d: %w", fromAddress, block.Height, tx.Order, err)
	}
	toHistory := fromHistory
	if toAddress != fromAddress {
		toHistory, err = d.lookup.GetAccountHistory(ctx, toAddress, block.Height, tx.Order)
		if err != nil {
			return nil, fmt.Errorf("account history of %s at %d/%d: %w", toAddress, block.Height, tx.Order, err)
		}
	}

	from, ok := pickAmount(amountsOf(fromHistory), true)
	if !ok {
		return nil, nil
	}
	to, ok := pickAmount(amountsOf(toHistory), false)
	if !ok {
		return nil, nil
	}

	ref := block.Ref()
	return &chain.SwapRecord{
		ID:        tx.TxID,
		Timestamp: block.Timestamp(),
		From:      from,
		To:        to,
		Block:     &ref,
	}, nil
}

// DetectBlock runs Detect over every transaction of a block carrying its transactions.
func (d *Detector) DetectBlock(ctx context.Context, block *chain.Block) ([]chain.SwapRecord, error) {
	var records []chain.SwapRecord
	for _, tx := range block.Transactions {
		record, err := d.Detect(ctx, block, tx)
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (d *Detector) firstOutputScript(ctx context.Context, tx chain.Transaction) (string, error) {
	if len(tx.Vouts) > 0 {
		return tx.Vouts[0].ScriptHex, nil
	}

	vout, err := d.lookup.GetVout(ctx, tx.TxID, 0)
	if err != nil {
		return "", fmt.Errorf("vout 0 of %s: %w", tx.TxID, err)
	}
	return vout.ScriptHex, nil
}

func amountsOf(h *chain.AccountHistory) []string {
	if h == nil {
		return nil
	}
	return h.Amounts
}
