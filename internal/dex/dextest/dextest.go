// Package dextest builds swap transactions for tests.
package dextest

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goran-ethernal/SwapIndexor/internal/dex"
	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
)

// P2PKH returns a pay-to-pubkey-hash script for a hash filled with seed and its address.
func P2PKH(seed byte, params *chaincfg.Params) ([]byte, string) {
	addr, err := btcutil.NewAddressPubKeyHash(bytes.Repeat([]byte{seed}, 20), params)
	if err != nil {
		panic(err)
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		panic(err)
	}
	return script, addr.EncodeAddress()
}

// SwapScriptHex returns the hex OP_RETURN script of a pool swap between two scripts.
func SwapScriptHex(from, to []byte) string {
	msg := dex.PoolSwapMessage{PoolSwap: dex.PoolSwap{
		FromScript:   from,
		FromToken:    0,
		FromAmount:   100_000_000,
		ToScript:     to,
		ToToken:      2,
		MaxPrice:     9_999_999,
		MaxPriceFrac: 99_999_999,
	}}
	script, err := dex.OutputScript(msg.Payload())
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(script)
}

// SwapTx returns a two-output transaction carrying a pool swap.
func SwapTx(txid string, from, to []byte) chain.Transaction {
	return chain.Transaction{
		TxID:      txid,
		Weight:    1000,
		VoutCount: 2,
		Vouts: []chain.Vout{
			{N: 0, Value: "0", ScriptHex: SwapScriptHex(from, to)},
			{N: 1, Value: "0.1", ScriptHex: hex.EncodeToString(from)},
		},
	}
}

// PlainTx returns a transaction that is not a swap.
func PlainTx(txid string) chain.Transaction {
	return chain.Transaction{
		TxID:      txid,
		Weight:    800,
		VoutCount: 1,
		Vouts:     []chain.Vout{{N: 0, Value: "1", ScriptHex: "76a914" + hex.EncodeToString(make([]byte, 20)) + "88ac"}},
	}
}
