package dex

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Network names accepted in configuration.
const (
	MainNet = "mainnet"
	TestNet = "testnet"
	RegTest = "regtest"
)

// DeFiChain network parameters. Only the address encoding fields matter to the indexer,
// the rest is inherited from the matching bitcoin network.
var (
	MainNetParams = deriveParams(chaincfg.MainNetParams, MainNet, 0xe2aaf5f9, 0x12, 0x5a, "df")
	TestNetParams = deriveParams(chaincfg.TestNet3Params, TestNet, 0xbaf3d7f9, 0x0f, 0x80, "tf")
	RegTestParams = deriveParams(chaincfg.RegressionNetParams, RegTest, 0xdab5bffa, 0x6f, 0xc4, "bcrt")
)

func deriveParams(base chaincfg.Params, name string, net wire.BitcoinNet, pkh, sh byte, hrp string) *chaincfg.Params {
	p := base
	p.Name = name
	p.Net = net
	p.PubKeyHashAddrID = pkh
	p.ScriptHashAddrID = sh
	p.Bech32HRPSegwit = hrp
	return &p
}

// ParamsForNetwork returns the address parameters of a network name.
func ParamsForNetwork(network string) (*chaincfg.Params, error) {
	switch network {
	case MainNet:
		return MainNetParams, nil
	case TestNet:
		return TestNetParams, nil
	case RegTest:
		return RegTestParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", network)
	}
}

// ScriptToAddress resolves a standard output script to its address. Scripts that do not pay
// to exactly one address resolve to "".
func ScriptToAddress(script []byte, params *chaincfg.Params) string {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, params)
	if err != nil || len(addrs) != 1 {
		return ""
	}
	return addrs[0].EncodeAddress()
}
