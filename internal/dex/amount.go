package dex

import (
	"strings"

	"github.com/goran-ethernal/SwapIndexor/pkg/chain"
	"github.com/shopspring/decimal"
)

const amountDecimals = 8

// pickAmount returns the first entry of a history amount list ("-1.5@DFI") whose sign
// matches: negative for the outgoing leg, positive for the incoming one.
// The returned amount is unsigned with 8 fractional digits.
func pickAmount(amounts []string, negative bool) (chain.TokenAmount, bool) {
	for _, entry := range amounts {
		value, symbol, ok := strings.Cut(entry, "@")
		if !ok || symbol == "" {
			continue
		}

		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			continue
		}

		if (negative && d.IsNegative()) || (!negative && d.IsPositive()) {
			return chain.TokenAmount{
				Symbol: symbol,
				Amount: d.Abs().StringFixed(amountDecimals),
			}, true
		}
	}

	return chain.TokenAmount{}, false
}
