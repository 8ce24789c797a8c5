package models

import "github.com/shopspring/decimal"

// Balances maps asset id to amount in whole units.
type Balances map[string]decimal.Decimal

func (b Balances) Strings() map[string]string {
	out := make(map[string]string, len(b))
	for asset, amount := range b {
		out[asset] = amount.String()
	}
	return out
}
