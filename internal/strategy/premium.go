package strategy

import "github.com/shopspring/decimal"

// NetPremium returns the strategy's entry cost from the caller-supplied
// premiums: positive is a net debit paid, negative a net credit
// received. Decimal arithmetic keeps the bookkeeping exact; this value
// is display-only and never enters the pricing loop.
func NetPremium(positions []Position) decimal.Decimal {
	total := decimal.Zero
	for _, p := range positions {
		leg := decimal.NewFromFloat(p.EntryPremium).Mul(decimal.NewFromInt(int64(p.Quantity)))
		if p.Side == Short {
			leg = leg.Neg()
		}
		total = total.Add(leg)
	}
	return total
}
