package wallet

import "math"

// Policy holds the escrow heuristics: above which financial impact a hold is
// required, and what fraction of that impact is reserved. Both values are
// storefront conventions with no derivation behind them, so they arrive from
// configuration rather than living here as literals.
type Policy struct {
	HoldThreshold float64
	HoldRate      float64
}

func NewPolicy(holdThreshold, holdRate float64) Policy {
	return Policy{HoldThreshold: holdThreshold, HoldRate: holdRate}
}

// PriceChangeImpact sizes the wallet exposure of a pending price change.
// Only price changes move the wallet; other change types get ZeroImpact.
func (p Policy) PriceChangeImpact(currentPrice, proposedPrice float64, currentStock int64) Impact {
	totalImpact := math.Abs(proposedPrice-currentPrice) * float64(currentStock)

	adjType := AdjustmentDecrease
	if proposedPrice > currentPrice {
		adjType = AdjustmentIncrease
	}

	impact := Impact{
		AdjustmentType: adjType,
		TotalImpact:    totalImpact,
	}
	if totalImpact > p.HoldThreshold {
		impact.RequiresHold = true
		impact.HoldAmount = p.HoldRate * totalImpact
	}
	return impact
}
