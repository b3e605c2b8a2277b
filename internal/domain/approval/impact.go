package approval

import "math"

// BusinessImpact quantifies a proposed change before anyone signs off on it.
type BusinessImpact struct {
	// Signed revenue delta in whole currency units.
	RevenueImpact float64 `json:"revenue_impact"`
	// Signed margin delta as a percentage, rounded to 2 decimals.
	MarginImpact   float64        `json:"margin_impact"`
	CustomerImpact CustomerImpact `json:"customer_impact"`
}

// ImpactCalculator derives business impact from a change payload. It is pure:
// the same entity always yields the same impact, so the UI can preview it
// before submission.
type ImpactCalculator struct {
	// Units assumed sold per product when sizing a bulk discount. A stock
	// heuristic, not a sales figure.
	UnitsPerProduct float64
}

func NewImpactCalculator(unitsPerProduct float64) ImpactCalculator {
	return ImpactCalculator{UnitsPerProduct: unitsPerProduct}
}

func (c ImpactCalculator) Calculate(entity AffectedEntity) BusinessImpact {
	switch e := entity.(type) {
	case PriceChange:
		return c.priceChangeImpact(e)
	case BulkDiscount:
		return c.bulkDiscountImpact(e)
	default:
		// Non-financial changes default to a quiet impact; new variants add
		// their own case rather than growing a monolithic formula.
		return BusinessImpact{CustomerImpact: CustomerImpactLow}
	}
}

func (c ImpactCalculator) priceChangeImpact(e PriceChange) BusinessImpact {
	revenue := math.Round((e.ProposedPrice - e.CurrentPrice) * float64(e.CurrentStock))
	margin := round2(e.PercentChange())

	customer := CustomerImpactMedium
	if math.Abs(margin) > priceChangeMediumPct {
		customer = CustomerImpactHigh
	}

	return BusinessImpact{
		RevenueImpact:  revenue,
		MarginImpact:   margin,
		CustomerImpact: customer,
	}
}

func (c ImpactCalculator) bulkDiscountImpact(e BulkDiscount) BusinessImpact {
	estimatedSales := float64(e.ProductCount) * c.UnitsPerProduct
	revenue := math.Round(-e.AvgPrice * estimatedSales * e.DiscountPercent / 100)

	customer := CustomerImpactMedium
	if e.DiscountPercent > discountCustomerHighPct {
		customer = CustomerImpactHigh
	}

	return BusinessImpact{
		RevenueImpact:  revenue,
		MarginImpact:   round2(-e.DiscountPercent),
		CustomerImpact: customer,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
