package approval

import "math"

// Shared threshold table. Classify and RequiresApproval both read from these
// constants so the pre-submission dry-run can never drift from the real
// classification.
const (
	priceChangeMediumPct = 20.0
	priceChangeHighPct   = 50.0

	discountMediumPct       = 15.0
	discountHighPct         = 30.0
	discountCustomerHighPct = 20.0

	writeOffMediumValue = 5000.0
	writeOffHighValue   = 10000.0
)

// Sensitivity is the risk tier of a proposed change plus the queue priority
// it should surface with.
type Sensitivity struct {
	Level    SensitivityLevel `json:"level"`
	Priority Priority         `json:"priority"`
}

// Classify maps a change payload onto a sensitivity tier. Unknown payloads
// classify low/medium; escalation is always explicit, never a fallback.
func Classify(entity AffectedEntity) Sensitivity {
	switch e := entity.(type) {
	case PriceChange:
		pct := math.Abs(e.PercentChange())
		switch {
		case pct > priceChangeHighPct:
			return Sensitivity{Level: SensitivityHigh, Priority: PriorityUrgent}
		case pct > priceChangeMediumPct:
			return Sensitivity{Level: SensitivityMedium, Priority: PriorityHigh}
		default:
			return Sensitivity{Level: SensitivityLow, Priority: PriorityMedium}
		}
	case BulkDiscount:
		switch {
		case e.DiscountPercent > discountHighPct:
			return Sensitivity{Level: SensitivityHigh, Priority: PriorityUrgent}
		case e.DiscountPercent > discountMediumPct:
			return Sensitivity{Level: SensitivityMedium, Priority: PriorityHigh}
		default:
			return Sensitivity{Level: SensitivityLow, Priority: PriorityMedium}
		}
	case ProductRemoval:
		return Sensitivity{Level: SensitivityMedium, Priority: PriorityHigh}
	case InventoryWriteOff:
		switch {
		case e.TotalValue > writeOffHighValue:
			return Sensitivity{Level: SensitivityHigh, Priority: PriorityUrgent}
		case e.TotalValue > writeOffMediumValue:
			return Sensitivity{Level: SensitivityMedium, Priority: PriorityHigh}
		default:
			return Sensitivity{Level: SensitivityLow, Priority: PriorityMedium}
		}
	default:
		return Sensitivity{Level: SensitivityLow, Priority: PriorityMedium}
	}
}

// RequiresApproval is the dry-run check UIs call before submission to warn
// that a change will enter the approval queue. It reuses the classification
// thresholds: any price change above the medium band, any discount above the
// medium band, and every removal or write-off needs sign-off.
func RequiresApproval(entity AffectedEntity) bool {
	switch e := entity.(type) {
	case PriceChange:
		return math.Abs(e.PercentChange()) > priceChangeMediumPct
	case BulkDiscount:
		return e.DiscountPercent > discountMediumPct
	case ProductRemoval, InventoryWriteOff:
		return true
	default:
		return false
	}
}
