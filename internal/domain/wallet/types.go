package wallet

type AdjustmentType string

const (
	AdjustmentIncrease AdjustmentType = "increase"
	AdjustmentDecrease AdjustmentType = "decrease"
)

func (t AdjustmentType) String() string {
	return string(t)
}

type HoldStatus string

const (
	// HoldStatusHolding is the only live state; settled and released are terminal.
	HoldStatusHolding  HoldStatus = "holding"
	HoldStatusSettled  HoldStatus = "settled"
	HoldStatusReleased HoldStatus = "released"
)

func (s HoldStatus) String() string {
	return string(s)
}

// Impact is the wallet-side snapshot computed at submission time. It stays
// attached to the request even when RequiresHold is false, so the decision
// path never has to recompute it.
type Impact struct {
	RequiresHold   bool           `json:"requires_hold"`
	HoldAmount     float64        `json:"hold_amount"`
	AdjustmentType AdjustmentType `json:"adjustment_type"`
	TotalImpact    float64        `json:"total_impact"`
}
