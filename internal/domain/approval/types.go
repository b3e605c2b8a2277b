package approval

// ChangeType identifies the kind of business change under review.
type ChangeType string

const (
	TypePriceChange       ChangeType = "price_change"
	TypeBulkDiscount      ChangeType = "bulk_discount"
	TypeProductRemoval    ChangeType = "product_removal"
	TypeInventoryWriteOff ChangeType = "inventory_write_off"
)

func (t ChangeType) String() string {
	return string(t)
}

func (t ChangeType) IsValid() bool {
	switch t {
	case TypePriceChange, TypeBulkDiscount, TypeProductRemoval, TypeInventoryWriteOff:
		return true
	default:
		return false
	}
}

// IsFinancial reports whether the change type can carry a wallet hold.
func (t ChangeType) IsFinancial() bool {
	return t == TypePriceChange
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) String() string {
	return string(p)
}

// Ordinal orders priorities low < medium < high < urgent. Unknown values sort
// below low.
func (p Priority) Ordinal() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 0
	}
}

type SensitivityLevel string

const (
	SensitivityLow    SensitivityLevel = "low"
	SensitivityMedium SensitivityLevel = "medium"
	SensitivityHigh   SensitivityLevel = "high"
)

func (l SensitivityLevel) String() string {
	return string(l)
}

type CustomerImpact string

const (
	CustomerImpactLow    CustomerImpact = "low"
	CustomerImpactMedium CustomerImpact = "medium"
	CustomerImpactHigh   CustomerImpact = "high"
)

func (c CustomerImpact) String() string {
	return string(c)
}

type ApproverRole string

const (
	RoleManager       ApproverRole = "manager"
	RoleAdmin         ApproverRole = "admin"
	RoleSeniorManager ApproverRole = "senior_manager"
)

func (r ApproverRole) String() string {
	return string(r)
}
