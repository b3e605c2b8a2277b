package wallet

import (
	"time"

	"github.com/google/uuid"
)

type AdjustmentStatus string

const (
	AdjustmentStatusCompleted AdjustmentStatus = "completed"
)

// Adjustment is the append-only settlement record produced when a hold is
// settled. It is never mutated after creation; the audit history is built
// from these records.
type Adjustment struct {
	RequestID        uuid.UUID        `json:"request_id"`
	TransactionID    uuid.UUID        `json:"transaction_id"`
	HoldAmount       float64          `json:"hold_amount"`
	AdjustmentAmount float64          `json:"adjustment_amount"`
	AdjustmentType   AdjustmentType   `json:"adjustment_type"`
	ProcessedAt      time.Time        `json:"processed_at"`
	Status           AdjustmentStatus `json:"status"`
}
