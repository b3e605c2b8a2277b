package wallet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHoldNotRequired = errors.New("wallet impact does not require a hold")
	ErrHoldResolved    = errors.New("wallet hold already resolved")
)

// Hold is a provisional escrow reservation keyed by request id. It is owned
// exclusively by the ledger and resolves exactly once: settled on approval,
// released on rejection.
type Hold struct {
	requestID      uuid.UUID
	holdAmount     float64
	totalImpact    float64
	adjustmentType AdjustmentType
	createdAt      time.Time
	status         HoldStatus
}

func NewHold(requestID uuid.UUID, impact Impact, now time.Time) (*Hold, error) {
	if !impact.RequiresHold {
		return nil, ErrHoldNotRequired
	}
	return &Hold{
		requestID:      requestID,
		holdAmount:     impact.HoldAmount,
		totalImpact:    impact.TotalImpact,
		adjustmentType: impact.AdjustmentType,
		createdAt:      now,
		status:         HoldStatusHolding,
	}, nil
}

func ReconstructHold(
	requestID uuid.UUID,
	holdAmount, totalImpact float64,
	adjustmentType AdjustmentType,
	createdAt time.Time,
	status HoldStatus,
) *Hold {
	return &Hold{
		requestID:      requestID,
		holdAmount:     holdAmount,
		totalImpact:    totalImpact,
		adjustmentType: adjustmentType,
		createdAt:      createdAt,
		status:         status,
	}
}

// Settle converts the open hold into a permanent adjustment. The adjustment
// amount is the full signed impact, not the damped hold amount.
func (h *Hold) Settle(transactionID uuid.UUID, now time.Time) (*Adjustment, error) {
	if h.status != HoldStatusHolding {
		return nil, ErrHoldResolved
	}
	h.status = HoldStatusSettled

	amount := h.totalImpact
	if h.adjustmentType == AdjustmentDecrease {
		amount = -amount
	}

	return &Adjustment{
		RequestID:        h.requestID,
		TransactionID:    transactionID,
		HoldAmount:       h.holdAmount,
		AdjustmentAmount: amount,
		AdjustmentType:   h.adjustmentType,
		ProcessedAt:      now,
		Status:           AdjustmentStatusCompleted,
	}, nil
}

// Release discards the hold with no adjustment.
func (h *Hold) Release() error {
	if h.status != HoldStatusHolding {
		return ErrHoldResolved
	}
	h.status = HoldStatusReleased
	return nil
}

func (h *Hold) RequestID() uuid.UUID           { return h.requestID }
func (h *Hold) HoldAmount() float64            { return h.holdAmount }
func (h *Hold) TotalImpact() float64           { return h.totalImpact }
func (h *Hold) AdjustmentType() AdjustmentType { return h.adjustmentType }
func (h *Hold) CreatedAt() time.Time           { return h.createdAt }
func (h *Hold) Status() HoldStatus             { return h.status }
func (h *Hold) IsOpen() bool                   { return h.status == HoldStatusHolding }
