package queries

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type RequestView struct {
	ID                uuid.UUID         `json:"id"`
	Type              string            `json:"type"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	SubmittedBy       uuid.UUID         `json:"submitted_by"`
	SubmitterRole     string            `json:"submitter_role,omitempty"`
	SubmittedAt       time.Time         `json:"submitted_at"`
	Entity            json.RawMessage   `json:"entity"`
	Impact            ImpactView        `json:"impact"`
	Sensitivity       string            `json:"sensitivity"`
	Priority          string            `json:"priority"`
	RequiredApprovers []string          `json:"required_approvers"`
	WalletImpact      *WalletImpactView `json:"wallet_impact,omitempty"`
	Status            string            `json:"status"`
	DecidedBy         *uuid.UUID        `json:"decided_by,omitempty"`
	DecidedAt         *time.Time        `json:"decided_at,omitempty"`
	DecisionComments  string            `json:"decision_comments,omitempty"`
	WalletAdjustment  *AdjustmentView   `json:"wallet_adjustment,omitempty"`
	BulkActionID      *uuid.UUID        `json:"bulk_action_id,omitempty"`
	Comments          []CommentView     `json:"comments"`
}

type ImpactView struct {
	RevenueImpact  float64 `json:"revenue_impact"`
	MarginImpact   float64 `json:"margin_impact"`
	CustomerImpact string  `json:"customer_impact"`
}

type WalletImpactView struct {
	RequiresHold   bool    `json:"requires_hold"`
	HoldAmount     float64 `json:"hold_amount"`
	AdjustmentType string  `json:"adjustment_type"`
	TotalImpact    float64 `json:"total_impact"`
}

type AdjustmentView struct {
	RequestID        uuid.UUID `json:"request_id"`
	TransactionID    uuid.UUID `json:"transaction_id"`
	HoldAmount       float64   `json:"hold_amount"`
	AdjustmentAmount float64   `json:"adjustment_amount"`
	AdjustmentType   string    `json:"adjustment_type"`
	ProcessedAt      time.Time `json:"processed_at"`
	Status           string    `json:"status"`
}

type CommentView struct {
	ID        uuid.UUID `json:"id"`
	Author    uuid.UUID `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type HoldView struct {
	RequestID      uuid.UUID `json:"request_id"`
	HoldAmount     float64   `json:"hold_amount"`
	TotalImpact    float64   `json:"total_impact"`
	AdjustmentType string    `json:"adjustment_type"`
	CreatedAt      time.Time `json:"created_at"`
	Status         string    `json:"status"`
}

type WalletSummaryView struct {
	ActiveHoldCount   int               `json:"active_hold_count"`
	TotalHeld         float64           `json:"total_held"`
	Holds             []*HoldView       `json:"holds"`
	RecentAdjustments []*AdjustmentView `json:"recent_adjustments"`
}
