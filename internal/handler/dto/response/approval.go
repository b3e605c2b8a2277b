package response

import (
	"encoding/json"
	"time"

	"approval-service/internal/usecase/commands"
	"approval-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type ApprovalResponse struct {
	ID                uuid.UUID         `json:"id"`
	Type              string            `json:"type"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	SubmittedBy       uuid.UUID         `json:"submittedBy"`
	SubmitterRole     string            `json:"submitterRole,omitempty"`
	SubmittedAt       time.Time         `json:"submittedAt"`
	Entity            json.RawMessage   `json:"entity"`
	Impact            ImpactResponse    `json:"impact"`
	Sensitivity       string            `json:"sensitivity"`
	Priority          string            `json:"priority"`
	RequiredApprovers []string          `json:"requiredApprovers"`
	WalletImpact      *WalletImpactItem `json:"walletImpact,omitempty"`
	Status            string            `json:"status"`
	DecidedBy         *uuid.UUID        `json:"decidedBy,omitempty"`
	DecidedAt         *time.Time        `json:"decidedAt,omitempty"`
	DecisionComments  string            `json:"decisionComments,omitempty"`
	WalletAdjustment  *AdjustmentItem   `json:"walletAdjustment,omitempty"`
	BulkActionID      *uuid.UUID        `json:"bulkActionId,omitempty"`
	Comments          []CommentResponse `json:"comments"`
}

type ImpactResponse struct {
	RevenueImpact  float64 `json:"revenueImpact"`
	MarginImpact   float64 `json:"marginImpact"`
	CustomerImpact string  `json:"customerImpact"`
}

type WalletImpactItem struct {
	RequiresHold   bool    `json:"requiresHold"`
	HoldAmount     float64 `json:"holdAmount"`
	AdjustmentType string  `json:"adjustmentType"`
	TotalImpact    float64 `json:"totalImpact"`
}

type AdjustmentItem struct {
	RequestID        uuid.UUID `json:"requestId"`
	TransactionID    uuid.UUID `json:"transactionId"`
	HoldAmount       float64   `json:"holdAmount"`
	AdjustmentAmount float64   `json:"adjustmentAmount"`
	AdjustmentType   string    `json:"adjustmentType"`
	ProcessedAt      time.Time `json:"processedAt"`
	Status           string    `json:"status"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	Author    uuid.UUID `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromRequestView(rm *queries.RequestView) *ApprovalResponse {
	resp := &ApprovalResponse{
		ID:                rm.ID,
		Type:              rm.Type,
		Title:             rm.Title,
		Description:       rm.Description,
		SubmittedBy:       rm.SubmittedBy,
		SubmitterRole:     rm.SubmitterRole,
		SubmittedAt:       rm.SubmittedAt,
		Entity:            rm.Entity,
		Impact:            ImpactResponse(rm.Impact),
		Sensitivity:       rm.Sensitivity,
		Priority:          rm.Priority,
		RequiredApprovers: rm.RequiredApprovers,
		Status:            rm.Status,
		DecidedBy:         rm.DecidedBy,
		DecidedAt:         rm.DecidedAt,
		DecisionComments:  rm.DecisionComments,
		BulkActionID:      rm.BulkActionID,
		Comments:          make([]CommentResponse, len(rm.Comments)),
	}
	if rm.WalletImpact != nil {
		item := WalletImpactItem(*rm.WalletImpact)
		resp.WalletImpact = &item
	}
	if rm.WalletAdjustment != nil {
		item := AdjustmentItem(*rm.WalletAdjustment)
		resp.WalletAdjustment = &item
	}
	for i, cm := range rm.Comments {
		resp.Comments[i] = CommentResponse(cm)
	}
	return resp
}

func FromRequestViews(rms []*queries.RequestView) []*ApprovalResponse {
	out := make([]*ApprovalResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromRequestView(rm)
	}
	return out
}

func FromCommentView(rm *queries.CommentView) *CommentResponse {
	resp := CommentResponse(*rm)
	return &resp
}

type BulkFailureItem struct {
	RequestID uuid.UUID `json:"requestId"`
	Reason    string    `json:"reason"`
}

type BulkSummaryResponse struct {
	SuccessCount int     `json:"successCount"`
	FailureCount int     `json:"failureCount"`
	TotalImpact  float64 `json:"totalImpact"`
}

type BulkDecisionResponse struct {
	BulkActionID uuid.UUID           `json:"bulkActionId"`
	Successful   []*ApprovalResponse `json:"successful"`
	Failed       []BulkFailureItem   `json:"failed"`
	Summary      BulkSummaryResponse `json:"summary"`
}

func FromBulkResult(rm *commands.BulkResult) *BulkDecisionResponse {
	resp := &BulkDecisionResponse{
		BulkActionID: rm.BulkActionID,
		Successful:   FromRequestViews(rm.Successful),
		Failed:       make([]BulkFailureItem, len(rm.Failed)),
		Summary:      BulkSummaryResponse(rm.Summary),
	}
	for i, f := range rm.Failed {
		resp.Failed[i] = BulkFailureItem(f)
	}
	return resp
}

type AuditEventResponse struct {
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Actor     uuid.UUID      `json:"actor"`
	Details   map[string]any `json:"details,omitempty"`
}

func FromAuditEvents(events []queries.AuditEvent) []AuditEventResponse {
	out := make([]AuditEventResponse, len(events))
	for i, ev := range events {
		out[i] = AuditEventResponse{
			Type:      string(ev.Type),
			Timestamp: ev.Timestamp,
			Actor:     ev.Actor,
			Details:   ev.Details,
		}
	}
	return out
}
