package queries

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type AuditEventType string

const (
	AuditSubmitted         AuditEventType = "submitted"
	AuditWalletHoldCreated AuditEventType = "wallet_hold_created"
	AuditCommentAdded      AuditEventType = "comment_added"
	AuditApproved          AuditEventType = "approved"
	AuditRejected          AuditEventType = "rejected"
)

// AuditEvent is one entry in the derived, time-ordered reconstruction of a
// request's life. Nothing here is stored; the trail is rebuilt from the
// request's own fields on every read.
type AuditEvent struct {
	Type      AuditEventType `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Actor     uuid.UUID      `json:"actor"`
	Details   map[string]any `json:"details,omitempty"`
}

// BuildAuditTrail derives the chronological event list for one request.
// Comments can be appended after the decision, so the result is sorted by
// timestamp rather than trusting field order.
func BuildAuditTrail(view *RequestView) []AuditEvent {
	events := make([]AuditEvent, 0, len(view.Comments)+3)

	events = append(events, AuditEvent{
		Type:      AuditSubmitted,
		Timestamp: view.SubmittedAt,
		Actor:     view.SubmittedBy,
		Details: map[string]any{
			"type":     view.Type,
			"title":    view.Title,
			"priority": view.Priority,
		},
	})

	if view.WalletImpact != nil && view.WalletImpact.RequiresHold {
		events = append(events, AuditEvent{
			Type:      AuditWalletHoldCreated,
			Timestamp: view.SubmittedAt,
			Actor:     view.SubmittedBy,
			Details: map[string]any{
				"hold_amount":  view.WalletImpact.HoldAmount,
				"total_impact": view.WalletImpact.TotalImpact,
			},
		})
	}

	for _, c := range view.Comments {
		events = append(events, AuditEvent{
			Type:      AuditCommentAdded,
			Timestamp: c.CreatedAt,
			Actor:     c.Author,
			Details: map[string]any{
				"text": c.Text,
			},
		})
	}

	if view.DecidedAt != nil && view.DecidedBy != nil {
		eventType := AuditApproved
		if view.Status == "rejected" {
			eventType = AuditRejected
		}
		details := map[string]any{}
		if view.DecisionComments != "" {
			details["comments"] = view.DecisionComments
		}
		if view.WalletAdjustment != nil {
			details["adjustment_amount"] = view.WalletAdjustment.AdjustmentAmount
			details["transaction_id"] = view.WalletAdjustment.TransactionID.String()
		}
		events = append(events, AuditEvent{
			Type:      eventType,
			Timestamp: *view.DecidedAt,
			Actor:     *view.DecidedBy,
			Details:   details,
		})
	}

	// Stable: events sharing a timestamp keep the derivation order above
	// (submission before hold, hold before same-instant comments).
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	return events
}
