package commands

import (
	"context"
	"time"
)

type EventType string

const (
	EventRequestSubmitted       EventType = "request_submitted"
	EventRequestDecided         EventType = "request_decided"
	EventCommentAdded           EventType = "comment_added"
	EventBulkApprovalCompleted  EventType = "bulk_approval_completed"
	EventBulkRejectionCompleted EventType = "bulk_rejection_completed"
	EventExecutionFailed        EventType = "execution_failed"
)

// Event is the abstract notification the core emits. How it reaches clients
// (socket push, polling, queue) is the publisher's concern.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// EventPublisher delivers events best-effort. Implementations log failures
// and never propagate them: a lost notification must not fail a decision.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
