package request

import (
	"encoding/json"
	"strings"

	"approval-service/internal/domain/approval"

	"github.com/google/uuid"
)

// SubmitApprovalRequest carries the change payload as raw JSON; the concrete
// shape is selected by the type discriminator.
type SubmitApprovalRequest struct {
	Type        string          `json:"type" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Entity      json.RawMessage `json:"entity" binding:"required"`
}

func (r SubmitApprovalRequest) ToSeed(actorID uuid.UUID, actorRole string) (approval.Seed, error) {
	changeType := approval.ChangeType(strings.TrimSpace(r.Type))

	entity, err := approval.DecodeAffectedEntity(changeType, r.Entity)
	if err != nil {
		return approval.Seed{}, err
	}

	return approval.Seed{
		Type:          changeType,
		Title:         strings.TrimSpace(r.Title),
		Description:   strings.TrimSpace(r.Description),
		SubmittedBy:   actorID,
		SubmitterRole: actorRole,
		Entity:        entity,
	}, nil
}

type DecisionRequest struct {
	Comments string `json:"comments,omitempty"`
}

type BulkDecisionRequest struct {
	RequestIDs []uuid.UUID `json:"request_ids" binding:"required"`
	Comments   string      `json:"comments,omitempty"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}
