package commands

import (
	"context"
	"math"
	"strings"

	"approval-service/internal/pkg/errs"
	"approval-service/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrBulkCommentsRequired = errs.New("bulk decision requires comments")
	ErrBulkEmptyBatch       = errs.New("bulk decision requires at least one request id")
)

type BulkFailure struct {
	RequestID uuid.UUID `json:"request_id"`
	Reason    string    `json:"reason"`
}

type BulkSummary struct {
	SuccessCount int `json:"success_count"`
	FailureCount int `json:"failure_count"`
	// Sum of absolute revenue impact over the successful subset.
	TotalImpact float64 `json:"total_impact"`
}

// BulkResult reports per-item outcomes: partial failure is the expected
// shape here, not an error.
type BulkResult struct {
	BulkActionID uuid.UUID              `json:"bulk_action_id"`
	Successful   []*queries.RequestView `json:"successful"`
	Failed       []BulkFailure          `json:"failed"`
	Summary      BulkSummary            `json:"summary"`
}

type BulkCommands interface {
	BulkApprove(ctx context.Context, ids []uuid.UUID, actor uuid.UUID, comments string) (*BulkResult, error)
	BulkReject(ctx context.Context, ids []uuid.UUID, actor uuid.UUID, comments string) (*BulkResult, error)
}

// BulkApprove attempts every id independently; one item's failure never
// aborts the batch.
func (u *ApprovalUseCase) BulkApprove(ctx context.Context, ids []uuid.UUID, actor uuid.UUID, comments string) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, ErrBulkEmptyBatch
	}
	result := u.processBatch(ctx, ids, actor, comments, u.approveOne)

	u.events.Publish(ctx, Event{
		Type:       EventBulkApprovalCompleted,
		OccurredAt: u.clock.Now(),
		Payload:    result,
	})
	return result, nil
}

// BulkReject additionally requires a shared reason up front: a blank comment
// fails the whole batch before any item is touched.
func (u *ApprovalUseCase) BulkReject(ctx context.Context, ids []uuid.UUID, actor uuid.UUID, comments string) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, ErrBulkEmptyBatch
	}
	if strings.TrimSpace(comments) == "" {
		return nil, ErrBulkCommentsRequired
	}
	result := u.processBatch(ctx, ids, actor, comments, u.rejectOne)

	u.events.Publish(ctx, Event{
		Type:       EventBulkRejectionCompleted,
		OccurredAt: u.clock.Now(),
		Payload:    result,
	})
	return result, nil
}

type decideFunc func(ctx context.Context, id, actor uuid.UUID, comments string, bulkActionID *uuid.UUID) (*queries.RequestView, error)

// processBatch runs items sequentially; a duplicated id in one batch is then
// naturally serialized and the second occurrence fails as not-pending.
func (u *ApprovalUseCase) processBatch(ctx context.Context, ids []uuid.UUID, actor uuid.UUID, comments string, decide decideFunc) *BulkResult {
	bulkActionID := uuid.New()
	result := &BulkResult{
		BulkActionID: bulkActionID,
		Successful:   []*queries.RequestView{},
		Failed:       []BulkFailure{},
	}

	for _, id := range ids {
		view, err := decide(ctx, id, actor, comments, &bulkActionID)
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{
				RequestID: id,
				Reason:    failureReason(err),
			})
			continue
		}
		result.Successful = append(result.Successful, view)
		result.Summary.TotalImpact += math.Abs(view.Impact.RevenueImpact)
	}

	result.Summary.SuccessCount = len(result.Successful)
	result.Summary.FailureCount = len(result.Failed)
	return result
}

// failureReason flattens a per-item error into the short reason string the
// batch report carries.
func failureReason(err error) string {
	switch {
	case errs.Is(err, ErrRequestNotFound):
		return "not found"
	case errs.Is(err, ErrRequestNotPending):
		return "not pending"
	case errs.Is(err, ErrDomainValidation):
		return "validation failed"
	default:
		return "internal error"
	}
}
