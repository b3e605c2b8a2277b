package commands

import (
	"context"
	"log/slog"
	"strings"

	"approval-service/internal/domain/approval"
	"approval-service/internal/domain/wallet"
	"approval-service/internal/infra"
	"approval-service/internal/pkg/clock"
	"approval-service/internal/pkg/errs"
	"approval-service/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound         = errs.New("approval request not found")
	ErrRequestNotPending       = errs.New("approval request is not pending")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type ApprovalCommands interface {
	Submit(ctx context.Context, seed approval.Seed) (*queries.RequestView, error)
	Approve(ctx context.Context, id, actor uuid.UUID, comments string) (*queries.RequestView, error)
	Reject(ctx context.Context, id, actor uuid.UUID, comments string) (*queries.RequestView, error)
	AddComment(ctx context.Context, id, author uuid.UUID, text string) (*queries.CommentView, error)
}

// ApprovalUseCase backs both ApprovalCommands and BulkCommands; the DI layer
// binds it to each interface separately.
type ApprovalUseCase struct {
	repo     ApprovalRequestRepository
	ledger   WalletLedger
	calc     approval.ImpactCalculator
	queries  queries.ApprovalQueries
	events   EventPublisher
	executor ChangeExecutor
	clock    clock.Clock
}

func NewApprovalUseCase(
	repo ApprovalRequestRepository,
	ledger WalletLedger,
	calc approval.ImpactCalculator,
	approvalQueries queries.ApprovalQueries,
	events EventPublisher,
	executor ChangeExecutor,
	clk clock.Clock,
) *ApprovalUseCase {
	return &ApprovalUseCase{
		repo:     repo,
		ledger:   ledger,
		calc:     calc,
		queries:  approvalQueries,
		events:   events,
		executor: executor,
		clock:    clk,
	}
}

func (u *ApprovalUseCase) Submit(ctx context.Context, seed approval.Seed) (*queries.RequestView, error) {
	impact := u.calc.Calculate(seed.Entity)
	sensitivity := approval.Classify(seed.Entity)
	approvers := approval.RequiredApprovers(sensitivity.Level)

	var walletImpact *wallet.Impact
	if seed.Type.IsFinancial() && seed.Entity != nil {
		w := u.ledger.ComputeImpact(seed.Entity)
		walletImpact = &w
	}

	req, err := approval.NewRequest(seed, impact, sensitivity, approvers, walletImpact, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// The hold is escrowed before the request becomes durable: a request that
	// requires a hold must never exist in pending state without one.
	if req.RequiresHold() {
		if err := u.ledger.CreateHold(ctx, req.ID(), *walletImpact); err != nil {
			return nil, err
		}
	}

	if err := u.repo.Create(ctx, req); err != nil {
		// Creation failed after escrow: free the orphaned hold.
		if req.RequiresHold() {
			if releaseErr := u.ledger.Release(ctx, req.ID()); releaseErr != nil {
				slog.Warn("failed to release orphaned hold after submit failure",
					"request_id", req.ID(), "error", releaseErr)
			}
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := u.queries.GetByID(ctx, req.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	u.events.Publish(ctx, Event{
		Type:       EventRequestSubmitted,
		OccurredAt: u.clock.Now(),
		Payload:    view,
	})
	return view, nil
}

func (u *ApprovalUseCase) Approve(ctx context.Context, id, actor uuid.UUID, comments string) (*queries.RequestView, error) {
	return u.approveOne(ctx, id, actor, comments, nil)
}

func (u *ApprovalUseCase) Reject(ctx context.Context, id, actor uuid.UUID, comments string) (*queries.RequestView, error) {
	return u.rejectOne(ctx, id, actor, comments, nil)
}

func (u *ApprovalUseCase) approveOne(ctx context.Context, id, actor uuid.UUID, comments string, bulkActionID *uuid.UUID) (*queries.RequestView, error) {
	req, err := u.repo.Mutate(ctx, id, func(txCtx context.Context, r *approval.Request) error {
		if !r.IsPending() {
			return approval.ErrNotPending
		}
		adj, settleErr := u.ledger.Settle(txCtx, r.ID())
		if settleErr != nil {
			return settleErr
		}
		if approveErr := r.Approve(actor, comments, u.clock.Now(), adj); approveErr != nil {
			return approveErr
		}
		if bulkActionID != nil {
			return r.TagBulkAction(*bulkActionID)
		}
		return nil
	})
	if err != nil {
		return nil, u.mapDecisionError(err)
	}

	view, err := u.queries.GetByID(ctx, req.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	u.events.Publish(ctx, Event{
		Type:       EventRequestDecided,
		OccurredAt: u.clock.Now(),
		Payload:    view,
	})

	// Applying the change downstream is fire-and-forget: the approval is
	// already durable and is never rolled back if execution fails.
	u.applyChangeAsync(req.ToRecord(), req.WalletAdjustment())

	return view, nil
}

func (u *ApprovalUseCase) rejectOne(ctx context.Context, id, actor uuid.UUID, comments string, bulkActionID *uuid.UUID) (*queries.RequestView, error) {
	req, err := u.repo.Mutate(ctx, id, func(txCtx context.Context, r *approval.Request) error {
		if !r.IsPending() {
			return approval.ErrNotPending
		}
		// Validate the reason before touching the ledger so a rejected
		// validation never leaves the hold half-resolved.
		if strings.TrimSpace(comments) == "" {
			return approval.ErrEmptyDecisionComment
		}
		if releaseErr := u.ledger.Release(txCtx, r.ID()); releaseErr != nil {
			return releaseErr
		}
		if rejectErr := r.Reject(actor, comments, u.clock.Now()); rejectErr != nil {
			return rejectErr
		}
		if bulkActionID != nil {
			return r.TagBulkAction(*bulkActionID)
		}
		return nil
	})
	if err != nil {
		return nil, u.mapDecisionError(err)
	}

	view, err := u.queries.GetByID(ctx, req.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	u.events.Publish(ctx, Event{
		Type:       EventRequestDecided,
		OccurredAt: u.clock.Now(),
		Payload:    view,
	})
	return view, nil
}

func (u *ApprovalUseCase) AddComment(ctx context.Context, id, author uuid.UUID, text string) (*queries.CommentView, error) {
	var added approval.Comment
	_, err := u.repo.Mutate(ctx, id, func(_ context.Context, r *approval.Request) error {
		c, commentErr := r.AddComment(author, text, u.clock.Now())
		if commentErr != nil {
			return commentErr
		}
		added = c
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRequestNotFound)
		}
		if errs.Is(err, approval.ErrEmptyComment) {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view := &queries.CommentView{
		ID:        added.ID,
		Author:    added.Author,
		Text:      added.Text,
		CreatedAt: added.CreatedAt,
	}
	u.events.Publish(ctx, Event{
		Type:       EventCommentAdded,
		OccurredAt: u.clock.Now(),
		Payload:    map[string]any{"request_id": id, "comment": view},
	})
	return view, nil
}

func (u *ApprovalUseCase) mapDecisionError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrRequestNotFound)
	case errs.Is(err, approval.ErrNotPending):
		return errs.Mark(err, ErrRequestNotPending)
	case errs.Is(err, approval.ErrEmptyDecisionComment):
		return errs.Mark(err, ErrDomainValidation)
	case errs.Is(err, ErrDatabaseOperationFailed):
		return err
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}

func (u *ApprovalUseCase) applyChangeAsync(rec approval.Record, adj *wallet.Adjustment) {
	go func() {
		// Detached from the request context: execution outlives the HTTP call.
		ctx := context.Background()
		if err := u.executor.Apply(ctx, rec, adj); err != nil {
			slog.Error("change execution failed after approval",
				"request_id", rec.ID, "type", rec.Type, "error", err)
			u.events.Publish(ctx, Event{
				Type:       EventExecutionFailed,
				OccurredAt: u.clock.Now(),
				Payload: map[string]any{
					"request_id": rec.ID,
					"type":       rec.Type,
					"error":      err.Error(),
				},
			})
		}
	}()
}
