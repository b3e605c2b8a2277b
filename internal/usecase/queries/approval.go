package queries

import (
	"context"
	"time"

	"approval-service/internal/infra"
	"approval-service/internal/pkg/clock"
	"approval-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound = errs.New("approval request not found")
)

// RequestFilter narrows read-side listings. Nil fields mean "any".
type RequestFilter struct {
	Statuses      []string
	Type          *string
	Priority      *string
	SubmittedFrom *time.Time
}

// ApprovalReadStore is the read-side port. Implementations must return
// consistent snapshots: a view handed out here never changes under the
// caller while a decision lands concurrently.
type ApprovalReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	List(ctx context.Context, filter RequestFilter) ([]*RequestView, error)
}

// WalletReadStore exposes the ledger's observable state.
type WalletReadStore interface {
	ActiveHolds(ctx context.Context) ([]*HoldView, error)
	RecentAdjustments(ctx context.Context, limit int) ([]*AdjustmentView, error)
}

type ApprovalQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	GetPending(ctx context.Context, changeType, priority *string) ([]*RequestView, error)
	GetHistory(ctx context.Context, changeType *string) ([]*RequestView, error)
	GetAuditTrail(ctx context.Context, id uuid.UUID) ([]AuditEvent, error)
	GetStatistics(ctx context.Context, window Window) (*StatisticsView, error)
	GetWalletSummary(ctx context.Context) (*WalletSummaryView, error)
}

type approvalQueriesImpl struct {
	store  ApprovalReadStore
	wallet WalletReadStore
	clock  clock.Clock
}

func NewApprovalQueries(store ApprovalReadStore, wallet WalletReadStore, clk clock.Clock) ApprovalQueries {
	return &approvalQueriesImpl{
		store:  store,
		wallet: wallet,
		clock:  clk,
	}
}

func (q *approvalQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RequestView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRequestNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *approvalQueriesImpl) GetPending(ctx context.Context, changeType, priority *string) ([]*RequestView, error) {
	return q.store.List(ctx, RequestFilter{
		Statuses: []string{"pending"},
		Type:     changeType,
		Priority: priority,
	})
}

func (q *approvalQueriesImpl) GetHistory(ctx context.Context, changeType *string) ([]*RequestView, error) {
	return q.store.List(ctx, RequestFilter{
		Statuses: []string{"approved", "rejected"},
		Type:     changeType,
	})
}

func (q *approvalQueriesImpl) GetAuditTrail(ctx context.Context, id uuid.UUID) ([]AuditEvent, error) {
	view, err := q.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildAuditTrail(view), nil
}

func (q *approvalQueriesImpl) GetStatistics(ctx context.Context, window Window) (*StatisticsView, error) {
	now := q.clock.Now()
	filter := RequestFilter{}
	if from, bounded := window.Start(now); bounded {
		filter.SubmittedFrom = &from
	}
	views, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return Aggregate(views, window, now), nil
}

func (q *approvalQueriesImpl) GetWalletSummary(ctx context.Context) (*WalletSummaryView, error) {
	holds, err := q.wallet.ActiveHolds(ctx)
	if err != nil {
		return nil, err
	}
	adjustments, err := q.wallet.RecentAdjustments(ctx, recentAdjustmentLimit)
	if err != nil {
		return nil, err
	}

	var totalHeld float64
	for _, h := range holds {
		totalHeld += h.HoldAmount
	}

	return &WalletSummaryView{
		ActiveHoldCount:   len(holds),
		TotalHeld:         totalHeld,
		Holds:             holds,
		RecentAdjustments: adjustments,
	}, nil
}

const recentAdjustmentLimit = 20
