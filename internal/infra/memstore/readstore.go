package memstore

import (
	"context"
	"sort"

	"approval-service/internal/domain/approval"
	"approval-service/internal/infra"
	"approval-service/internal/usecase/queries"

	"github.com/google/uuid"
)

// ApprovalReadStore serves views over the in-memory request set.
type ApprovalReadStore struct {
	store *ApprovalStore
}

func NewApprovalReadStore(store *ApprovalStore) *ApprovalReadStore {
	return &ApprovalReadStore{store: store}
}

func (r *ApprovalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	req, err := r.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := recordToView(req.ToRecord())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request view", err)
	}
	return view, nil
}

func (r *ApprovalReadStore) List(_ context.Context, filter queries.RequestFilter) ([]*queries.RequestView, error) {
	records := r.store.snapshotRecords()

	views := make([]*queries.RequestView, 0, len(records))
	for _, rec := range records {
		view, err := recordToView(rec)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to build request view", err)
		}
		if matchesFilter(view, filter) {
			views = append(views, view)
		}
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].SubmittedAt.Before(views[j].SubmittedAt)
	})
	return views, nil
}

func matchesFilter(v *queries.RequestView, f queries.RequestFilter) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, st := range f.Statuses {
			if v.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Type != nil && v.Type != *f.Type {
		return false
	}
	if f.Priority != nil && v.Priority != *f.Priority {
		return false
	}
	if f.SubmittedFrom != nil && v.SubmittedAt.Before(*f.SubmittedFrom) {
		return false
	}
	return true
}

func recordToView(rec approval.Record) (*queries.RequestView, error) {
	entityJSON, err := approval.EncodeAffectedEntity(rec.Entity)
	if err != nil {
		return nil, err
	}

	approvers := make([]string, len(rec.RequiredApprovers))
	for i, role := range rec.RequiredApprovers {
		approvers[i] = role.String()
	}

	comments := make([]queries.CommentView, len(rec.Comments))
	for i, c := range rec.Comments {
		comments[i] = queries.CommentView{
			ID:        c.ID,
			Author:    c.Author,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
	}

	view := &queries.RequestView{
		ID:            rec.ID,
		Type:          rec.Type.String(),
		Title:         rec.Title,
		Description:   rec.Description,
		SubmittedBy:   rec.SubmittedBy,
		SubmitterRole: rec.SubmitterRole,
		SubmittedAt:   rec.SubmittedAt,
		Entity:        entityJSON,
		Impact: queries.ImpactView{
			RevenueImpact:  rec.Impact.RevenueImpact,
			MarginImpact:   rec.Impact.MarginImpact,
			CustomerImpact: rec.Impact.CustomerImpact.String(),
		},
		Sensitivity:       rec.Sensitivity.Level.String(),
		Priority:          rec.Sensitivity.Priority.String(),
		RequiredApprovers: approvers,
		Status:            rec.Status.String(),
		DecidedBy:         rec.DecidedBy,
		DecidedAt:         rec.DecidedAt,
		DecisionComments:  rec.DecisionComments,
		BulkActionID:      rec.BulkActionID,
		Comments:          comments,
	}

	if rec.WalletImpact != nil {
		view.WalletImpact = &queries.WalletImpactView{
			RequiresHold:   rec.WalletImpact.RequiresHold,
			HoldAmount:     rec.WalletImpact.HoldAmount,
			AdjustmentType: rec.WalletImpact.AdjustmentType.String(),
			TotalImpact:    rec.WalletImpact.TotalImpact,
		}
	}
	if rec.WalletAdjustment != nil {
		view.WalletAdjustment = &queries.AdjustmentView{
			RequestID:        rec.WalletAdjustment.RequestID,
			TransactionID:    rec.WalletAdjustment.TransactionID,
			HoldAmount:       rec.WalletAdjustment.HoldAmount,
			AdjustmentAmount: rec.WalletAdjustment.AdjustmentAmount,
			AdjustmentType:   rec.WalletAdjustment.AdjustmentType.String(),
			ProcessedAt:      rec.WalletAdjustment.ProcessedAt,
			Status:           string(rec.WalletAdjustment.Status),
		}
	}

	return view, nil
}
