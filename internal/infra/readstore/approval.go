package readstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"approval-service/internal/infra"
	"approval-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApprovalReadStore serves the query side straight from postgres rows. The
// jsonb payload columns pass through as raw messages; the read side never
// rehydrates domain entities.
type ApprovalReadStore struct {
	pool *pgxpool.Pool
}

func NewApprovalReadStore(pool *pgxpool.Pool) *ApprovalReadStore {
	return &ApprovalReadStore{pool: pool}
}

const selectViewQuery = `
	SELECT id, change_type, title, description,
	       submitted_by, submitter_role, submitted_at, entity,
	       revenue_impact, margin_impact, customer_impact,
	       sensitivity, priority, required_approvers,
	       wallet_impact, status, decided_by, decided_at,
	       decision_comments, wallet_adjustment, bulk_action_id, comments
	FROM approval_requests
`

func (s *ApprovalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	row := s.pool.QueryRow(ctx, selectViewQuery+` WHERE id = $1`, id)
	view, err := scanRequestView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("approval request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get approval request", err)
	}
	return view, nil
}

func (s *ApprovalReadStore) List(ctx context.Context, filter queries.RequestFilter) ([]*queries.RequestView, error) {
	query := selectViewQuery + ` WHERE 1=1`
	args := []any{}

	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		query += fmt.Sprintf(` AND status = ANY($%d)`, len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(` AND change_type = $%d`, len(args))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		query += fmt.Sprintf(` AND priority = $%d`, len(args))
	}
	if filter.SubmittedFrom != nil {
		args = append(args, *filter.SubmittedFrom)
		query += fmt.Sprintf(` AND submitted_at >= $%d`, len(args))
	}
	query += ` ORDER BY submitted_at ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list approval requests", err)
	}
	defer rows.Close()

	views := []*queries.RequestView{}
	for rows.Next() {
		view, err := scanRequestView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan approval request", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate approval requests", err)
	}
	return views, nil
}

func scanRequestView(row pgx.Row) (*queries.RequestView, error) {
	var (
		view           queries.RequestView
		entityJSON     []byte
		impactJSON     []byte
		adjustmentJSON []byte
		commentsJSON   []byte
	)

	err := row.Scan(
		&view.ID, &view.Type, &view.Title, &view.Description,
		&view.SubmittedBy, &view.SubmitterRole, &view.SubmittedAt, &entityJSON,
		&view.Impact.RevenueImpact, &view.Impact.MarginImpact, &view.Impact.CustomerImpact,
		&view.Sensitivity, &view.Priority, &view.RequiredApprovers,
		&impactJSON, &view.Status, &view.DecidedBy, &view.DecidedAt,
		&view.DecisionComments, &adjustmentJSON, &view.BulkActionID, &commentsJSON,
	)
	if err != nil {
		return nil, err
	}

	view.Entity = json.RawMessage(entityJSON)
	view.SubmittedAt = view.SubmittedAt.UTC()
	if view.DecidedAt != nil {
		t := view.DecidedAt.UTC()
		view.DecidedAt = &t
	}

	if len(impactJSON) > 0 {
		var impact queries.WalletImpactView
		if err := json.Unmarshal(impactJSON, &impact); err != nil {
			return nil, err
		}
		view.WalletImpact = &impact
	}
	if len(adjustmentJSON) > 0 {
		var adj queries.AdjustmentView
		if err := json.Unmarshal(adjustmentJSON, &adj); err != nil {
			return nil, err
		}
		view.WalletAdjustment = &adj
	}

	view.Comments = []queries.CommentView{}
	if len(commentsJSON) > 0 {
		if err := json.Unmarshal(commentsJSON, &view.Comments); err != nil {
			return nil, err
		}
	}

	return &view, nil
}
