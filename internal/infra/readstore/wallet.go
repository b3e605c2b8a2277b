package readstore

import (
	"context"

	"approval-service/internal/infra"
	"approval-service/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type WalletReadStore struct {
	pool *pgxpool.Pool
}

func NewWalletReadStore(pool *pgxpool.Pool) *WalletReadStore {
	return &WalletReadStore{pool: pool}
}

func (s *WalletReadStore) ActiveHolds(ctx context.Context) ([]*queries.HoldView, error) {
	query := `
		SELECT request_id, hold_amount, total_impact, adjustment_type, created_at, status
		FROM wallet_holds
		WHERE status = 'holding'
		ORDER BY created_at ASC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list wallet holds", err)
	}
	defer rows.Close()

	holds := []*queries.HoldView{}
	for rows.Next() {
		var h queries.HoldView
		if err := rows.Scan(
			&h.RequestID, &h.HoldAmount, &h.TotalImpact,
			&h.AdjustmentType, &h.CreatedAt, &h.Status,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan wallet hold", err)
		}
		h.CreatedAt = h.CreatedAt.UTC()
		holds = append(holds, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate wallet holds", err)
	}
	return holds, nil
}

func (s *WalletReadStore) RecentAdjustments(ctx context.Context, limit int) ([]*queries.AdjustmentView, error) {
	query := `
		SELECT transaction_id, request_id, hold_amount, adjustment_amount,
		       adjustment_type, processed_at, status
		FROM wallet_adjustments
		ORDER BY processed_at DESC
		LIMIT $1
	`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list wallet adjustments", err)
	}
	defer rows.Close()

	adjustments := []*queries.AdjustmentView{}
	for rows.Next() {
		var a queries.AdjustmentView
		if err := rows.Scan(
			&a.TransactionID, &a.RequestID, &a.HoldAmount, &a.AdjustmentAmount,
			&a.AdjustmentType, &a.ProcessedAt, &a.Status,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan wallet adjustment", err)
		}
		a.ProcessedAt = a.ProcessedAt.UTC()
		adjustments = append(adjustments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate wallet adjustments", err)
	}
	return adjustments, nil
}
