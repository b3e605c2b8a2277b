package repository

import (
	"context"
	"errors"
	"time"

	"approval-service/internal/domain/wallet"
	"approval-service/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WalletRepository persists escrow holds and the append-only adjustment
// ledger. Take deletes the hold row atomically so that concurrent settle and
// release attempts cannot both observe an open hold. When the context
// carries a mutation transaction the writes join it.
type WalletRepository struct {
	pool *pgxpool.Pool
}

func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

func (r *WalletRepository) Insert(ctx context.Context, hold *wallet.Hold) error {
	query := `
		INSERT INTO wallet_holds
		    (request_id, hold_amount, total_impact, adjustment_type, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := querierFrom(ctx, r.pool).Exec(ctx, query,
		hold.RequestID(), hold.HoldAmount(), hold.TotalImpact(),
		string(hold.AdjustmentType()), hold.CreatedAt(), string(hold.Status()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("wallet hold already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert wallet hold", err)
	}
	return nil
}

func (r *WalletRepository) Take(ctx context.Context, requestID uuid.UUID) (*wallet.Hold, error) {
	query := `
		DELETE FROM wallet_holds
		WHERE request_id = $1
		RETURNING request_id, hold_amount, total_impact, adjustment_type, created_at, status
	`
	row := querierFrom(ctx, r.pool).QueryRow(ctx, query, requestID)

	var (
		id             uuid.UUID
		holdAmount     float64
		totalImpact    float64
		adjustmentType string
		createdAt      time.Time
		status         string
	)
	err := row.Scan(&id, &holdAmount, &totalImpact, &adjustmentType, &createdAt, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to take wallet hold", err)
	}

	return wallet.ReconstructHold(
		id, holdAmount, totalImpact,
		wallet.AdjustmentType(adjustmentType), createdAt, wallet.HoldStatus(status),
	), nil
}

func (r *WalletRepository) AppendAdjustment(ctx context.Context, adj *wallet.Adjustment) error {
	query := `
		INSERT INTO wallet_adjustments
		    (transaction_id, request_id, hold_amount, adjustment_amount,
		     adjustment_type, processed_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := querierFrom(ctx, r.pool).Exec(ctx, query,
		adj.TransactionID, adj.RequestID, adj.HoldAmount, adj.AdjustmentAmount,
		string(adj.AdjustmentType), adj.ProcessedAt, string(adj.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("wallet adjustment already recorded", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to append wallet adjustment", err)
	}
	return nil
}
