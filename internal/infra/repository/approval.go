package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"approval-service/internal/domain/approval"
	"approval-service/internal/domain/wallet"
	"approval-service/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// ApprovalRepository is the pgx-backed write repository. Per-request
// serialization comes from SELECT ... FOR UPDATE row locks instead of the
// in-memory keyed mutex.
type ApprovalRepository struct {
	pool *pgxpool.Pool
}

func NewApprovalRepository(pool *pgxpool.Pool) *ApprovalRepository {
	return &ApprovalRepository{pool: pool}
}

func (r *ApprovalRepository) Create(ctx context.Context, req *approval.Request) error {
	rec := req.ToRecord()

	entityJSON, err := approval.EncodeAffectedEntity(rec.Entity)
	if err != nil {
		return infra.WrapRepoErr("failed to encode affected entity", err)
	}
	walletImpactJSON, err := marshalNullable(rec.WalletImpact)
	if err != nil {
		return infra.WrapRepoErr("failed to encode wallet impact", err)
	}
	commentsJSON, err := json.Marshal(rec.Comments)
	if err != nil {
		return infra.WrapRepoErr("failed to encode comments", err)
	}

	approvers := make([]string, len(rec.RequiredApprovers))
	for i, role := range rec.RequiredApprovers {
		approvers[i] = role.String()
	}

	query := `
		INSERT INTO approval_requests
		    (id, change_type, title, description,
		     submitted_by, submitter_role, submitted_at, entity,
		     revenue_impact, margin_impact, customer_impact,
		     sensitivity, priority, required_approvers,
		     wallet_impact, status, decision_comments, comments)
		VALUES ($1, $2, $3, $4,
		        $5, $6, $7, $8,
		        $9, $10, $11,
		        $12, $13, $14,
		        $15, $16, $17, $18)
	`
	_, err = r.pool.Exec(ctx, query,
		rec.ID, rec.Type.String(), rec.Title, rec.Description,
		rec.SubmittedBy, rec.SubmitterRole, rec.SubmittedAt, entityJSON,
		rec.Impact.RevenueImpact, rec.Impact.MarginImpact, rec.Impact.CustomerImpact.String(),
		rec.Sensitivity.Level.String(), rec.Sensitivity.Priority.String(), approvers,
		walletImpactJSON, rec.Status.String(), rec.DecisionComments, commentsJSON,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("approval request already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert approval request", err)
	}
	return nil
}

func (r *ApprovalRepository) FindByID(ctx context.Context, id uuid.UUID) (*approval.Request, error) {
	row := r.pool.QueryRow(ctx, selectRequestQuery+` WHERE id = $1`, id)
	rec, err := scanRequestRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("approval request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get approval request", err)
	}
	return approval.ReconstructRequest(rec), nil
}

func (r *ApprovalRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(context.Context, *approval.Request) error) (*approval.Request, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	row := tx.QueryRow(ctx, selectRequestQuery+` WHERE id = $1 FOR UPDATE`, id)
	rec, err := scanRequestRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("approval request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock approval request", err)
	}

	req := approval.ReconstructRequest(rec)
	// Hold resolution issued by fn must land in this transaction: a request
	// must never persist as pending after its hold is already gone.
	if err := fn(withTx(ctx, tx), req); err != nil {
		return nil, err
	}

	updated := req.ToRecord()
	adjustmentJSON, err := marshalNullable(updated.WalletAdjustment)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to encode wallet adjustment", err)
	}
	commentsJSON, err := json.Marshal(updated.Comments)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to encode comments", err)
	}

	query := `
		UPDATE approval_requests
		SET status = $2,
		    decided_by = $3,
		    decided_at = $4,
		    decision_comments = $5,
		    wallet_adjustment = $6,
		    bulk_action_id = $7,
		    comments = $8
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, query,
		updated.ID, updated.Status.String(),
		updated.DecidedBy, updated.DecidedAt, updated.DecisionComments,
		adjustmentJSON, updated.BulkActionID, commentsJSON,
	); err != nil {
		return nil, infra.WrapRepoErr("failed to update approval request", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, infra.WrapRepoErr("failed to commit transaction", err)
	}
	return req, nil
}

const selectRequestQuery = `
	SELECT id, change_type, title, description,
	       submitted_by, submitter_role, submitted_at, entity,
	       revenue_impact, margin_impact, customer_impact,
	       sensitivity, priority, required_approvers,
	       wallet_impact, status, decided_by, decided_at,
	       decision_comments, wallet_adjustment, bulk_action_id, comments
	FROM approval_requests
`

func scanRequestRecord(row pgx.Row) (approval.Record, error) {
	var (
		rec            approval.Record
		changeType     string
		customerImpact string
		sensitivity    string
		priority       string
		status         string
		approvers      []string
		entityJSON     []byte
		impactJSON     []byte
		adjustmentJSON []byte
		commentsJSON   []byte
		decidedBy      *uuid.UUID
		decidedAt      *time.Time
	)

	err := row.Scan(
		&rec.ID, &changeType, &rec.Title, &rec.Description,
		&rec.SubmittedBy, &rec.SubmitterRole, &rec.SubmittedAt, &entityJSON,
		&rec.Impact.RevenueImpact, &rec.Impact.MarginImpact, &customerImpact,
		&sensitivity, &priority, &approvers,
		&impactJSON, &status, &decidedBy, &decidedAt,
		&rec.DecisionComments, &adjustmentJSON, &rec.BulkActionID, &commentsJSON,
	)
	if err != nil {
		return approval.Record{}, err
	}

	rec.Type = approval.ChangeType(changeType)
	rec.Impact.CustomerImpact = approval.CustomerImpact(customerImpact)
	rec.Sensitivity = approval.Sensitivity{
		Level:    approval.SensitivityLevel(sensitivity),
		Priority: approval.Priority(priority),
	}
	rec.Status = approval.Status(status)
	rec.DecidedBy = decidedBy
	rec.DecidedAt = decidedAt

	rec.RequiredApprovers = make([]approval.ApproverRole, len(approvers))
	for i, role := range approvers {
		rec.RequiredApprovers[i] = approval.ApproverRole(role)
	}

	entity, err := approval.DecodeAffectedEntity(rec.Type, entityJSON)
	if err != nil {
		return approval.Record{}, err
	}
	rec.Entity = entity

	if len(impactJSON) > 0 {
		var impact wallet.Impact
		if err := json.Unmarshal(impactJSON, &impact); err != nil {
			return approval.Record{}, err
		}
		rec.WalletImpact = &impact
	}
	if len(adjustmentJSON) > 0 {
		var adj wallet.Adjustment
		if err := json.Unmarshal(adjustmentJSON, &adj); err != nil {
			return approval.Record{}, err
		}
		rec.WalletAdjustment = &adj
	}
	if len(commentsJSON) > 0 {
		if err := json.Unmarshal(commentsJSON, &rec.Comments); err != nil {
			return approval.Record{}, err
		}
	}

	return rec, nil
}

func marshalNullable(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	// Typed nil pointers also mean "absent".
	switch p := v.(type) {
	case *wallet.Impact:
		if p == nil {
			return nil, nil
		}
	case *wallet.Adjustment:
		if p == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
