package commands

import (
	"context"

	"approval-service/internal/domain/approval"
	"approval-service/internal/domain/wallet"
	"approval-service/internal/infra"
	"approval-service/internal/pkg/clock"
	"approval-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrHoldConflict = errs.New("wallet hold already active for request")
)

// WalletLedger owns the hold lifecycle: sizing, escrow, settlement, release.
// It is the only component that touches the hold repository.
type WalletLedger interface {
	ComputeImpact(entity approval.AffectedEntity) wallet.Impact
	CreateHold(ctx context.Context, requestID uuid.UUID, impact wallet.Impact) error
	// Settle converts the open hold into an adjustment. A missing hold is a
	// legitimate no-op: (nil, nil), never an error.
	Settle(ctx context.Context, requestID uuid.UUID) (*wallet.Adjustment, error)
	// Release discards the open hold without an adjustment; also a no-op
	// when no hold exists.
	Release(ctx context.Context, requestID uuid.UUID) error
}

type walletLedgerImpl struct {
	policy wallet.Policy
	repo   WalletHoldRepository
	clock  clock.Clock
}

func NewWalletLedger(policy wallet.Policy, repo WalletHoldRepository, clk clock.Clock) WalletLedger {
	return &walletLedgerImpl{
		policy: policy,
		repo:   repo,
		clock:  clk,
	}
}

func (l *walletLedgerImpl) ComputeImpact(entity approval.AffectedEntity) wallet.Impact {
	switch e := entity.(type) {
	case approval.PriceChange:
		return l.policy.PriceChangeImpact(e.CurrentPrice, e.ProposedPrice, e.CurrentStock)
	default:
		// Only price changes move the wallet today.
		return wallet.Impact{}
	}
}

func (l *walletLedgerImpl) CreateHold(ctx context.Context, requestID uuid.UUID, impact wallet.Impact) error {
	hold, err := wallet.NewHold(requestID, impact, l.clock.Now())
	if err != nil {
		return err
	}
	if err := l.repo.Insert(ctx, hold); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return errs.Mark(err, ErrHoldConflict)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (l *walletLedgerImpl) Settle(ctx context.Context, requestID uuid.UUID) (*wallet.Adjustment, error) {
	hold, err := l.repo.Take(ctx, requestID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if hold == nil {
		return nil, nil
	}

	adj, err := hold.Settle(uuid.New(), l.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := l.repo.AppendAdjustment(ctx, adj); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return adj, nil
}

func (l *walletLedgerImpl) Release(ctx context.Context, requestID uuid.UUID) error {
	hold, err := l.repo.Take(ctx, requestID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if hold == nil {
		return nil
	}
	return hold.Release()
}
