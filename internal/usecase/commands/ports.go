package commands

import (
	"context"

	"approval-service/internal/domain/approval"
	"approval-service/internal/domain/wallet"

	"github.com/google/uuid"
)

// ApprovalRequestRepository is the write-side port for the request aggregate.
type ApprovalRequestRepository interface {
	Create(ctx context.Context, req *approval.Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*approval.Request, error)
	// Mutate runs fn against the current aggregate under per-request
	// serialization: two concurrent mutations of the same id never
	// interleave, so the second decision attempt always observes the first.
	// The updated aggregate is persisted only when fn returns nil. The ctx
	// handed to fn carries the store's mutation scope: wallet operations
	// issued with it commit or roll back together with the request update.
	Mutate(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, r *approval.Request) error) (*approval.Request, error)
}

// WalletHoldRepository owns the active hold set and the append-only
// adjustment history.
type WalletHoldRepository interface {
	// Insert fails with a duplicate-key kind when a hold is already active
	// for the request; holds are never silently overwritten.
	Insert(ctx context.Context, hold *wallet.Hold) error
	// Take atomically removes and returns the active hold, or (nil, nil)
	// when none exists. Removal-on-take is what makes settlement and release
	// at-most-once.
	Take(ctx context.Context, requestID uuid.UUID) (*wallet.Hold, error)
	AppendAdjustment(ctx context.Context, adj *wallet.Adjustment) error
}

// ChangeExecutor applies an approved change at the owning service
// (product/category/inventory). Invoked fire-and-forget after the decision is
// durable; a failure here is an execution failure, never an approval failure.
type ChangeExecutor interface {
	Apply(ctx context.Context, rec approval.Record, adj *wallet.Adjustment) error
}
