package memstore

import (
	"context"
	"sort"
	"sync"

	"approval-service/internal/domain/wallet"
	"approval-service/internal/infra"
	"approval-service/internal/usecase/queries"

	"github.com/google/uuid"
)

// WalletStore keeps the active hold set and the append-only adjustment
// history. Take removes the hold under the lock, which is what makes
// settlement and release at-most-once.
type WalletStore struct {
	mu          sync.RWMutex
	holds       map[uuid.UUID]*wallet.Hold
	adjustments []*wallet.Adjustment
}

func NewWalletStore() *WalletStore {
	return &WalletStore{
		holds: make(map[uuid.UUID]*wallet.Hold),
	}
}

func (s *WalletStore) Insert(_ context.Context, hold *wallet.Hold) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.holds[hold.RequestID()]; exists {
		return infra.WrapRepoErr("wallet hold already active", nil, infra.KindDuplicateKey)
	}
	s.holds[hold.RequestID()] = hold
	return nil
}

func (s *WalletStore) Take(_ context.Context, requestID uuid.UUID) (*wallet.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hold, ok := s.holds[requestID]
	if !ok {
		return nil, nil
	}
	delete(s.holds, requestID)
	return hold, nil
}

func (s *WalletStore) AppendAdjustment(_ context.Context, adj *wallet.Adjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *adj
	s.adjustments = append(s.adjustments, &copied)
	return nil
}

// WalletReadStore serves the observability views over the wallet state.
type WalletReadStore struct {
	store *WalletStore
}

func NewWalletReadStore(store *WalletStore) *WalletReadStore {
	return &WalletReadStore{store: store}
}

func (r *WalletReadStore) ActiveHolds(_ context.Context) ([]*queries.HoldView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	views := make([]*queries.HoldView, 0, len(r.store.holds))
	for _, h := range r.store.holds {
		views = append(views, &queries.HoldView{
			RequestID:      h.RequestID(),
			HoldAmount:     h.HoldAmount(),
			TotalImpact:    h.TotalImpact(),
			AdjustmentType: h.AdjustmentType().String(),
			CreatedAt:      h.CreatedAt(),
			Status:         h.Status().String(),
		})
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.Before(views[j].CreatedAt)
	})
	return views, nil
}

func (r *WalletReadStore) RecentAdjustments(_ context.Context, limit int) ([]*queries.AdjustmentView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := len(r.store.adjustments)
	if limit > 0 && n > limit {
		n = limit
	}

	// Most recent first.
	views := make([]*queries.AdjustmentView, 0, n)
	for i := len(r.store.adjustments) - 1; i >= 0 && len(views) < n; i-- {
		a := r.store.adjustments[i]
		views = append(views, &queries.AdjustmentView{
			RequestID:        a.RequestID,
			TransactionID:    a.TransactionID,
			HoldAmount:       a.HoldAmount,
			AdjustmentAmount: a.AdjustmentAmount,
			AdjustmentType:   a.AdjustmentType.String(),
			ProcessedAt:      a.ProcessedAt,
			Status:           string(a.Status),
		})
	}
	return views, nil
}
