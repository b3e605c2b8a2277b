package memstore

import (
	"context"
	"sync"

	"approval-service/internal/domain/approval"
	"approval-service/internal/infra"

	"github.com/google/uuid"
)

// ApprovalStore is the in-memory reference implementation behind both the
// write repository and the read store. Mutations of one request are
// serialized by a per-id lock; reads convert to views under the store lock so
// they always observe a consistent snapshot, never a decision mid-flight.
type ApprovalStore struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*approval.Request

	lockMu sync.Mutex
	locks  map[uuid.UUID]*sync.Mutex
}

func NewApprovalStore() *ApprovalStore {
	return &ApprovalStore{
		requests: make(map[uuid.UUID]*approval.Request),
		locks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *ApprovalStore) Create(_ context.Context, req *approval.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.requests[req.ID()]; exists {
		return infra.WrapRepoErr("approval request already exists", nil, infra.KindDuplicateKey)
	}
	s.requests[req.ID()] = clone(req)
	return nil
}

func (s *ApprovalStore) FindByID(_ context.Context, id uuid.UUID) (*approval.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, infra.WrapRepoErr("approval request not found", nil, infra.KindNotFound)
	}
	return clone(req), nil
}

// Mutate applies fn to a copy of the aggregate and swaps it in only on
// success. The per-id lock makes decision attempts on one request strictly
// sequential; the second of two concurrent approvals reads the already
// decided state.
func (s *ApprovalStore) Mutate(ctx context.Context, id uuid.UUID, fn func(context.Context, *approval.Request) error) (*approval.Request, error) {
	kl := s.keyLock(id)
	kl.Lock()
	defer kl.Unlock()

	s.mu.RLock()
	cur, ok := s.requests[id]
	s.mu.RUnlock()
	if !ok {
		return nil, infra.WrapRepoErr("approval request not found", nil, infra.KindNotFound)
	}

	next := clone(cur)
	if err := fn(ctx, next); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.requests[id] = next
	s.mu.Unlock()

	return clone(next), nil
}

func (s *ApprovalStore) keyLock(id uuid.UUID) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func clone(req *approval.Request) *approval.Request {
	return approval.ReconstructRequest(req.ToRecord())
}

// snapshotRecords flattens the current request set under the read lock, so
// read-side conversion can happen without racing concurrent decisions.
func (s *ApprovalStore) snapshotRecords() []approval.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]approval.Record, 0, len(s.requests))
	for _, req := range s.requests {
		records = append(records, req.ToRecord())
	}
	return records
}
