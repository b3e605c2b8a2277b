//go:build unit

package memstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"approval-service/internal/domain/approval"
	"approval-service/internal/infra"
	"approval-service/internal/infra/memstore"
	"approval-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalStore(t *testing.T) {
	ctx := context.Background()

	newRequest := func(t *testing.T) *approval.Request {
		t.Helper()
		req, err := builder.NewApprovalBuilder().BuildDomain()
		require.NoError(t, err)
		return req
	}

	t.Run("create and find round trip", func(t *testing.T) {
		store := memstore.NewApprovalStore()
		req := newRequest(t)

		require.NoError(t, store.Create(ctx, req))

		found, err := store.FindByID(ctx, req.ID())
		require.NoError(t, err)
		assert.Equal(t, req.ID(), found.ID())
		assert.Equal(t, req.Title(), found.Title())
	})

	t.Run("duplicate create", func(t *testing.T) {
		store := memstore.NewApprovalStore()
		req := newRequest(t)

		require.NoError(t, store.Create(ctx, req))
		err := store.Create(ctx, req)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("unknown id", func(t *testing.T) {
		store := memstore.NewApprovalStore()

		_, err := store.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))

		_, err = store.Mutate(ctx, uuid.New(), func(context.Context, *approval.Request) error { return nil })
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("mutation callback receives the caller's context", func(t *testing.T) {
		store := memstore.NewApprovalStore()
		req := newRequest(t)
		require.NoError(t, store.Create(ctx, req))

		type scopeKey struct{}
		scoped := context.WithValue(ctx, scopeKey{}, "mutation")

		_, err := store.Mutate(scoped, req.ID(), func(fnCtx context.Context, _ *approval.Request) error {
			assert.Equal(t, "mutation", fnCtx.Value(scopeKey{}))
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("failed mutation leaves the stored state untouched", func(t *testing.T) {
		store := memstore.NewApprovalStore()
		req := newRequest(t)
		require.NoError(t, store.Create(ctx, req))

		_, err := store.Mutate(ctx, req.ID(), func(_ context.Context, r *approval.Request) error {
			if approveErr := r.Approve(uuid.New(), "", time.Now(), nil); approveErr != nil {
				return approveErr
			}
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)

		found, findErr := store.FindByID(ctx, req.ID())
		require.NoError(t, findErr)
		assert.True(t, found.IsPending())
	})

	t.Run("returned aggregate is detached from the store", func(t *testing.T) {
		store := memstore.NewApprovalStore()
		req := newRequest(t)
		require.NoError(t, store.Create(ctx, req))

		found, err := store.FindByID(ctx, req.ID())
		require.NoError(t, err)
		require.NoError(t, found.Approve(uuid.New(), "", time.Now(), nil))

		stored, err := store.FindByID(ctx, req.ID())
		require.NoError(t, err)
		assert.True(t, stored.IsPending())
	})

	t.Run("only one of two concurrent decisions succeeds", func(t *testing.T) {
		store := memstore.NewApprovalStore()
		req := newRequest(t)
		require.NoError(t, store.Create(ctx, req))

		const attempts = 16
		var wg sync.WaitGroup
		errors := make([]error, attempts)

		for i := range attempts {
			wg.Add(1)
			go func(slot int) {
				defer wg.Done()
				_, err := store.Mutate(ctx, req.ID(), func(_ context.Context, r *approval.Request) error {
					if !r.IsPending() {
						return approval.ErrNotPending
					}
					return r.Approve(uuid.New(), "", time.Now(), nil)
				})
				errors[slot] = err
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errors {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, approval.ErrNotPending)
			}
		}
		assert.Equal(t, 1, succeeded)

		final, err := store.FindByID(ctx, req.ID())
		require.NoError(t, err)
		assert.Equal(t, approval.StatusApproved, final.Status())
	})
}
