//go:build unit

package memstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"approval-service/internal/domain/wallet"
	"approval-service/internal/infra"
	"approval-service/internal/infra/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openHold(t *testing.T, requestID uuid.UUID) *wallet.Hold {
	t.Helper()
	hold, err := wallet.NewHold(requestID, wallet.Impact{
		RequiresHold:   true,
		HoldAmount:     200,
		TotalImpact:    2000,
		AdjustmentType: wallet.AdjustmentIncrease,
	}, time.Now())
	require.NoError(t, err)
	return hold
}

func TestWalletStore(t *testing.T) {
	ctx := context.Background()

	t.Run("insert then take returns the hold once", func(t *testing.T) {
		store := memstore.NewWalletStore()
		requestID := uuid.New()
		require.NoError(t, store.Insert(ctx, openHold(t, requestID)))

		taken, err := store.Take(ctx, requestID)
		require.NoError(t, err)
		require.NotNil(t, taken)
		assert.Equal(t, requestID, taken.RequestID())

		again, err := store.Take(ctx, requestID)
		require.NoError(t, err)
		assert.Nil(t, again)
	})

	t.Run("take without a hold is a no-op", func(t *testing.T) {
		store := memstore.NewWalletStore()

		taken, err := store.Take(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, taken)
	})

	t.Run("double insert for one request conflicts", func(t *testing.T) {
		store := memstore.NewWalletStore()
		requestID := uuid.New()

		require.NoError(t, store.Insert(ctx, openHold(t, requestID)))
		err := store.Insert(ctx, openHold(t, requestID))
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("concurrent takes yield the hold to exactly one caller", func(t *testing.T) {
		store := memstore.NewWalletStore()
		requestID := uuid.New()
		require.NoError(t, store.Insert(ctx, openHold(t, requestID)))

		const callers = 16
		var wg sync.WaitGroup
		got := make([]*wallet.Hold, callers)
		errs := make([]error, callers)

		for i := range callers {
			wg.Add(1)
			go func(slot int) {
				defer wg.Done()
				got[slot], errs[slot] = store.Take(ctx, requestID)
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}

		winners := 0
		for _, hold := range got {
			if hold != nil {
				winners++
			}
		}
		assert.Equal(t, 1, winners)
	})
}

func TestWalletReadStore(t *testing.T) {
	ctx := context.Background()

	t.Run("active holds sorted oldest first", func(t *testing.T) {
		store := memstore.NewWalletStore()
		reads := memstore.NewWalletReadStore(store)

		older, err := wallet.NewHold(uuid.New(), wallet.Impact{
			RequiresHold: true, HoldAmount: 100, TotalImpact: 1000, AdjustmentType: wallet.AdjustmentIncrease,
		}, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		newer := openHold(t, uuid.New())

		require.NoError(t, store.Insert(ctx, newer))
		require.NoError(t, store.Insert(ctx, older))

		holds, err := reads.ActiveHolds(ctx)
		require.NoError(t, err)
		require.Len(t, holds, 2)
		assert.Equal(t, older.RequestID(), holds[0].RequestID)
		assert.Equal(t, newer.RequestID(), holds[1].RequestID)
	})

	t.Run("recent adjustments newest first with limit", func(t *testing.T) {
		store := memstore.NewWalletStore()
		reads := memstore.NewWalletReadStore(store)

		var last uuid.UUID
		for i := 0; i < 5; i++ {
			adj := &wallet.Adjustment{
				RequestID:        uuid.New(),
				TransactionID:    uuid.New(),
				AdjustmentAmount: float64(i),
				ProcessedAt:      time.Now(),
				Status:           wallet.AdjustmentStatusCompleted,
			}
			require.NoError(t, store.AppendAdjustment(ctx, adj))
			last = adj.RequestID
		}

		recent, err := reads.RecentAdjustments(ctx, 3)
		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, last, recent[0].RequestID)
	})
}
