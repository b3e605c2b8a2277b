//go:build unit

package approval_test

import (
	"testing"
	"time"

	"approval-service/internal/domain/approval"
	"approval-service/internal/domain/wallet"
	"approval-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ApprovalBuilder)
	errIs  error
}

func TestRequest(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewApprovalBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, approval.TypePriceChange, actual.Type())
		assert.Equal(t, approval.StatusPending, actual.Status())
		assert.True(t, actual.IsPending())
		assert.False(t, actual.SubmittedAt().IsZero())
		assert.Nil(t, actual.DecidedBy())
		assert.Nil(t, actual.DecidedAt())
		assert.Empty(t, actual.Comments())
	})

	t.Run("seed validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "unknown change type",
				mutate: func(b *builder.ApprovalBuilder) { b.Type = approval.ChangeType("price_tweak") },
				errIs:  approval.ErrInvalidChangeType,
			},
			{
				name:   "empty title",
				mutate: func(b *builder.ApprovalBuilder) { b.WithTitle("") },
				errIs:  approval.ErrMissingTitle,
			},
			{
				name:   "whitespace only title",
				mutate: func(b *builder.ApprovalBuilder) { b.WithTitle("   ") },
				errIs:  approval.ErrMissingTitle,
			},
			{
				name:   "empty description",
				mutate: func(b *builder.ApprovalBuilder) { b.WithDescription("") },
				errIs:  approval.ErrMissingDescription,
			},
			{
				name:   "missing entity",
				mutate: func(b *builder.ApprovalBuilder) { b.Entity = nil },
				errIs:  approval.ErrMissingEntity,
			},
			{
				name:   "entity kind mismatch",
				mutate: func(b *builder.ApprovalBuilder) { b.Type = approval.TypeProductRemoval },
				errIs:  approval.ErrEntityKindMismatch,
			},
			{
				name:   "valid bulk discount",
				mutate: func(b *builder.ApprovalBuilder) { b.WithBulkDiscount(10, 50, 20) },
			},
			{
				name:   "valid write-off",
				mutate: func(b *builder.ApprovalBuilder) { b.WithInventoryWriteOff(5, 100, 500) },
			},
		})
	})

	t.Run("title and description trimming", func(t *testing.T) {
		actual, err := builder.NewApprovalBuilder().
			WithTitle("  Spring clearance  ").
			WithDescription("  reduce stale stock  ").
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "Spring clearance", actual.Title())
		assert.Equal(t, "reduce stale stock", actual.Description())
	})

	t.Run("sensitivity routing is frozen at creation", func(t *testing.T) {
		actual, err := builder.NewApprovalBuilder().AsLargePriceIncrease().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, approval.SensitivityHigh, actual.Sensitivity().Level)
		assert.Equal(t, approval.PriorityUrgent, actual.Sensitivity().Priority)
		assert.Equal(t,
			[]approval.ApproverRole{approval.RoleManager, approval.RoleAdmin, approval.RoleSeniorManager},
			actual.RequiredApprovers())
		require.NotNil(t, actual.WalletImpact())
		assert.True(t, actual.RequiresHold())
	})

	t.Run("approve transitions exactly once", func(t *testing.T) {
		req, err := builder.NewApprovalBuilder().BuildDomain()
		require.NoError(t, err)

		actor := uuid.New()
		now := time.Now()
		require.NoError(t, req.Approve(actor, "  looks fine  ", now, nil))

		assert.Equal(t, approval.StatusApproved, req.Status())
		assert.Equal(t, actor, *req.DecidedBy())
		assert.Equal(t, now, *req.DecidedAt())
		assert.Equal(t, "looks fine", req.DecisionComments())

		assert.ErrorIs(t, req.Approve(actor, "", now, nil), approval.ErrNotPending)
		assert.ErrorIs(t, req.Reject(actor, "too late", now), approval.ErrNotPending)
	})

	t.Run("approve without comment is allowed", func(t *testing.T) {
		req, err := builder.NewApprovalBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, req.Approve(uuid.New(), "", time.Now(), nil))
		assert.Empty(t, req.DecisionComments())
	})

	t.Run("approve records the wallet adjustment", func(t *testing.T) {
		req, err := builder.NewApprovalBuilder().AsLargePriceIncrease().BuildDomain()
		require.NoError(t, err)

		adj := &wallet.Adjustment{
			RequestID:        req.ID(),
			TransactionID:    uuid.New(),
			HoldAmount:       200,
			AdjustmentAmount: 2000,
			AdjustmentType:   wallet.AdjustmentIncrease,
		}
		require.NoError(t, req.Approve(uuid.New(), "", time.Now(), adj))

		assert.Equal(t, adj, req.WalletAdjustment())
	})

	t.Run("reject requires a comment", func(t *testing.T) {
		req, err := builder.NewApprovalBuilder().BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, req.Reject(uuid.New(), "   ", time.Now()), approval.ErrEmptyDecisionComment)
		assert.True(t, req.IsPending())

		require.NoError(t, req.Reject(uuid.New(), "margin too thin", time.Now()))
		assert.Equal(t, approval.StatusRejected, req.Status())
		assert.ErrorIs(t, req.Reject(uuid.New(), "again", time.Now()), approval.ErrNotPending)
	})

	t.Run("bulk tag only applies to decided requests", func(t *testing.T) {
		req, err := builder.NewApprovalBuilder().BuildDomain()
		require.NoError(t, err)

		batchID := uuid.New()
		assert.ErrorIs(t, req.TagBulkAction(batchID), approval.ErrNotDecided)
		assert.Nil(t, req.BulkActionID())

		require.NoError(t, req.Approve(uuid.New(), "", time.Now(), nil))
		require.NoError(t, req.TagBulkAction(batchID))
		assert.Equal(t, batchID, *req.BulkActionID())
	})

	t.Run("comments append in order and trim", func(t *testing.T) {
		req, err := builder.NewApprovalBuilder().BuildDomain()
		require.NoError(t, err)

		author := uuid.New()
		first, err := req.AddComment(author, "  please expedite  ", time.Now())
		require.NoError(t, err)
		assert.Equal(t, "please expedite", first.Text)
		assert.Equal(t, author, first.Author)

		_, err = req.AddComment(author, "   ", time.Now())
		assert.ErrorIs(t, err, approval.ErrEmptyComment)

		second, err := req.AddComment(uuid.New(), "done", time.Now())
		require.NoError(t, err)

		comments := req.Comments()
		require.Len(t, comments, 2)
		assert.Equal(t, first.ID, comments[0].ID)
		assert.Equal(t, second.ID, comments[1].ID)
	})

	t.Run("decided requests still accept comments", func(t *testing.T) {
		req, err := builder.NewApprovalBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, req.Approve(uuid.New(), "", time.Now(), nil))

		_, err = req.AddComment(uuid.New(), "post-decision note", time.Now())
		require.NoError(t, err)
		assert.Len(t, req.Comments(), 1)
	})

	t.Run("record round trip", func(t *testing.T) {
		req, err := builder.NewApprovalBuilder().AsLargePriceIncrease().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, req.Approve(uuid.New(), "go", time.Now(), nil))

		rebuilt := approval.ReconstructRequest(req.ToRecord())

		assert.Equal(t, req.ID(), rebuilt.ID())
		assert.Equal(t, req.Status(), rebuilt.Status())
		assert.Equal(t, req.Entity(), rebuilt.Entity())
		assert.Equal(t, req.Impact(), rebuilt.Impact())
		assert.Equal(t, req.WalletImpact(), rebuilt.WalletImpact())
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		req1, err1 := builder.NewApprovalBuilder().BuildDomain()
		req2, err2 := builder.NewApprovalBuilder().BuildDomain()

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, req1.ID(), req2.ID())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewApprovalBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
