//go:build unit

package queries_test

import (
	"testing"
	"time"

	"approval-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	t.Run("today starts at midnight", func(t *testing.T) {
		start, bounded := queries.WindowToday.Start(now)
		assert.True(t, bounded)
		assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("relative windows count back from now", func(t *testing.T) {
		start, bounded := queries.WindowWeek.Start(now)
		assert.True(t, bounded)
		assert.Equal(t, now.AddDate(0, 0, -7), start)

		start, bounded = queries.WindowMonth.Start(now)
		assert.True(t, bounded)
		assert.Equal(t, now.AddDate(0, -1, 0), start)

		start, bounded = queries.WindowYear.Start(now)
		assert.True(t, bounded)
		assert.Equal(t, now.AddDate(-1, 0, 0), start)
	})

	t.Run("all time is unbounded", func(t *testing.T) {
		_, bounded := queries.WindowAll.Start(now)
		assert.False(t, bounded)
	})

	t.Run("validity", func(t *testing.T) {
		assert.True(t, queries.WindowToday.IsValid())
		assert.True(t, queries.WindowAll.IsValid())
		assert.False(t, queries.Window("fortnight").IsValid())
	})
}

func TestAggregate(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	at := func(day, hour int) time.Time {
		return time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
	}
	ptr := func(t time.Time) *time.Time { return &t }

	t.Run("counts rates and trends", func(t *testing.T) {
		actor := uuid.New()
		views := []*queries.RequestView{
			{
				Status:      "pending",
				Priority:    "medium",
				Type:        "price_change",
				SubmittedAt: at(9, 8),
				Impact:      queries.ImpactView{RevenueImpact: 50},
			},
			{
				Status:      "approved",
				Priority:    "urgent",
				Type:        "price_change",
				SubmittedAt: at(8, 10),
				DecidedAt:   ptr(at(8, 16)),
				DecidedBy:   &actor,
				Impact:      queries.ImpactView{RevenueImpact: -2000},
			},
			{
				Status:      "rejected",
				Priority:    "high",
				Type:        "product_removal",
				SubmittedAt: at(9, 10),
				DecidedAt:   ptr(at(9, 12)),
				DecidedBy:   &actor,
				Impact:      queries.ImpactView{RevenueImpact: 100},
			},
		}

		stats := queries.Aggregate(views, queries.WindowWeek, now)

		assert.Equal(t, "week", stats.Window)
		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 1, stats.Pending)
		assert.Equal(t, 1, stats.Approved)
		assert.Equal(t, 1, stats.Rejected)
		assert.Equal(t, 1, stats.Urgent)
		assert.Equal(t, 0.5, stats.ApprovalRate)
		assert.Equal(t, 4.0, stats.AvgProcessingHours)
		assert.Equal(t, 2150.0, stats.FinancialImpact)
		assert.Equal(t, map[string]int{"price_change": 2, "product_removal": 1}, stats.ByType)
		assert.Equal(t, map[string]int{"medium": 1, "urgent": 1, "high": 1}, stats.ByPriority)

		// 2025-06-03 through 2025-06-10, one bucket per day
		require.Len(t, stats.DailySubmissions, 8)
		byDay := map[string]int{}
		for _, p := range stats.DailySubmissions {
			byDay[p.Bucket] = p.Count
		}
		assert.Equal(t, 1, byDay["2025-06-08"])
		assert.Equal(t, 2, byDay["2025-06-09"])
		assert.Equal(t, 0, byDay["2025-06-10"])

		require.Len(t, stats.WeeklyCompletions, 2)
		assert.Equal(t, queries.TrendPoint{Bucket: "2025-06-03", Count: 2}, stats.WeeklyCompletions[0])
		assert.Equal(t, queries.TrendPoint{Bucket: "2025-06-10", Count: 0}, stats.WeeklyCompletions[1])
	})

	t.Run("empty set never divides by zero", func(t *testing.T) {
		stats := queries.Aggregate(nil, queries.WindowAll, now)

		assert.Zero(t, stats.Total)
		assert.Zero(t, stats.ApprovalRate)
		assert.Zero(t, stats.AvgProcessingHours)
		assert.Empty(t, stats.DailySubmissions)
		assert.Empty(t, stats.WeeklyCompletions)
	})

	t.Run("all-time trend starts at the earliest submission", func(t *testing.T) {
		views := []*queries.RequestView{
			{Status: "pending", Priority: "medium", Type: "price_change", SubmittedAt: at(8, 9)},
			{Status: "pending", Priority: "medium", Type: "price_change", SubmittedAt: at(10, 9)},
		}

		stats := queries.Aggregate(views, queries.WindowAll, now)

		require.NotEmpty(t, stats.DailySubmissions)
		assert.Equal(t, "2025-06-08", stats.DailySubmissions[0].Bucket)
		assert.Len(t, stats.DailySubmissions, 3)
	})

	t.Run("rejections alone still yield a zero approval rate", func(t *testing.T) {
		actor := uuid.New()
		views := []*queries.RequestView{
			{
				Status:      "rejected",
				Priority:    "medium",
				Type:        "price_change",
				SubmittedAt: at(9, 9),
				DecidedAt:   ptr(at(9, 10)),
				DecidedBy:   &actor,
			},
		}

		stats := queries.Aggregate(views, queries.WindowWeek, now)
		assert.Zero(t, stats.ApprovalRate)
		assert.Equal(t, 1.0, stats.AvgProcessingHours)
	})
}
