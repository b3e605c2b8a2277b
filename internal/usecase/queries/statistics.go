package queries

import (
	"math"
	"time"
)

// Window selects how far back statistics look from "now".
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
	WindowAll   Window = "all"
)

func (w Window) IsValid() bool {
	switch w {
	case WindowToday, WindowWeek, WindowMonth, WindowYear, WindowAll:
		return true
	default:
		return false
	}
}

// Start returns the inclusive lower bound of the window. bounded is false for
// the all-time window.
func (w Window) Start(now time.Time) (start time.Time, bounded bool) {
	switch w {
	case WindowToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case WindowWeek:
		return now.AddDate(0, 0, -7), true
	case WindowMonth:
		return now.AddDate(0, -1, 0), true
	case WindowYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

type TrendPoint struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

type StatisticsView struct {
	Window             string         `json:"window"`
	Total              int            `json:"total"`
	Pending            int            `json:"pending"`
	Approved           int            `json:"approved"`
	Rejected           int            `json:"rejected"`
	Urgent             int            `json:"urgent"`
	ApprovalRate       float64        `json:"approval_rate"`
	AvgProcessingHours float64        `json:"avg_processing_hours"`
	FinancialImpact    float64        `json:"financial_impact"`
	ByType             map[string]int `json:"by_type"`
	ByPriority         map[string]int `json:"by_priority"`
	DailySubmissions   []TrendPoint   `json:"daily_submissions"`
	WeeklyCompletions  []TrendPoint   `json:"weekly_completions"`
}

// Aggregate computes counts, rates and trends over the already
// window-filtered request set. It never divides by zero: an empty decided set
// yields a 0 approval rate and 0 average processing time.
func Aggregate(views []*RequestView, window Window, now time.Time) *StatisticsView {
	stats := &StatisticsView{
		Window:     string(window),
		ByType:     map[string]int{},
		ByPriority: map[string]int{},
	}

	var processingHours float64
	var decidedCount int

	for _, v := range views {
		stats.Total++
		stats.ByType[v.Type]++
		stats.ByPriority[v.Priority]++

		switch v.Status {
		case "pending":
			stats.Pending++
		case "approved":
			stats.Approved++
		case "rejected":
			stats.Rejected++
		}
		if v.Priority == "urgent" {
			stats.Urgent++
		}

		stats.FinancialImpact += math.Abs(v.Impact.RevenueImpact)

		if v.DecidedAt != nil {
			processingHours += v.DecidedAt.Sub(v.SubmittedAt).Hours()
			decidedCount++
		}
	}

	if decided := stats.Approved + stats.Rejected; decided > 0 {
		stats.ApprovalRate = float64(stats.Approved) / float64(decided)
	}
	if decidedCount > 0 {
		stats.AvgProcessingHours = processingHours / float64(decidedCount)
	}

	start, bounded := window.Start(now)
	if !bounded {
		start = earliestSubmission(views)
	}
	if !start.IsZero() {
		stats.DailySubmissions = dailySubmissions(views, start, now)
		stats.WeeklyCompletions = weeklyCompletions(views, start, now)
	} else {
		stats.DailySubmissions = []TrendPoint{}
		stats.WeeklyCompletions = []TrendPoint{}
	}

	return stats
}

func earliestSubmission(views []*RequestView) time.Time {
	var earliest time.Time
	for _, v := range views {
		if earliest.IsZero() || v.SubmittedAt.Before(earliest) {
			earliest = v.SubmittedAt
		}
	}
	return earliest
}

// dailySubmissions walks the window day by day counting submissions per
// calendar day. A window spanning zero full days yields an empty series.
func dailySubmissions(views []*RequestView, start, now time.Time) []TrendPoint {
	points := []TrendPoint{}
	day := truncateToDay(start)
	for !day.After(now) {
		next := day.AddDate(0, 0, 1)
		count := 0
		for _, v := range views {
			if !v.SubmittedAt.Before(day) && v.SubmittedAt.Before(next) {
				count++
			}
		}
		points = append(points, TrendPoint{Bucket: day.Format("2006-01-02"), Count: count})
		day = next
	}
	return points
}

// weeklyCompletions buckets decided requests into 7-day spans from the window
// start.
func weeklyCompletions(views []*RequestView, start, now time.Time) []TrendPoint {
	points := []TrendPoint{}
	week := truncateToDay(start)
	for !week.After(now) {
		next := week.AddDate(0, 0, 7)
		count := 0
		for _, v := range views {
			if v.DecidedAt == nil {
				continue
			}
			if !v.DecidedAt.Before(week) && v.DecidedAt.Before(next) {
				count++
			}
		}
		points = append(points, TrendPoint{Bucket: week.Format("2006-01-02"), Count: count})
		week = next
	}
	return points
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
