package response

import (
	"approval-service/internal/usecase/queries"
)

type TrendPointItem struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

type StatisticsResponse struct {
	Window             string           `json:"window"`
	Total              int              `json:"total"`
	Pending            int              `json:"pending"`
	Approved           int              `json:"approved"`
	Rejected           int              `json:"rejected"`
	Urgent             int              `json:"urgent"`
	ApprovalRate       float64          `json:"approvalRate"`
	AvgProcessingHours float64          `json:"avgProcessingHours"`
	FinancialImpact    float64          `json:"financialImpact"`
	ByType             map[string]int   `json:"byType"`
	ByPriority         map[string]int   `json:"byPriority"`
	DailySubmissions   []TrendPointItem `json:"dailySubmissions"`
	WeeklyCompletions  []TrendPointItem `json:"weeklyCompletions"`
}

func FromStatisticsView(rm *queries.StatisticsView) *StatisticsResponse {
	resp := &StatisticsResponse{
		Window:             rm.Window,
		Total:              rm.Total,
		Pending:            rm.Pending,
		Approved:           rm.Approved,
		Rejected:           rm.Rejected,
		Urgent:             rm.Urgent,
		ApprovalRate:       rm.ApprovalRate,
		AvgProcessingHours: rm.AvgProcessingHours,
		FinancialImpact:    rm.FinancialImpact,
		ByType:             rm.ByType,
		ByPriority:         rm.ByPriority,
		DailySubmissions:   make([]TrendPointItem, len(rm.DailySubmissions)),
		WeeklyCompletions:  make([]TrendPointItem, len(rm.WeeklyCompletions)),
	}
	for i, p := range rm.DailySubmissions {
		resp.DailySubmissions[i] = TrendPointItem(p)
	}
	for i, p := range rm.WeeklyCompletions {
		resp.WeeklyCompletions[i] = TrendPointItem(p)
	}
	return resp
}
