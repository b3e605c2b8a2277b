package response

import (
	"time"

	"approval-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type HoldItem struct {
	RequestID      uuid.UUID `json:"requestId"`
	HoldAmount     float64   `json:"holdAmount"`
	TotalImpact    float64   `json:"totalImpact"`
	AdjustmentType string    `json:"adjustmentType"`
	CreatedAt      time.Time `json:"createdAt"`
	Status         string    `json:"status"`
}

type WalletSummaryResponse struct {
	ActiveHoldCount   int              `json:"activeHoldCount"`
	TotalHeld         float64          `json:"totalHeld"`
	Holds             []HoldItem       `json:"holds"`
	RecentAdjustments []AdjustmentItem `json:"recentAdjustments"`
}

func FromWalletSummaryView(rm *queries.WalletSummaryView) *WalletSummaryResponse {
	resp := &WalletSummaryResponse{
		ActiveHoldCount:   rm.ActiveHoldCount,
		TotalHeld:         rm.TotalHeld,
		Holds:             make([]HoldItem, len(rm.Holds)),
		RecentAdjustments: make([]AdjustmentItem, len(rm.RecentAdjustments)),
	}
	for i, h := range rm.Holds {
		resp.Holds[i] = HoldItem(*h)
	}
	for i, a := range rm.RecentAdjustments {
		resp.RecentAdjustments[i] = AdjustmentItem(*a)
	}
	return resp
}
