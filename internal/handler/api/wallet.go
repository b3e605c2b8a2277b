package api

import (
	"net/http"

	resdto "approval-service/internal/handler/dto/response"
	"approval-service/internal/handler/httperr"
	"approval-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	approvalQueries queries.ApprovalQueries
}

func NewWalletHandler(approvalQueries queries.ApprovalQueries) *WalletHandler {
	return &WalletHandler{
		approvalQueries: approvalQueries,
	}
}

// @Summary Get wallet summary
// @Description Get open escrow holds and the most recent settled adjustments
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.WalletSummaryResponse
// @Failure 401 {object} map[string]string
// @Router /wallet/summary [get]
func (h *WalletHandler) GetSummary(c *gin.Context) {
	summary, err := h.approvalQueries.GetWalletSummary(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromWalletSummaryView(summary))
}
