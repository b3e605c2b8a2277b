package api

import (
	"context"
	"net/http"

	reqdto "approval-service/internal/handler/dto/request"
	resdto "approval-service/internal/handler/dto/response"
	"approval-service/internal/handler/httperr"
	"approval-service/internal/handler/middleware"
	"approval-service/internal/pkg/errs"
	"approval-service/internal/usecase/commands"
	"approval-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApprovalHandler struct {
	commands        commands.ApprovalCommands
	bulk            commands.BulkCommands
	approvalQueries queries.ApprovalQueries
}

func NewApprovalHandler(
	approvalCommands commands.ApprovalCommands,
	bulkCommands commands.BulkCommands,
	approvalQueries queries.ApprovalQueries,
) *ApprovalHandler {
	return &ApprovalHandler{
		commands:        approvalCommands,
		bulk:            bulkCommands,
		approvalQueries: approvalQueries,
	}
}

// @Summary Submit approval request
// @Description Submit a change for approval; impact, sensitivity and routing are derived server-side
// @Tags approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitApprovalRequest true "Change submission"
// @Success 201 {object} resdto.ApprovalResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /approvals [post]
func (h *ApprovalHandler) SubmitRequest(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error")
		return
	}
	actorRole, _ := middleware.GetActorRole(c)

	var req reqdto.SubmitApprovalRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}

	seed, err := req.ToSeed(actorID, actorRole)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid change payload")
		return
	}

	view, err := h.commands.Submit(c.Request.Context(), seed)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed")
		case errs.Is(err, commands.ErrHoldConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Wallet hold already exists for this request")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRequestView(view))
}

// @Summary Approve request
// @Description Approve a pending request; settles any wallet hold and triggers change execution
// @Tags approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.DecisionRequest false "Optional approval comments"
// @Success 200 {object} resdto.ApprovalResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /approvals/{id}/approve [post]
func (h *ApprovalHandler) ApproveRequest(c *gin.Context) {
	h.decide(c, h.commands.Approve)
}

// @Summary Reject request
// @Description Reject a pending request; the rejection reason is mandatory and any wallet hold is released
// @Tags approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.DecisionRequest true "Rejection reason"
// @Success 200 {object} resdto.ApprovalResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /approvals/{id}/reject [post]
func (h *ApprovalHandler) RejectRequest(c *gin.Context) {
	h.decide(c, h.commands.Reject)
}

func (h *ApprovalHandler) decide(
	c *gin.Context,
	decide func(ctx context.Context, id, actor uuid.UUID, comments string) (*queries.RequestView, error),
) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request ID format")
		return
	}

	var req reqdto.DecisionRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
			return
		}
	}

	view, err := decide(c.Request.Context(), id, actorID, req.Comments)
	if err != nil {
		h.respondDecisionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

func (h *ApprovalHandler) respondDecisionError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Approval request not found")
	case errs.Is(err, commands.ErrRequestNotPending):
		httperr.AbortWithError(c, http.StatusConflict, err, "Approval request has already been decided")
	case errs.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
	}
}

// @Summary Add comment
// @Description Append a comment to a request at any stage of its life
// @Tags approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.CommentRequest true "Comment"
// @Success 201 {object} resdto.CommentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /approvals/{id}/comments [post]
func (h *ApprovalHandler) AddComment(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request ID format")
		return
	}

	var req reqdto.CommentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}

	comment, err := h.commands.AddComment(c.Request.Context(), id, actorID, req.Text)
	if err != nil {
		h.respondDecisionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCommentView(comment))
}

// @Summary Bulk approve
// @Description Approve a batch of requests; per-item failures are reported, not fatal
// @Tags approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkDecisionRequest true "Request IDs and optional comments"
// @Success 200 {object} resdto.BulkDecisionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /approvals/bulk/approve [post]
func (h *ApprovalHandler) BulkApprove(c *gin.Context) {
	h.bulkDecide(c, h.bulk.BulkApprove)
}

// @Summary Bulk reject
// @Description Reject a batch of requests with a shared mandatory reason
// @Tags approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkDecisionRequest true "Request IDs and rejection reason"
// @Success 200 {object} resdto.BulkDecisionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /approvals/bulk/reject [post]
func (h *ApprovalHandler) BulkReject(c *gin.Context) {
	h.bulkDecide(c, h.bulk.BulkReject)
}

func (h *ApprovalHandler) bulkDecide(
	c *gin.Context,
	decide func(ctx context.Context, ids []uuid.UUID, actor uuid.UUID, comments string) (*commands.BulkResult, error),
) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error")
		return
	}

	var req reqdto.BulkDecisionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}

	result, err := decide(c.Request.Context(), req.RequestIDs, actorID, req.Comments)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrBulkEmptyBatch):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "At least one request ID is required")
		case errs.Is(err, commands.ErrBulkCommentsRequired):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Comments are required for bulk rejection")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBulkResult(result))
}

// @Summary Get request
// @Description Get one approval request with its full decision and wallet state
// @Tags approvals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.ApprovalResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /approvals/{id} [get]
func (h *ApprovalHandler) GetRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request ID format")
		return
	}

	view, err := h.approvalQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrRequestNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Approval request not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary List pending requests
// @Description List pending requests, optionally filtered by change type and priority
// @Tags approvals
// @Produce json
// @Security BearerAuth
// @Param type query string false "Change type filter"
// @Param priority query string false "Priority filter"
// @Success 200 {array} resdto.ApprovalResponse
// @Failure 401 {object} map[string]string
// @Router /approvals/pending [get]
func (h *ApprovalHandler) ListPending(c *gin.Context) {
	views, err := h.approvalQueries.GetPending(
		c.Request.Context(),
		optionalQuery(c, "type"),
		optionalQuery(c, "priority"),
	)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestViews(views))
}

// @Summary List decided requests
// @Description List approved and rejected requests, optionally filtered by change type
// @Tags approvals
// @Produce json
// @Security BearerAuth
// @Param type query string false "Change type filter"
// @Success 200 {array} resdto.ApprovalResponse
// @Failure 401 {object} map[string]string
// @Router /approvals/history [get]
func (h *ApprovalHandler) GetHistory(c *gin.Context) {
	views, err := h.approvalQueries.GetHistory(c.Request.Context(), optionalQuery(c, "type"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestViews(views))
}

// @Summary Get audit trail
// @Description Get the chronological event trail derived from one request's history
// @Tags approvals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {array} resdto.AuditEventResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /approvals/{id}/audit [get]
func (h *ApprovalHandler) GetAuditTrail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request ID format")
		return
	}

	events, err := h.approvalQueries.GetAuditTrail(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrRequestNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Approval request not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromAuditEvents(events))
}

// @Summary Get statistics
// @Description Aggregate counts, rates and trends over a time window
// @Tags approvals
// @Produce json
// @Security BearerAuth
// @Param window query string false "Time window: today, week, month, year, all" default(all)
// @Success 200 {object} resdto.StatisticsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /approvals/statistics [get]
func (h *ApprovalHandler) GetStatistics(c *gin.Context) {
	window := queries.Window(c.DefaultQuery("window", string(queries.WindowAll)))
	if !window.IsValid() {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "Invalid statistics window")
		return
	}

	stats, err := h.approvalQueries.GetStatistics(c.Request.Context(), window)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromStatisticsView(stats))
}

func optionalQuery(c *gin.Context, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}
