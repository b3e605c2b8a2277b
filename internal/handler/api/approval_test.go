//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"approval-service/internal/handler/api"
	resdto "approval-service/internal/handler/dto/response"
	"approval-service/internal/handler/middleware"
	"approval-service/internal/usecase/commands"
	"approval-service/internal/usecase/queries"
	"approval-service/tests/common/builder"
	"approval-service/tests/common/httptest"
	"approval-service/tests/common/testutil"
	commandsmock "approval-service/tests/mock/commands"
	queriesmock "approval-service/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	managerToken = "manager-token"
	viewerToken  = "viewer-token"
)

// stubValidator resolves fixed tokens so the real auth middleware runs in
// handler tests.
type stubValidator struct {
	managerID uuid.UUID
	viewerID  uuid.UUID
}

func (v *stubValidator) Validate(token string) (uuid.UUID, string, error) {
	switch token {
	case managerToken:
		return v.managerID, "manager", nil
	case viewerToken:
		return v.viewerID, "merchandiser", nil
	default:
		return uuid.Nil, "", errors.New("unknown token")
	}
}

type ApprovalHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockApprovalCommands
	mockBulk     *commandsmock.MockBulkCommands
	mockQueries  *queriesmock.MockApprovalQueries
	managerID    uuid.UUID
}

func (s *ApprovalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockApprovalCommands(s.mockCtrl)
	s.mockBulk = commandsmock.NewMockBulkCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockApprovalQueries(s.mockCtrl)
	s.managerID = uuid.New()

	handler := api.NewApprovalHandler(s.mockCommands, s.mockBulk, s.mockQueries)
	walletHandler := api.NewWalletHandler(s.mockQueries)
	authMW := middleware.NewAuthMiddleware(&stubValidator{
		managerID: s.managerID,
		viewerID:  uuid.New(),
	})

	approvals := s.router.Group("/api/approvals")
	approvals.Use(authMW.RequireAuth())
	{
		approvals.POST("", handler.SubmitRequest)
		approvals.GET("/pending", handler.ListPending)
		approvals.GET("/history", handler.GetHistory)
		approvals.GET("/statistics", handler.GetStatistics)
		approvals.GET("/:id", handler.GetRequest)
		approvals.GET("/:id/audit", handler.GetAuditTrail)
		approvals.POST("/:id/comments", handler.AddComment)

		decisions := approvals.Group("")
		decisions.Use(authMW.RequireApprover())
		{
			decisions.POST("/:id/approve", handler.ApproveRequest)
			decisions.POST("/:id/reject", handler.RejectRequest)
			decisions.POST("/bulk/approve", handler.BulkApprove)
			decisions.POST("/bulk/reject", handler.BulkReject)
		}
	}

	wallet := s.router.Group("/api/wallet")
	wallet.Use(authMW.RequireAuth())
	{
		wallet.GET("/summary", walletHandler.GetSummary)
	}
}

func (s *ApprovalHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestApprovalHandlerSuite(t *testing.T) {
	suite.Run(t, new(ApprovalHandlerTestSuite))
}

// ================================================================================
// TestSubmitRequest
// ================================================================================

func (s *ApprovalHandlerTestSuite) TestSubmitRequest() {
	url := "/api/approvals"
	reqBody := builder.NewApprovalBuilder().BuildSubmitDTO()
	returnView := builder.NewApprovalBuilder().BuildView()

	s.Run("success: returns 201 Created for valid submission", func() {
		s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, viewerToken)

		var body resdto.ApprovalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal("pending", body.Status)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		for _, field := range []string{"type", "title", "description", "entity"} {
			s.Run("missing "+field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, viewerToken)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 400 Bad Request on unknown change type", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("type", "price_tweak"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid change payload")
	})

	s.Run("error: 422 Unprocessable Entity on domain validation failure", func() {
		s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Domain validation failed")
	})

	s.Run("error: 409 Conflict when a hold is already active", func() {
		s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrHoldConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})
}

// ================================================================================
// TestApproveRequest / TestRejectRequest
// ================================================================================

func (s *ApprovalHandlerTestSuite) TestApproveRequest() {
	returnView := builder.NewApprovalBuilder().BuildView()
	url := "/api/approvals/" + returnView.ID.String() + "/approve"

	s.Run("success: returns 200 OK and the decided view", func() {
		decided := builder.CloneView(returnView)
		decided.Status = "approved"
		decided.DecidedBy = &s.managerID

		s.mockCommands.EXPECT().
			Approve(gomock.Any(), returnView.ID, s.managerID, "looks fine").
			Return(decided, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{"comments": "looks fine"}, managerToken)

		var body resdto.ApprovalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("approved", body.Status)
	})

	s.Run("success: body is optional", func() {
		decided := builder.CloneView(returnView)
		decided.Status = "approved"

		s.mockCommands.EXPECT().
			Approve(gomock.Any(), returnView.ID, s.managerID, "").
			Return(decided, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, managerToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 404 Not Found for unknown request", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, managerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})

	s.Run("error: 409 Conflict when already decided", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrRequestNotPending).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, managerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already been decided")
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
			"/api/approvals/not-a-uuid/approve", nil, managerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request ID format")
	})

	s.Run("error: 403 Forbidden for non-approver roles", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

func (s *ApprovalHandlerTestSuite) TestRejectRequest() {
	returnView := builder.NewApprovalBuilder().BuildView()
	url := "/api/approvals/" + returnView.ID.String() + "/reject"

	s.Run("success: returns 200 OK with the rejection reason", func() {
		decided := builder.CloneView(returnView)
		decided.Status = "rejected"
		decided.DecisionComments = "margin too thin"

		s.mockCommands.EXPECT().
			Reject(gomock.Any(), returnView.ID, s.managerID, "margin too thin").
			Return(decided, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{"comments": "margin too thin"}, managerToken)

		var body resdto.ApprovalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("rejected", body.Status)
		s.Equal("margin too thin", body.DecisionComments)
	})

	s.Run("error: 422 Unprocessable Entity when the reason is missing", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, managerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Domain validation failed")
	})
}

// ================================================================================
// TestAddComment
// ================================================================================

func (s *ApprovalHandlerTestSuite) TestAddComment() {
	requestID := uuid.New()
	url := "/api/approvals/" + requestID.String() + "/comments"

	s.Run("success: returns 201 Created with the new comment", func() {
		comment := &queries.CommentView{
			ID:        uuid.New(),
			Author:    uuid.New(),
			Text:      "please expedite",
			CreatedAt: time.Now().UTC(),
		}
		s.mockCommands.EXPECT().
			AddComment(gomock.Any(), requestID, gomock.Any(), "please expedite").
			Return(comment, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{"text": "please expedite"}, viewerToken)

		var body resdto.CommentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(comment.ID, body.ID)
		s.Equal("please expedite", body.Text)
	})

	s.Run("error: 400 Bad Request when text is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{}, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 404 Not Found for unknown request", func() {
		s.mockCommands.EXPECT().AddComment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{"text": "hello"}, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestBulkDecisions
// ================================================================================

func (s *ApprovalHandlerTestSuite) TestBulkDecisions() {
	approveURL := "/api/approvals/bulk/approve"
	rejectURL := "/api/approvals/bulk/reject"
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	s.Run("success: returns 200 OK with per-item outcomes", func() {
		decided := builder.NewApprovalBuilder().BuildView()
		result := &commands.BulkResult{
			BulkActionID: uuid.New(),
			Successful:   []*queries.RequestView{decided},
			Failed: []commands.BulkFailure{
				{RequestID: ids[1], Reason: "not pending"},
			},
			Summary: commands.BulkSummary{SuccessCount: 1, FailureCount: 1, TotalImpact: 50},
		}
		s.mockBulk.EXPECT().
			BulkApprove(gomock.Any(), ids, s.managerID, "batch").
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, approveURL,
			map[string]any{"request_ids": ids, "comments": "batch"}, managerToken)

		var body resdto.BulkDecisionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(result.BulkActionID, body.BulkActionID)
		s.Equal(1, body.Summary.SuccessCount)
		s.Equal(1, body.Summary.FailureCount)
		s.Len(body.Failed, 1)
		s.Equal("not pending", body.Failed[0].Reason)
	})

	s.Run("error: 400 Bad Request on empty batch", func() {
		s.mockBulk.EXPECT().BulkApprove(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrBulkEmptyBatch).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, approveURL,
			map[string]any{"request_ids": []uuid.UUID{}}, managerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "At least one request ID")
	})

	s.Run("error: 400 Bad Request when bulk rejection lacks comments", func() {
		s.mockBulk.EXPECT().BulkReject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrBulkCommentsRequired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, rejectURL,
			map[string]any{"request_ids": ids}, managerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Comments are required")
	})

	s.Run("error: 403 Forbidden for non-approver roles", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, approveURL,
			map[string]any{"request_ids": ids}, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestGetRequest / listings
// ================================================================================

func (s *ApprovalHandlerTestSuite) TestGetRequest() {
	returnView := builder.NewApprovalBuilder().BuildView()
	url := "/api/approvals/" + returnView.ID.String()

	s.Run("success: returns 200 OK with the request", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, viewerToken)

		var body resdto.ApprovalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal(returnView.Title, body.Title)
	})

	s.Run("error: 404 Not Found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/approvals/nope", nil, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *ApprovalHandlerTestSuite) TestListPending() {
	url := "/api/approvals/pending"

	s.Run("success: passes filters through", func() {
		views := []*queries.RequestView{builder.NewApprovalBuilder().BuildView()}
		changeType := "price_change"
		priority := "urgent"
		s.mockQueries.EXPECT().
			GetPending(gomock.Any(), &changeType, &priority).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			url+"?type=price_change&priority=urgent", nil, viewerToken)

		var body []resdto.ApprovalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("success: no filters means nil filters", func() {
		s.mockQueries.EXPECT().
			GetPending(gomock.Any(), (*string)(nil), (*string)(nil)).
			Return([]*queries.RequestView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, viewerToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *ApprovalHandlerTestSuite) TestGetHistory() {
	s.mockQueries.EXPECT().GetHistory(gomock.Any(), (*string)(nil)).
		Return([]*queries.RequestView{}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/approvals/history", nil, viewerToken)
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
}

// ================================================================================
// TestGetAuditTrail / TestGetStatistics / TestWalletSummary
// ================================================================================

func (s *ApprovalHandlerTestSuite) TestGetAuditTrail() {
	requestID := uuid.New()
	url := "/api/approvals/" + requestID.String() + "/audit"

	s.Run("success: returns 200 OK with the event list", func() {
		events := []queries.AuditEvent{
			{Type: queries.AuditSubmitted, Timestamp: time.Now().UTC(), Actor: uuid.New()},
		}
		s.mockQueries.EXPECT().GetAuditTrail(gomock.Any(), requestID).
			Return(events, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, viewerToken)

		var body []resdto.AuditEventResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal("submitted", body[0].Type)
	})

	s.Run("error: 404 Not Found", func() {
		s.mockQueries.EXPECT().GetAuditTrail(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *ApprovalHandlerTestSuite) TestGetStatistics() {
	url := "/api/approvals/statistics"

	s.Run("success: defaults to the all-time window", func() {
		stats := &queries.StatisticsView{Window: "all", Total: 3, Approved: 2, Rejected: 1, ApprovalRate: 2.0 / 3.0}
		s.mockQueries.EXPECT().GetStatistics(gomock.Any(), queries.WindowAll).
			Return(stats, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, viewerToken)

		var body resdto.StatisticsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("all", body.Window)
		s.Equal(3, body.Total)
	})

	s.Run("success: explicit window", func() {
		s.mockQueries.EXPECT().GetStatistics(gomock.Any(), queries.WindowWeek).
			Return(&queries.StatisticsView{Window: "week"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?window=week", nil, viewerToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on unknown window", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?window=fortnight", nil, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid statistics window")
	})
}

func (s *ApprovalHandlerTestSuite) TestWalletSummary() {
	summary := &queries.WalletSummaryView{
		ActiveHoldCount: 1,
		TotalHeld:       200,
		Holds: []*queries.HoldView{
			{RequestID: uuid.New(), HoldAmount: 200, TotalImpact: 2000, AdjustmentType: "increase", Status: "holding"},
		},
		RecentAdjustments: []*queries.AdjustmentView{},
	}
	s.mockQueries.EXPECT().GetWalletSummary(gomock.Any()).
		Return(summary, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/wallet/summary", nil, viewerToken)

	var body resdto.WalletSummaryResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(1, body.ActiveHoldCount)
	s.Equal(float64(200), body.TotalHeld)
	s.Len(body.Holds, 1)
}
