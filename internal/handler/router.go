package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"approval-service/internal/handler/api"
	"approval-service/internal/handler/middleware"
	"approval-service/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, approvalHandler *api.ApprovalHandler, walletHandler *api.WalletHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, approvalHandler, walletHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, approvalHandler *api.ApprovalHandler, walletHandler *api.WalletHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		approvals := apiGroup.Group("/approvals")
		approvals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(approvals, []route{
				{Method: http.MethodPost, Path: "", Handler: approvalHandler.SubmitRequest},
				{Method: http.MethodGet, Path: "/pending", Handler: approvalHandler.ListPending},
				{Method: http.MethodGet, Path: "/history", Handler: approvalHandler.GetHistory},
				{Method: http.MethodGet, Path: "/statistics", Handler: approvalHandler.GetStatistics},
				{Method: http.MethodGet, Path: "/:id", Handler: approvalHandler.GetRequest},
				{Method: http.MethodGet, Path: "/:id/audit", Handler: approvalHandler.GetAuditTrail},
				{Method: http.MethodPost, Path: "/:id/comments", Handler: approvalHandler.AddComment},
			})

			decisions := approvals.Group("")
			decisions.Use(authMiddleware.RequireApprover())
			addRoutes(decisions, []route{
				{Method: http.MethodPost, Path: "/:id/approve", Handler: approvalHandler.ApproveRequest},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: approvalHandler.RejectRequest},
				{Method: http.MethodPost, Path: "/bulk/approve", Handler: approvalHandler.BulkApprove},
				{Method: http.MethodPost, Path: "/bulk/reject", Handler: approvalHandler.BulkReject},
			})
		}

		wallet := apiGroup.Group("/wallet")
		wallet.Use(authMiddleware.RequireAuth())
		{
			addRoutes(wallet, []route{
				{Method: http.MethodGet, Path: "/summary", Handler: walletHandler.GetSummary},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
