package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/loanledger/internal/server/http/handlers"
	"github.com/polkiloo/loanledger/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.LedgerFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.ResolveIdentity(facade, logger))

	userHandler := handlers.NewUserHandler(facade)
	loanHandler := handlers.NewLoanHandler(facade)
	repaymentHandler := handlers.NewRepaymentHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.POST("/user", userHandler.Create)
	engine.GET("/loan", loanHandler.List)
	engine.POST("/loan", loanHandler.Create)
	engine.PUT("/approval/:loan_id", loanHandler.Approve)
	engine.PUT("/repayment/:loan_id/:repayment_id", repaymentHandler.Repay)
	engine.GET("/health", healthHandler.Check)

	return engine
}
