package handler

import (
	"github.com/dafibh/gigledger/ledger-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, ledgerHandler *LedgerHandler, wsHandler *WebSocketHandler, rateLimiter *middleware.RateLimiter) {
	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", ServeOpenAPI3Spec)

	// API version 1
	api := e.Group("/api/v1")

	// Ledger routes
	ledger := api.Group("/ledger")
	ledger.GET("", ledgerHandler.GetLedger)
	ledger.GET("/distribution", ledgerHandler.GetDistribution)
	ledger.GET("/ws", wsHandler.HandleWS)

	// Mutating routes are rate limited per client IP
	limited := ledger.Group("", middleware.RateLimitMiddleware(rateLimiter))
	limited.PUT("/platforms/:platform", ledgerHandler.SetPlatformEarning)
	limited.PUT("/expenses/:category", ledgerHandler.SetExpense)
	limited.PUT("/goal", ledgerHandler.SetGoal)
	limited.POST("/save", ledgerHandler.Save)
	limited.POST("/load", ledgerHandler.Load)
}
