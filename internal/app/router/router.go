// Package router assembles the HTTP routes for the finance backend.
package router

import (
	"github.com/gin-gonic/gin"

	analyticshandler "finance_backend/internal/feature/analytics/transport/handler"
	authhandler "finance_backend/internal/feature/auth/transport/handler"
	platformhandler "finance_backend/internal/feature/platforms/transport/handler"
	quotehandler "finance_backend/internal/feature/quotes/transport/handler"
	txhandler "finance_backend/internal/feature/transactions/transport/handler"
	"finance_backend/internal/platform/http/handler"
	jwtmw "finance_backend/internal/platform/jwt"
)

// NewRouter wires every handler into a gin engine.
func NewRouter(
	authHandler *authhandler.AuthHandler,
	quotes *quotehandler.QuoteHandler,
	transactions *txhandler.TransactionHandler,
	analytics *analyticshandler.AnalyticsHandler,
	platforms *platformhandler.PlatformHandler,
) *gin.Engine {
	r := gin.Default()

	// Open routes.
	r.GET("/healthz", handler.Health)
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.GET("/platforms", platforms.List)

	// Everything below requires a valid JWT.
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/quotes/:type", quotes.GetSnapshot)
		auth.POST("/quotes/:type/refresh", quotes.ForceRefresh)
		auth.GET("/transactions", transactions.List)
		auth.POST("/transactions", transactions.Create)
		auth.GET("/dashboard", transactions.Dashboard)
		auth.GET("/analytics", analytics.Get)
	}

	return r
}
