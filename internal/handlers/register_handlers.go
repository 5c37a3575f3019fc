package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/middleware"
	"github.com/saralbooks/bank_recon_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	importLimiter *limiter.Limiter,
) {
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, services, importLimiter)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	importLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")

	registerTransactionRoutes(v1, services.Recon, services.Suggestion, middleware.RateLimit(importLimiter))
	registerMappingRoutes(v1, services.Mapping)
	registerPartyRoutes(v1, services.Directory)
}

func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Bank Reconciliation Backend API v1"})
}
