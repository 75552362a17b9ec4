package router

import (
	"github.com/gin-gonic/gin"
	"github.com/partnerbi/bibot/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// New builds the gin engine for the health endpoint server. Probe routes
// are registered at the root, not under an API version prefix, because
// orchestrators expect conventional /healthz and /readyz paths.
func New(log *zap.Logger, registrars ...RouteRegistrar) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(logger.GinMiddleware(log), logger.Recovery(log))

	root := engine.Group("/")
	for _, registrar := range registrars {
		registrar.RegisterRoutes(root)
	}
	return engine
}
