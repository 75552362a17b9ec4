package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/partnerbi/bibot/internal/application/health"
)

// HealthHandler exposes liveness and readiness probes for the deployment.
// Container orchestrators poll /readyz before routing traffic; /healthz
// only confirms the process itself is serving.
type HealthHandler struct {
	checker *health.Checker
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// RegisterRoutes registers the probe endpoints
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/healthz", h.Live)
	rg.GET("/readyz", h.Ready)
}

// Live reports process liveness
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready probes MySQL and Redis and reports 503 until both respond
func (h *HealthHandler) Ready(c *gin.Context) {
	status := h.checker.Check(c.Request.Context())
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
