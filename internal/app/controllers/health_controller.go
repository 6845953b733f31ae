package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/eduadmin/internal/app/models/dto"
)

// Pinger is satisfied by the database handle
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController answers liveness and readiness probes
type HealthController struct {
	db     Pinger
	logger zerolog.Logger
}

func NewHealthController(db Pinger, logger zerolog.Logger) *HealthController {
	return &HealthController{db: db, logger: logger}
}

// Health reports that the process is up
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse "Service is alive"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	respondOK(ctx, gin.H{"status": "ok"})
}

// Ready reports whether the database is reachable
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse "Service is ready"
// @Failure 503 {object} dto.ErrorResponse "Database unavailable"
// @Router /ready [get]
func (c *HealthController) Ready(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		c.logger.Warn().Err(err).Msg("Readiness check failed")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Database unavailable")
		ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
		return
	}

	respondOK(ctx, gin.H{"status": "ready", "database": "up"})
}
