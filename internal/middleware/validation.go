package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/pkg/logger"
	"github.com/yigit/eduadmin/internal/pkg/validation"
)

// BindRequest binds the body (JSON or form, by Content-Type) into obj and runs
// the binding validators. On failure it writes a 400 and returns false.
func BindRequest(c *gin.Context, obj interface{}) bool {
	ensureRules()
	if err := c.ShouldBind(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// BindJSON is BindRequest restricted to JSON bodies
func BindJSON(c *gin.Context, obj interface{}) bool {
	ensureRules()
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

func ensureRules() {
	if err := validation.RegisterBindingRules(); err != nil {
		logger.Error().Err(err).Msg("Failed to register custom validation rules")
	}
}
