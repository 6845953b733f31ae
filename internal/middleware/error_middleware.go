package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/logger"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetail(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("requestId", c.GetString(RequestIDKey)).
			Msg("Unhandled error")
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

func errorDetail(err error) (int, *dto.ErrorDetail) {
	message := err.Error()

	var detail *dto.ErrorDetail
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrLoginTaken):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeLoginTaken, message).WithField("login")
	case errors.Is(err, apperrors.ErrInvalidFile):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeFileInvalid, message).WithField("image")
	case errors.Is(err, apperrors.ErrValidationFailed):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	case errors.Is(err, apperrors.ErrBadRequest):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, message)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid login or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token has been revoked")
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		status, detail = http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, message)

	case errors.Is(err, apperrors.ErrResourceNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)

	case errors.Is(err, apperrors.ErrConflict):
		status, detail = http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, message)
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		status, detail = http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message)

	default:
		detail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
	}

	var custom *apperrors.CustomError
	if status < http.StatusInternalServerError && errors.As(err, &custom) && custom.Details != nil {
		detail.WithDetails(custom.Details)
	}

	return status, detail
}

// NoRoute answers unknown paths with the standard error envelope
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found").WithDetails(c.Request.URL.Path),
	))
}
