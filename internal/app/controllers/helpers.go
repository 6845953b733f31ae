// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/middleware"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/helpers"
)

// parseID reads a positive int64 path parameter. On failure it writes a 400
// naming the parameter and returns false.
func parseID(ctx *gin.Context, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(param), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID")
		errorDetail = errorDetail.WithDetails(label + " ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// queryID reads an optional positive id query parameter
func queryID(ctx *gin.Context, name string) (*int64, bool) {
	id, ok := helpers.ParseOptionalID(ctx.Query(name))
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return id, true
}

// optionalImage returns the "image" part of a multipart request, or nil when
// the request carries none (including plain JSON requests).
func optionalImage(ctx *gin.Context) (*multipart.FileHeader, bool) {
	if ctx.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, true
	}
	file, err := ctx.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrInvalidFile, "could not read the uploaded image"))
		return nil, false
	}
	return file, true
}

func respondOK(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func respondCreated(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

func respondDeleted(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: message}))
}

// respondPage writes one page of a list endpoint
func respondPage(ctx *gin.Context, items interface{}, total int64, page, size int) {
	respondOK(ctx, dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	})
}
