package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/app/services"
	"github.com/yigit/eduadmin/internal/middleware"
)

// ImageController exposes image metadata; the files are served under /uploads
type ImageController struct {
	imageService services.ImageService
}

// NewImageController creates a new ImageController
func NewImageController(imageService services.ImageService) *ImageController {
	return &ImageController{imageService: imageService}
}

// GetImageByID returns the metadata of an uploaded image
// @Summary Get image metadata
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} dto.APIResponse{data=dto.ImageResponse} "Image"
// @Failure 404 {object} dto.ErrorResponse "Image not found"
// @Router /images/{id} [get]
func (c *ImageController) GetImageByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "image")
	if !ok {
		return
	}

	image, err := c.imageService.GetImageByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewImageResponse(image))
}
