package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/app/services"
	"github.com/yigit/eduadmin/internal/middleware"
	"github.com/yigit/eduadmin/internal/pkg/helpers"
)

// AdminController handles admin account operations
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// CreateAdmin creates an admin account
// @Summary Create an admin
// @Description Super admins only. Accepts JSON or multipart/form-data with an optional image file.
// @Tags admins
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAdminRequest true "Admin information"
// @Param image formData file false "Profile image"
// @Success 201 {object} dto.APIResponse{data=dto.AdminResponse} "Admin created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data, login taken or invalid image"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admins [post]
func (c *AdminController) CreateAdmin(ctx *gin.Context) {
	var req dto.CreateAdminRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}
	image, ok := optionalImage(ctx)
	if !ok {
		return
	}

	admin, err := c.adminService.CreateAdmin(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, dto.NewAdminResponse(admin))
}

// GetAdmins lists admins
// @Summary List admins
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.AdminResponse}} "Admins"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admins [get]
func (c *AdminController) GetAdmins(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	admins, total, err := c.adminService.GetAdmins(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.AdminResponse, 0, len(admins))
	for _, a := range admins {
		items = append(items, dto.NewAdminResponse(a))
	}
	respondPage(ctx, items, total, page, size)
}

// GetAdminByID returns one admin
// @Summary Get admin by ID
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} dto.APIResponse{data=dto.AdminResponse} "Admin"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Router /admins/{id} [get]
func (c *AdminController) GetAdminByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "admin")
	if !ok {
		return
	}

	admin, err := c.adminService.GetAdminByID(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewAdminResponse(admin))
}

// UpdateAdmin updates an admin
// @Summary Update admin
// @Description Self or super admin. Only a super admin may change the role.
// @Tags admins
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Param request body dto.UpdateAdminRequest true "Fields to update"
// @Param image formData file false "New profile image"
// @Success 200 {object} dto.APIResponse{data=dto.AdminResponse} "Admin updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Router /admins/{id} [put]
func (c *AdminController) UpdateAdmin(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "admin")
	if !ok {
		return
	}
	var req dto.UpdateAdminRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}
	image, ok := optionalImage(ctx)
	if !ok {
		return
	}

	admin, err := c.adminService.UpdateAdmin(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewAdminResponse(admin))
}

// DeleteAdmin deletes an admin
// @Summary Delete admin
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Admin deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Router /admins/{id} [delete]
func (c *AdminController) DeleteAdmin(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "admin")
	if !ok {
		return
	}

	if err := c.adminService.DeleteAdmin(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondDeleted(ctx, "Admin deleted successfully")
}
