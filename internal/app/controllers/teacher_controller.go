package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/app/services"
	"github.com/yigit/eduadmin/internal/middleware"
	"github.com/yigit/eduadmin/internal/pkg/helpers"
)

// TeacherController handles teacher account operations
type TeacherController struct {
	teacherService services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService services.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

// CreateTeacher handles teacher creation
// @Summary Create a teacher
// @Tags teachers
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeacherRequest true "Teacher information"
// @Param image formData file false "Profile image"
// @Success 201 {object} dto.APIResponse{data=dto.TeacherResponse} "Teacher created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data, login taken or invalid image"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /teachers [post]
func (c *TeacherController) CreateTeacher(ctx *gin.Context) {
	var req dto.CreateTeacherRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}
	image, ok := optionalImage(ctx)
	if !ok {
		return
	}

	teacher, err := c.teacherService.CreateTeacher(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, dto.NewTeacherResponse(teacher))
}

// GetTeachers lists teachers
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.TeacherResponse}} "Teachers"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /teachers [get]
func (c *TeacherController) GetTeachers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	teachers, total, err := c.teacherService.GetTeachers(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		items = append(items, dto.NewTeacherResponse(t))
	}
	respondPage(ctx, items, total, page, size)
}

// GetTeacherByID returns one teacher
// @Summary Get teacher by ID
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherResponse} "Teacher"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [get]
func (c *TeacherController) GetTeacherByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "teacher")
	if !ok {
		return
	}

	teacher, err := c.teacherService.GetTeacherByID(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewTeacherResponse(teacher))
}

// UpdateTeacher updates a teacher
// @Summary Update teacher
// @Tags teachers
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Param request body dto.UpdateTeacherRequest true "Fields to update"
// @Param image formData file false "New profile image"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherResponse} "Teacher updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [put]
func (c *TeacherController) UpdateTeacher(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "teacher")
	if !ok {
		return
	}
	var req dto.UpdateTeacherRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}
	image, ok := optionalImage(ctx)
	if !ok {
		return
	}

	teacher, err := c.teacherService.UpdateTeacher(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewTeacherResponse(teacher))
}

// DeleteTeacher deletes a teacher and its image
// @Summary Delete teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Teacher deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [delete]
func (c *TeacherController) DeleteTeacher(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "teacher")
	if !ok {
		return
	}

	if err := c.teacherService.DeleteTeacher(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondDeleted(ctx, "Teacher deleted successfully")
}
