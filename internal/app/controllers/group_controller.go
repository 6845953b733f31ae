package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/app/services"
	"github.com/yigit/eduadmin/internal/middleware"
	"github.com/yigit/eduadmin/internal/pkg/helpers"
)

// GroupController handles student group operations
type GroupController struct {
	groupService services.GroupService
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.GroupService) *GroupController {
	return &GroupController{groupService: groupService}
}

// CreateGroup handles group creation
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGroupRequest true "Group information"
// @Success 201 {object} dto.APIResponse{data=models.Group} "Group created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Group name already exists"
// @Router /groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	var req dto.CreateGroupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	group, err := c.groupService.CreateGroup(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, group)
}

// GetGroups lists groups
// @Summary List groups
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Group}} "Groups"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /groups [get]
func (c *GroupController) GetGroups(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	groups, total, err := c.groupService.GetGroups(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPage(ctx, groups, total, page, size)
}

// GetGroupByID returns a group with its students count
// @Summary Get group by ID
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=models.Group} "Group"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [get]
func (c *GroupController) GetGroupByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "group")
	if !ok {
		return
	}

	group, err := c.groupService.GetGroupByID(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, group)
}

// GetGroupStudents lists the students of a group
// @Summary List group students
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.StudentResponse}} "Students"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id}/students [get]
func (c *GroupController) GetGroupStudents(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "group")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	students, total, err := c.groupService.GetGroupStudents(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPage(ctx, studentResponses(students), total, page, size)
}

// UpdateGroup updates a group
// @Summary Update group
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Group} "Group updated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [put]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "group")
	if !ok {
		return
	}
	var req dto.UpdateGroupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	group, err := c.groupService.UpdateGroup(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, group)
}

// DeleteGroup deletes a group; its students are kept without a group
// @Summary Delete group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Group deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "group")
	if !ok {
		return
	}

	if err := c.groupService.DeleteGroup(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondDeleted(ctx, "Group deleted successfully")
}
