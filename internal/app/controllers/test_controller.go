package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/app/services"
	"github.com/yigit/eduadmin/internal/middleware"
	"github.com/yigit/eduadmin/internal/pkg/helpers"
)

// TestController handles tests (exams)
type TestController struct {
	testService services.TestService
}

// NewTestController creates a new TestController
func NewTestController(testService services.TestService) *TestController {
	return &TestController{testService: testService}
}

// CreateTest handles test creation
// @Summary Create a test
// @Description Admins and teachers. A teacher becomes the owner of the test.
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTestRequest true "Test information"
// @Success 201 {object} dto.APIResponse{data=models.Test} "Test created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	var req dto.CreateTestRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	test, err := c.testService.CreateTest(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, test)
}

// GetTests lists tests; students only see active ones
// @Summary List tests
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param subjectId query int false "Filter by subject"
// @Param teacherId query int false "Filter by owning teacher"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Test}} "Tests"
// @Router /tests [get]
func (c *TestController) GetTests(ctx *gin.Context) {
	subjectID, ok := queryID(ctx, "subjectId")
	if !ok {
		return
	}
	teacherID, ok := queryID(ctx, "teacherId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	filter := models.TestFilter{SubjectID: subjectID, TeacherID: teacherID}
	tests, total, err := c.testService.GetTests(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPage(ctx, tests, total, page, size)
}

// GetTestByID returns one test
// @Summary Get test by ID
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Success 200 {object} dto.APIResponse{data=models.Test} "Test"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{id} [get]
func (c *TestController) GetTestByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "test")
	if !ok {
		return
	}

	test, err := c.testService.GetTestByID(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, test)
}

// UpdateTest updates a test
// @Summary Update test
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Param request body dto.UpdateTestRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Test} "Test updated"
// @Failure 403 {object} dto.ErrorResponse "Only an admin or the owning teacher"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{id} [put]
func (c *TestController) UpdateTest(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "test")
	if !ok {
		return
	}
	var req dto.UpdateTestRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	test, err := c.testService.UpdateTest(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, test)
}

// DeleteTest deletes a test with its questions and results
// @Summary Delete test
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Test deleted"
// @Failure 403 {object} dto.ErrorResponse "Only an admin or the owning teacher"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "test")
	if !ok {
		return
	}

	if err := c.testService.DeleteTest(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondDeleted(ctx, "Test deleted successfully")
}
