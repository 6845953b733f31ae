package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/app/services"
	"github.com/yigit/eduadmin/internal/middleware"
	"github.com/yigit/eduadmin/internal/pkg/helpers"
)

// ResultController handles exam results
type ResultController struct {
	resultService services.ResultService
}

// NewResultController creates a new ResultController
func NewResultController(resultService services.ResultService) *ResultController {
	return &ResultController{resultService: resultService}
}

// SubmitResult grades the answers of the calling student
// @Summary Submit test answers
// @Description Students only. The result is graded on the server.
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitResultRequest true "Chosen answers"
// @Success 201 {object} dto.APIResponse{data=models.Result} "Graded result"
// @Failure 400 {object} dto.ErrorResponse "Inactive test or answers that do not match the test"
// @Failure 403 {object} dto.ErrorResponse "Only students can submit"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /results [post]
func (c *ResultController) SubmitResult(ctx *gin.Context) {
	var req dto.SubmitResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.resultService.SubmitResult(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, result)
}

// CreateResult records a score directly
// @Summary Record a result
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateResultRequest true "Result counts"
// @Success 201 {object} dto.APIResponse{data=models.Result} "Result created"
// @Failure 400 {object} dto.ErrorResponse "Invalid counts"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Test or student not found"
// @Router /results/manual [post]
func (c *ResultController) CreateResult(ctx *gin.Context) {
	var req dto.CreateResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.resultService.CreateResult(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, result)
}

// GetResults lists results; students only get their own
// @Summary List results
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param testId query int false "Filter by test"
// @Param studentId query int false "Filter by student"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Result}} "Results"
// @Router /results [get]
func (c *ResultController) GetResults(ctx *gin.Context) {
	testID, ok := queryID(ctx, "testId")
	if !ok {
		return
	}
	studentID, ok := queryID(ctx, "studentId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	filter := models.ResultFilter{TestID: testID, StudentID: studentID}
	results, total, err := c.resultService.GetResults(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPage(ctx, results, total, page, size)
}

// GetResultByID returns one result with its answers
// @Summary Get result by ID
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Result ID"
// @Success 200 {object} dto.APIResponse{data=models.Result} "Result"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /results/{id} [get]
func (c *ResultController) GetResultByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "result")
	if !ok {
		return
	}

	result, err := c.resultService.GetResultByID(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, result)
}

// UpdateResult corrects the counts of a result
// @Summary Update result
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Result ID"
// @Param request body dto.UpdateResultRequest true "Counts to update"
// @Success 200 {object} dto.APIResponse{data=models.Result} "Result updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid counts"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /results/{id} [put]
func (c *ResultController) UpdateResult(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "result")
	if !ok {
		return
	}
	var req dto.UpdateResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.resultService.UpdateResult(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, result)
}

// DeleteResult deletes a result
// @Summary Delete result
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Result ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Result deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /results/{id} [delete]
func (c *ResultController) DeleteResult(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "result")
	if !ok {
		return
	}

	if err := c.resultService.DeleteResult(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondDeleted(ctx, "Result deleted successfully")
}
