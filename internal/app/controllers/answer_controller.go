package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/auth"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/app/services"
	"github.com/yigit/eduadmin/internal/middleware"
)

// AnswerController handles the answer options of questions
type AnswerController struct {
	answerService services.AnswerService
}

// NewAnswerController creates a new AnswerController
func NewAnswerController(answerService services.AnswerService) *AnswerController {
	return &AnswerController{answerService: answerService}
}

// CreateAnswer adds an answer option to a question
// @Summary Create an answer
// @Tags answers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body dto.CreateAnswerRequest true "Answer"
// @Success 201 {object} dto.APIResponse{data=dto.AnswerResponse} "Answer created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 403 {object} dto.ErrorResponse "Only an admin or the owning teacher"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{id}/answers [post]
func (c *AnswerController) CreateAnswer(ctx *gin.Context) {
	questionID, ok := parseID(ctx, "id", "question")
	if !ok {
		return
	}
	var req dto.CreateAnswerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	answer, err := c.answerService.CreateAnswer(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), questionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, dto.NewAnswerResponse(answer, true))
}

// GetAnswersByQuestion lists the answers of a question
// @Summary List question answers
// @Description Students do not receive isCorrect.
// @Tags answers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AnswerResponse} "Answers"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{id}/answers [get]
func (c *AnswerController) GetAnswersByQuestion(ctx *gin.Context) {
	questionID, ok := parseID(ctx, "id", "question")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(ctx)
	answers, err := c.answerService.GetAnswersByQuestion(ctx.Request.Context(), p, questionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewAnswerResponses(answers, !auth.IsStudent(p)))
}

// GetAnswerByID returns one answer
// @Summary Get answer by ID
// @Tags answers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.APIResponse{data=dto.AnswerResponse} "Answer"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Router /answers/{id} [get]
func (c *AnswerController) GetAnswerByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "answer")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(ctx)
	answer, err := c.answerService.GetAnswerByID(ctx.Request.Context(), p, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewAnswerResponse(answer, !auth.IsStudent(p)))
}

// UpdateAnswer updates an answer
// @Summary Update answer
// @Tags answers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Param request body dto.UpdateAnswerRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.AnswerResponse} "Answer updated"
// @Failure 403 {object} dto.ErrorResponse "Only an admin or the owning teacher"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Router /answers/{id} [put]
func (c *AnswerController) UpdateAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "answer")
	if !ok {
		return
	}
	var req dto.UpdateAnswerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	answer, err := c.answerService.UpdateAnswer(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewAnswerResponse(answer, true))
}

// DeleteAnswer deletes an answer
// @Summary Delete answer
// @Tags answers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Answer deleted"
// @Failure 403 {object} dto.ErrorResponse "Only an admin or the owning teacher"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Router /answers/{id} [delete]
func (c *AnswerController) DeleteAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "answer")
	if !ok {
		return
	}

	if err := c.answerService.DeleteAnswer(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondDeleted(ctx, "Answer deleted successfully")
}
