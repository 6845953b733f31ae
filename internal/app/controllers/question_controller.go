package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/auth"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/app/services"
	"github.com/yigit/eduadmin/internal/middleware"
)

// QuestionController handles the questions of a test
type QuestionController struct {
	questionService services.QuestionService
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService services.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// CreateQuestion adds a question, optionally with answers, to a test
// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Param request body dto.CreateQuestionRequest true "Question with optional answers"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionResponse} "Question created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 403 {object} dto.ErrorResponse "Only an admin or the owning teacher"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{id}/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	testID, ok := parseID(ctx, "id", "test")
	if !ok {
		return
	}
	var req dto.CreateQuestionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	p := middleware.CurrentPrincipal(ctx)
	question, err := c.questionService.CreateQuestion(ctx.Request.Context(), p, testID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, dto.NewQuestionResponse(question, !auth.IsStudent(p)))
}

// GetQuestionsByTest lists the questions of a test with their answers
// @Summary List test questions
// @Description Students do not receive isCorrect on answers.
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.QuestionResponse} "Questions"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{id}/questions [get]
func (c *QuestionController) GetQuestionsByTest(ctx *gin.Context) {
	testID, ok := parseID(ctx, "id", "test")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(ctx)
	questions, err := c.questionService.GetQuestionsByTest(ctx.Request.Context(), p, testID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	reveal := !auth.IsStudent(p)
	items := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		items = append(items, dto.NewQuestionResponse(q, reveal))
	}
	respondOK(ctx, items)
}

// GetQuestionByID returns one question with its answers
// @Summary Get question by ID
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionResponse} "Question"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{id} [get]
func (c *QuestionController) GetQuestionByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "question")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(ctx)
	question, err := c.questionService.GetQuestionByID(ctx.Request.Context(), p, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewQuestionResponse(question, !auth.IsStudent(p)))
}

// UpdateQuestion changes the text of a question
// @Summary Update question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionResponse} "Question updated"
// @Failure 403 {object} dto.ErrorResponse "Only an admin or the owning teacher"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "question")
	if !ok {
		return
	}
	var req dto.UpdateQuestionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	question, err := c.questionService.UpdateQuestion(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewQuestionResponse(question, true))
}

// DeleteQuestion deletes a question and its answers
// @Summary Delete question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Question deleted"
// @Failure 403 {object} dto.ErrorResponse "Only an admin or the owning teacher"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "question")
	if !ok {
		return
	}

	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondDeleted(ctx, "Question deleted successfully")
}
