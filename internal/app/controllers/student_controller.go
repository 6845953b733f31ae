package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/app/services"
	"github.com/yigit/eduadmin/internal/middleware"
	"github.com/yigit/eduadmin/internal/pkg/helpers"
)

// StudentController handles student accounts, including public signup
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// Signup registers a student without authentication
// @Summary Student signup
// @Tags students
// @Accept json,mpfd
// @Produce json
// @Param request body dto.SignupStudentRequest true "Student information"
// @Param image formData file false "Profile image"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid data, login taken or invalid image"
// @Router /students/signup [post]
func (c *StudentController) Signup(ctx *gin.Context) {
	var req dto.SignupStudentRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}
	image, ok := optionalImage(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.Signup(ctx.Request.Context(), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, dto.NewStudentResponse(student))
}

// CreateStudent creates a student as an admin
// @Summary Create a student
// @Tags students
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Param image formData file false "Profile image"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}
	image, ok := optionalImage(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, dto.NewStudentResponse(student))
}

// GetStudents lists students
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param groupId query int false "Filter by group"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.StudentResponse}} "Students"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	groupID, ok := queryID(ctx, "groupId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	students, total, err := c.studentService.GetStudents(ctx.Request.Context(), middleware.CurrentPrincipal(ctx),
		models.StudentFilter{GroupID: groupID}, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPage(ctx, studentResponses(students), total, page, size)
}

// GetStudentByID returns one student
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "student")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewStudentResponse(student))
}

// UpdateStudent updates a student
// @Summary Update student
// @Description Admin or the student itself. Only admins may change the group.
// @Tags students
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Param image formData file false "New profile image"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student or group not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "student")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}
	image, ok := optionalImage(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.NewStudentResponse(student))
}

// DeleteStudent deletes a student and its image
// @Summary Delete student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "student")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondDeleted(ctx, "Student deleted successfully")
}

func studentResponses(students []*models.Student) []dto.StudentResponse {
	items := make([]dto.StudentResponse, 0, len(students))
	for _, s := range students {
		items = append(items, dto.NewStudentResponse(s))
	}
	return items
}
