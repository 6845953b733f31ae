package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/eduadmin/internal/app/controllers"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/middleware"
)

// Controllers bundles every HTTP handler the router mounts
type Controllers struct {
	Auth     *controllers.AuthController
	Admin    *controllers.AdminController
	Teacher  *controllers.TeacherController
	Student  *controllers.StudentController
	Group    *controllers.GroupController
	Subject  *controllers.SubjectController
	Test     *controllers.TestController
	Question *controllers.QuestionController
	Answer   *controllers.AnswerController
	Result   *controllers.ResultController
	Image    *controllers.ImageController
	Health   *controllers.HealthController
}

// SetupRouter configures all application routes. Fine-grained checks (self
// access, test ownership) live in the services; the role guards here only
// reject callers that can never succeed.
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware, storagePath string) {
	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleSuperAdmin)
	staffOnly := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleSuperAdmin, models.RoleTeacher)

	router.GET("/health", c.Health.Health)
	router.GET("/ready", c.Health.Ready)
	router.Static("/uploads", storagePath)
	router.NoRoute(middleware.NoRoute)

	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/health", c.Health.Health)

	// --- Public routes ---
	v1.POST("/admins/login", c.Auth.AdminLogin)
	v1.POST("/teachers/login", c.Auth.TeacherLogin)
	v1.POST("/students/login", c.Auth.StudentLogin)
	v1.POST("/students/signup", c.Student.Signup)

	auth := v1.Group("/auth")
	{
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/logout", c.Auth.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", c.Auth.Me)
	authenticated.GET("/images/:id", c.Image.GetImageByID)

	admins := authenticated.Group("/admins")
	admins.Use(adminOnly)
	{
		admins.POST("", c.Admin.CreateAdmin)
		admins.GET("", c.Admin.GetAdmins)
		admins.GET("/:id", c.Admin.GetAdminByID)
		admins.PUT("/:id", c.Admin.UpdateAdmin)
		admins.DELETE("/:id", c.Admin.DeleteAdmin)
	}

	teachers := authenticated.Group("/teachers")
	{
		teachers.POST("", adminOnly, c.Teacher.CreateTeacher)
		teachers.GET("", adminOnly, c.Teacher.GetTeachers)
		teachers.GET("/:id", c.Teacher.GetTeacherByID)
		teachers.PUT("/:id", c.Teacher.UpdateTeacher)
		teachers.DELETE("/:id", adminOnly, c.Teacher.DeleteTeacher)
	}

	students := authenticated.Group("/students")
	{
		students.POST("", adminOnly, c.Student.CreateStudent)
		students.GET("", staffOnly, c.Student.GetStudents)
		students.GET("/:id", c.Student.GetStudentByID)
		students.PUT("/:id", c.Student.UpdateStudent)
		students.DELETE("/:id", adminOnly, c.Student.DeleteStudent)
	}

	groups := authenticated.Group("/groups")
	{
		groups.GET("", c.Group.GetGroups)
		groups.GET("/:id", c.Group.GetGroupByID)
		groups.GET("/:id/students", staffOnly, c.Group.GetGroupStudents)
		groups.POST("", adminOnly, c.Group.CreateGroup)
		groups.PUT("/:id", adminOnly, c.Group.UpdateGroup)
		groups.DELETE("/:id", adminOnly, c.Group.DeleteGroup)
	}

	subjects := authenticated.Group("/subjects")
	{
		subjects.GET("", c.Subject.GetSubjects)
		subjects.GET("/:id", c.Subject.GetSubjectByID)
		subjects.POST("", adminOnly, c.Subject.CreateSubject)
		subjects.PUT("/:id", adminOnly, c.Subject.UpdateSubject)
		subjects.DELETE("/:id", adminOnly, c.Subject.DeleteSubject)
	}

	tests := authenticated.Group("/tests")
	{
		tests.GET("", c.Test.GetTests)
		tests.GET("/:id", c.Test.GetTestByID)
		tests.POST("", staffOnly, c.Test.CreateTest)
		tests.PUT("/:id", staffOnly, c.Test.UpdateTest)
		tests.DELETE("/:id", staffOnly, c.Test.DeleteTest)

		tests.GET("/:id/questions", c.Question.GetQuestionsByTest)
		tests.POST("/:id/questions", staffOnly, c.Question.CreateQuestion)
	}

	questions := authenticated.Group("/questions")
	{
		questions.GET("/:id", c.Question.GetQuestionByID)
		questions.PUT("/:id", staffOnly, c.Question.UpdateQuestion)
		questions.DELETE("/:id", staffOnly, c.Question.DeleteQuestion)

		questions.GET("/:id/answers", c.Answer.GetAnswersByQuestion)
		questions.POST("/:id/answers", staffOnly, c.Answer.CreateAnswer)
	}

	answers := authenticated.Group("/answers")
	{
		answers.GET("/:id", c.Answer.GetAnswerByID)
		answers.PUT("/:id", staffOnly, c.Answer.UpdateAnswer)
		answers.DELETE("/:id", staffOnly, c.Answer.DeleteAnswer)
	}

	results := authenticated.Group("/results")
	{
		results.POST("", authMiddleware.RoleRequired(models.RoleStudent), c.Result.SubmitResult)
		results.POST("/manual", adminOnly, c.Result.CreateResult)
		results.GET("", c.Result.GetResults)
		results.GET("/:id", c.Result.GetResultByID)
		results.PUT("/:id", adminOnly, c.Result.UpdateResult)
		results.DELETE("/:id", adminOnly, c.Result.DeleteResult)
	}
}
