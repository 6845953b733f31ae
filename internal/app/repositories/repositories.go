package repositories

import (
	"github.com/yigit/eduadmin/internal/app/repositories/user"
	"github.com/yigit/eduadmin/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	ImageRepository    *ImageRepository
	AdminRepository    *user.AdminRepository
	TeacherRepository  *user.TeacherRepository
	StudentRepository  *user.StudentRepository
	GroupRepository    *GroupRepository
	SubjectRepository  *SubjectRepository
	TestRepository     *TestRepository
	QuestionRepository *QuestionRepository
	AnswerRepository   *AnswerRepository
	ResultRepository   *ResultRepository
	TokenRepository    *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool
	return &Repositories{
		ImageRepository:    NewImageRepository(pool),
		AdminRepository:    user.NewAdminRepository(database),
		TeacherRepository:  user.NewTeacherRepository(database),
		StudentRepository:  user.NewStudentRepository(database),
		GroupRepository:    NewGroupRepository(pool),
		SubjectRepository:  NewSubjectRepository(pool),
		TestRepository:     NewTestRepository(pool),
		QuestionRepository: NewQuestionRepository(database),
		AnswerRepository:   NewAnswerRepository(pool),
		ResultRepository:   NewResultRepository(database),
		TokenRepository:    NewTokenRepository(pool),
	}
}
