package services

import (
	"context"

	"github.com/yigit/eduadmin/internal/app/models"
)

// Repository ports. The concrete pgx repositories in internal/app/repositories
// satisfy these; tests substitute mocks.

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id int64) (*models.Image, error)
	Delete(ctx context.Context, id int64) error
}

// CredentialsRepository is the login projection every user table provides.
type CredentialsRepository interface {
	GetCredentialsByLogin(ctx context.Context, login string) (*models.Credentials, error)
	GetCredentialsByID(ctx context.Context, id int64) (*models.Credentials, error)
}

type AdminRepository interface {
	CredentialsRepository
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	List(ctx context.Context, page models.Page) ([]*models.Admin, int64, error)
	Update(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id int64) (*models.Image, error)
	LoginExists(ctx context.Context, login string, excludeID int64) (bool, error)
}

type TeacherRepository interface {
	CredentialsRepository
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	List(ctx context.Context, page models.Page) ([]*models.Teacher, int64, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) (*models.Image, error)
	LoginExists(ctx context.Context, login string, excludeID int64) (bool, error)
}

type StudentRepository interface {
	CredentialsRepository
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, filter models.StudentFilter, page models.Page) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) (*models.Image, error)
	LoginExists(ctx context.Context, login string, excludeID int64) (bool, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, page models.Page) ([]*models.Group, int64, error)
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id int64) error
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	List(ctx context.Context, page models.Page) ([]*models.Subject, int64, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

type TestRepository interface {
	Create(ctx context.Context, test *models.Test) error
	GetByID(ctx context.Context, id int64) (*models.Test, error)
	List(ctx context.Context, filter models.TestFilter, page models.Page) ([]*models.Test, int64, error)
	Update(ctx context.Context, test *models.Test) error
	Delete(ctx context.Context, id int64) error
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	ListByTest(ctx context.Context, testID int64) ([]*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id int64) error
}

type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id int64) (*models.Answer, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]*models.Answer, error)
	ListByTest(ctx context.Context, testID int64) ([]*models.Answer, error)
	Update(ctx context.Context, answer *models.Answer) error
	Delete(ctx context.Context, id int64) error
}

type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	CreateWithAnswers(ctx context.Context, result *models.Result) error
	GetByID(ctx context.Context, id int64) (*models.Result, error)
	List(ctx context.Context, filter models.ResultFilter, page models.Page) ([]*models.Result, int64, error)
	Update(ctx context.Context, result *models.Result) error
	Delete(ctx context.Context, id int64) error
}

type TokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID int64, roles ...models.Role) (int64, error)
}

// Services groups every service the HTTP layer depends on
type Services struct {
	Auth     AuthService
	Image    ImageService
	Admin    AdminService
	Teacher  TeacherService
	Student  StudentService
	Group    GroupService
	Subject  SubjectService
	Test     TestService
	Question QuestionService
	Answer   AnswerService
	Result   ResultService
}
