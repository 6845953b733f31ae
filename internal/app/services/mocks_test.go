package services

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/pkg/filestorage"
)

type mockAdminRepo struct{ mock.Mock }

func (m *mockAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *mockAdminRepo) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	args := m.Called(ctx, id)
	admin, _ := args.Get(0).(*models.Admin)
	return admin, args.Error(1)
}

func (m *mockAdminRepo) List(ctx context.Context, page models.Page) ([]*models.Admin, int64, error) {
	args := m.Called(ctx, page)
	admins, _ := args.Get(0).([]*models.Admin)
	return admins, args.Get(1).(int64), args.Error(2)
}

func (m *mockAdminRepo) Update(ctx context.Context, admin *models.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *mockAdminRepo) Delete(ctx context.Context, id int64) (*models.Image, error) {
	args := m.Called(ctx, id)
	image, _ := args.Get(0).(*models.Image)
	return image, args.Error(1)
}

func (m *mockAdminRepo) LoginExists(ctx context.Context, login string, excludeID int64) (bool, error) {
	args := m.Called(ctx, login, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAdminRepo) GetCredentialsByLogin(ctx context.Context, login string) (*models.Credentials, error) {
	args := m.Called(ctx, login)
	creds, _ := args.Get(0).(*models.Credentials)
	return creds, args.Error(1)
}

func (m *mockAdminRepo) GetCredentialsByID(ctx context.Context, id int64) (*models.Credentials, error) {
	args := m.Called(ctx, id)
	creds, _ := args.Get(0).(*models.Credentials)
	return creds, args.Error(1)
}

type mockTeacherRepo struct{ mock.Mock }

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	return m.Called(ctx, teacher).Error(0)
}

func (m *mockTeacherRepo) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	args := m.Called(ctx, id)
	teacher, _ := args.Get(0).(*models.Teacher)
	return teacher, args.Error(1)
}

func (m *mockTeacherRepo) List(ctx context.Context, page models.Page) ([]*models.Teacher, int64, error) {
	args := m.Called(ctx, page)
	teachers, _ := args.Get(0).([]*models.Teacher)
	return teachers, args.Get(1).(int64), args.Error(2)
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	return m.Called(ctx, teacher).Error(0)
}

func (m *mockTeacherRepo) Delete(ctx context.Context, id int64) (*models.Image, error) {
	args := m.Called(ctx, id)
	image, _ := args.Get(0).(*models.Image)
	return image, args.Error(1)
}

func (m *mockTeacherRepo) LoginExists(ctx context.Context, login string, excludeID int64) (bool, error) {
	args := m.Called(ctx, login, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTeacherRepo) GetCredentialsByLogin(ctx context.Context, login string) (*models.Credentials, error) {
	args := m.Called(ctx, login)
	creds, _ := args.Get(0).(*models.Credentials)
	return creds, args.Error(1)
}

func (m *mockTeacherRepo) GetCredentialsByID(ctx context.Context, id int64) (*models.Credentials, error) {
	args := m.Called(ctx, id)
	creds, _ := args.Get(0).(*models.Credentials)
	return creds, args.Error(1)
}

type mockStudentRepo struct{ mock.Mock }

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	return m.Called(ctx, student).Error(0)
}

func (m *mockStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	args := m.Called(ctx, id)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter, page models.Page) ([]*models.Student, int64, error) {
	args := m.Called(ctx, filter, page)
	students, _ := args.Get(0).([]*models.Student)
	return students, args.Get(1).(int64), args.Error(2)
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	return m.Called(ctx, student).Error(0)
}

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) (*models.Image, error) {
	args := m.Called(ctx, id)
	image, _ := args.Get(0).(*models.Image)
	return image, args.Error(1)
}

func (m *mockStudentRepo) LoginExists(ctx context.Context, login string, excludeID int64) (bool, error) {
	args := m.Called(ctx, login, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStudentRepo) GetCredentialsByLogin(ctx context.Context, login string) (*models.Credentials, error) {
	args := m.Called(ctx, login)
	creds, _ := args.Get(0).(*models.Credentials)
	return creds, args.Error(1)
}

func (m *mockStudentRepo) GetCredentialsByID(ctx context.Context, id int64) (*models.Credentials, error) {
	args := m.Called(ctx, id)
	creds, _ := args.Get(0).(*models.Credentials)
	return creds, args.Error(1)
}

type mockGroupRepo struct{ mock.Mock }

func (m *mockGroupRepo) Create(ctx context.Context, group *models.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	args := m.Called(ctx, id)
	group, _ := args.Get(0).(*models.Group)
	return group, args.Error(1)
}

func (m *mockGroupRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockGroupRepo) List(ctx context.Context, page models.Page) ([]*models.Group, int64, error) {
	args := m.Called(ctx, page)
	groups, _ := args.Get(0).([]*models.Group)
	return groups, args.Get(1).(int64), args.Error(2)
}

func (m *mockGroupRepo) Update(ctx context.Context, group *models.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockGroupRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSubjectRepo struct{ mock.Mock }

func (m *mockSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	return m.Called(ctx, subject).Error(0)
}

func (m *mockSubjectRepo) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	args := m.Called(ctx, id)
	subject, _ := args.Get(0).(*models.Subject)
	return subject, args.Error(1)
}

func (m *mockSubjectRepo) List(ctx context.Context, page models.Page) ([]*models.Subject, int64, error) {
	args := m.Called(ctx, page)
	subjects, _ := args.Get(0).([]*models.Subject)
	return subjects, args.Get(1).(int64), args.Error(2)
}

func (m *mockSubjectRepo) Update(ctx context.Context, subject *models.Subject) error {
	return m.Called(ctx, subject).Error(0)
}

func (m *mockSubjectRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockTestRepo struct{ mock.Mock }

func (m *mockTestRepo) Create(ctx context.Context, test *models.Test) error {
	return m.Called(ctx, test).Error(0)
}

func (m *mockTestRepo) GetByID(ctx context.Context, id int64) (*models.Test, error) {
	args := m.Called(ctx, id)
	test, _ := args.Get(0).(*models.Test)
	return test, args.Error(1)
}

func (m *mockTestRepo) List(ctx context.Context, filter models.TestFilter, page models.Page) ([]*models.Test, int64, error) {
	args := m.Called(ctx, filter, page)
	tests, _ := args.Get(0).([]*models.Test)
	return tests, args.Get(1).(int64), args.Error(2)
}

func (m *mockTestRepo) Update(ctx context.Context, test *models.Test) error {
	return m.Called(ctx, test).Error(0)
}

func (m *mockTestRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockQuestionRepo struct{ mock.Mock }

func (m *mockQuestionRepo) Create(ctx context.Context, question *models.Question) error {
	return m.Called(ctx, question).Error(0)
}

func (m *mockQuestionRepo) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	args := m.Called(ctx, id)
	question, _ := args.Get(0).(*models.Question)
	return question, args.Error(1)
}

func (m *mockQuestionRepo) ListByTest(ctx context.Context, testID int64) ([]*models.Question, error) {
	args := m.Called(ctx, testID)
	questions, _ := args.Get(0).([]*models.Question)
	return questions, args.Error(1)
}

func (m *mockQuestionRepo) Update(ctx context.Context, question *models.Question) error {
	return m.Called(ctx, question).Error(0)
}

func (m *mockQuestionRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockAnswerRepo struct{ mock.Mock }

func (m *mockAnswerRepo) Create(ctx context.Context, answer *models.Answer) error {
	return m.Called(ctx, answer).Error(0)
}

func (m *mockAnswerRepo) GetByID(ctx context.Context, id int64) (*models.Answer, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Answer)
	return a, args.Error(1)
}

func (m *mockAnswerRepo) ListByQuestion(ctx context.Context, questionID int64) ([]*models.Answer, error) {
	args := m.Called(ctx, questionID)
	list, _ := args.Get(0).([]*models.Answer)
	return list, args.Error(1)
}

func (m *mockAnswerRepo) ListByTest(ctx context.Context, testID int64) ([]*models.Answer, error) {
	args := m.Called(ctx, testID)
	list, _ := args.Get(0).([]*models.Answer)
	return list, args.Error(1)
}

func (m *mockAnswerRepo) Update(ctx context.Context, answer *models.Answer) error {
	return m.Called(ctx, answer).Error(0)
}

func (m *mockAnswerRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockResultRepo struct{ mock.Mock }

func (m *mockResultRepo) Create(ctx context.Context, result *models.Result) error {
	return m.Called(ctx, result).Error(0)
}

func (m *mockResultRepo) CreateWithAnswers(ctx context.Context, result *models.Result) error {
	return m.Called(ctx, result).Error(0)
}

func (m *mockResultRepo) GetByID(ctx context.Context, id int64) (*models.Result, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*models.Result)
	return result, args.Error(1)
}

func (m *mockResultRepo) List(ctx context.Context, filter models.ResultFilter, page models.Page) ([]*models.Result, int64, error) {
	args := m.Called(ctx, filter, page)
	results, _ := args.Get(0).([]*models.Result)
	return results, args.Get(1).(int64), args.Error(2)
}

func (m *mockResultRepo) Update(ctx context.Context, result *models.Result) error {
	return m.Called(ctx, result).Error(0)
}

func (m *mockResultRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	token, _ := args.Get(0).(*models.RefreshToken)
	return token, args.Error(1)
}

func (m *mockTokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockTokenRepo) RevokeAllForUser(ctx context.Context, userID int64, roles ...models.Role) (int64, error) {
	args := m.Called(ctx, userID, roles)
	return args.Get(0).(int64), args.Error(1)
}

type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) Create(ctx context.Context, image *models.Image) error {
	return m.Called(ctx, image).Error(0)
}

func (m *mockImageRepo) GetByID(ctx context.Context, id int64) (*models.Image, error) {
	args := m.Called(ctx, id)
	image, _ := args.Get(0).(*models.Image)
	return image, args.Error(1)
}

func (m *mockImageRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockImageService struct{ mock.Mock }

func (m *mockImageService) GetImageByID(ctx context.Context, id int64) (*models.Image, error) {
	args := m.Called(ctx, id)
	image, _ := args.Get(0).(*models.Image)
	return image, args.Error(1)
}

func (m *mockImageService) Upload(ctx context.Context, file *multipart.FileHeader) (*models.Image, error) {
	args := m.Called(ctx, file)
	image, _ := args.Get(0).(*models.Image)
	return image, args.Error(1)
}

func (m *mockImageService) Discard(ctx context.Context, image *models.Image) {
	m.Called(ctx, image)
}

func (m *mockImageService) RemoveFile(image *models.Image) {
	m.Called(image)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, subject string, event interface{}) error {
	return m.Called(ctx, subject, event).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

type mockFileStorage struct{ mock.Mock }

func (m *mockFileStorage) Save(src io.Reader, originalName, subPath string) (*filestorage.StoredFile, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	args := m.Called(originalName, subPath)
	stored, _ := args.Get(0).(*filestorage.StoredFile)
	if stored != nil {
		copied := *stored
		copied.Size = int64(len(data))
		stored = &copied
	}
	return stored, args.Error(1)
}

func (m *mockFileStorage) DeleteFile(path string) error {
	return m.Called(path).Error(0)
}

func (m *mockFileStorage) GetFullPath(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}
