package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/db"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
)

var teacherColumns = []string{"t.id", "t.login", "t.password_hash", "t.full_name", "t.phone", "t.image_id", "t.created_at", "t.updated_at"}

// TeacherRepository handles teacher database operations
type TeacherRepository struct {
	base
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(database *db.PostgresDB) *TeacherRepository {
	return &TeacherRepository{base: newBase(database, "teachers", apperrors.ErrTeacherNotFound)}
}

func (r *TeacherRepository) selectTeachers() squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, teacherColumns...), joinedImageColumns...)...).
		From("teachers t").
		LeftJoin("images i ON i.id = t.image_id")
}

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	teacher := &models.Teacher{}
	var img imageScan
	dest := append([]interface{}{
		&teacher.ID, &teacher.Login, &teacher.PasswordHash, &teacher.FullName,
		&teacher.Phone, &teacher.ImageID, &teacher.CreatedAt, &teacher.UpdatedAt,
	}, img.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	teacher.Image = img.image()
	return teacher, nil
}

// Create inserts a teacher and fills in ID and timestamps
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("teachers").
		Columns("login", "password_hash", "full_name", "phone", "image_id", "created_at", "updated_at").
		Values(teacher.Login, teacher.PasswordHash, teacher.FullName, teacher.Phone, teacher.ImageID, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create teacher query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt); err != nil {
		return r.translateWriteError(err, "create teacher")
	}
	return nil
}

// GetByID retrieves a teacher with its image
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	sql, args, err := r.selectTeachers().Where(squirrel.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	return teacher, nil
}

// List returns one page of teachers ordered by ID and the total count
func (r *TeacherRepository) List(ctx context.Context, page models.Page) ([]*models.Teacher, int64, error) {
	total, err := r.count(ctx, r.sb.Select("COUNT(*)").From("teachers"))
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := r.selectTeachers().
		OrderBy("t.id ASC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying teachers: %w", err)
	}
	defer rows.Close()

	teachers := []*models.Teacher{}
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating teacher rows: %w", err)
	}

	return teachers, total, nil
}

// Update writes every mutable column of teacher
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Update("teachers").
		SetMap(map[string]interface{}{
			"login":         teacher.Login,
			"password_hash": teacher.PasswordHash,
			"full_name":     teacher.FullName,
			"phone":         teacher.Phone,
			"image_id":      teacher.ImageID,
			"updated_at":    time.Now(),
		}).
		Where(squirrel.Eq{"id": teacher.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update teacher query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&teacher.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrTeacherNotFound
		}
		return r.translateWriteError(err, "update teacher")
	}
	return nil
}

// Delete removes the teacher and its image row, returning the image.
// Tests the teacher owned keep existing with teacher_id = NULL.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) (*models.Image, error) {
	return r.DeleteWithImage(ctx, id)
}

func (r *TeacherRepository) GetCredentialsByLogin(ctx context.Context, login string) (*models.Credentials, error) {
	return r.credentials(ctx, squirrel.Eq{"login": login}, "'teacher'::text")
}

func (r *TeacherRepository) GetCredentialsByID(ctx context.Context, id int64) (*models.Credentials, error) {
	return r.credentials(ctx, squirrel.Eq{"id": id}, "'teacher'::text")
}
