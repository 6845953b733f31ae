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

var studentColumns = []string{"s.id", "s.login", "s.password_hash", "s.full_name", "s.group_id", "s.image_id", "s.created_at", "s.updated_at", "g.name"}

// StudentRepository handles student database operations
type StudentRepository struct {
	base
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.PostgresDB) *StudentRepository {
	return &StudentRepository{base: newBase(database, "students", apperrors.ErrStudentNotFound)}
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, studentColumns...), joinedImageColumns...)...).
		From("students s").
		LeftJoin("groups g ON g.id = s.group_id").
		LeftJoin("images i ON i.id = s.image_id")
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	var groupName *string
	var img imageScan
	dest := append([]interface{}{
		&student.ID, &student.Login, &student.PasswordHash, &student.FullName,
		&student.GroupID, &student.ImageID, &student.CreatedAt, &student.UpdatedAt, &groupName,
	}, img.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	student.Image = img.image()
	if student.GroupID != nil && groupName != nil {
		student.Group = &models.Group{ID: *student.GroupID, Name: *groupName}
	}
	return student, nil
}

func studentWhere(filter models.StudentFilter) squirrel.And {
	where := squirrel.And{}
	if filter.GroupID != nil {
		where = append(where, squirrel.Eq{"s.group_id": *filter.GroupID})
	}
	return where
}

// Create inserts a student and fills in ID and timestamps
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("students").
		Columns("login", "password_hash", "full_name", "group_id", "image_id", "created_at", "updated_at").
		Values(student.Login, student.PasswordHash, student.FullName, student.GroupID, student.ImageID, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt); err != nil {
		return r.translateWriteError(err, "create student")
	}
	return nil
}

// GetByID retrieves a student with its group and image
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// List returns one page of students matching filter and the total count
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter, page models.Page) ([]*models.Student, int64, error) {
	where := studentWhere(filter)

	total, err := r.count(ctx, r.sb.Select("COUNT(*)").From("students s").Where(where))
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := r.selectStudents().
		Where(where).
		OrderBy("s.id ASC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, total, nil
}

// Update writes every mutable column of student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"login":         student.Login,
			"password_hash": student.PasswordHash,
			"full_name":     student.FullName,
			"group_id":      student.GroupID,
			"image_id":      student.ImageID,
			"updated_at":    time.Now(),
		}).
		Where(squirrel.Eq{"id": student.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudentNotFound
		}
		return r.translateWriteError(err, "update student")
	}
	return nil
}

// Delete removes the student, its results and its image row, returning the image
func (r *StudentRepository) Delete(ctx context.Context, id int64) (*models.Image, error) {
	return r.DeleteWithImage(ctx, id)
}

func (r *StudentRepository) GetCredentialsByLogin(ctx context.Context, login string) (*models.Credentials, error) {
	return r.credentials(ctx, squirrel.Eq{"login": login}, "'student'::text")
}

func (r *StudentRepository) GetCredentialsByID(ctx context.Context, id int64) (*models.Credentials, error) {
	return r.credentials(ctx, squirrel.Eq{"id": id}, "'student'::text")
}
