package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/dberrors"
	"github.com/yigit/eduadmin/internal/pkg/logger"
)

// ErrSubjectNameTaken is returned when a subject with the same name exists.
var ErrSubjectNameTaken = apperrors.NewConflictError("subject with this name already exists")

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSubject(row pgx.Row) (*models.Subject, error) {
	subject := &models.Subject{}
	err := row.Scan(&subject.ID, &subject.Name, &subject.Description, &subject.CreatedAt, &subject.UpdatedAt)
	return subject, err
}

// Create creates a new subject
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("subjects").
		Columns("name", "description", "created_at", "updated_at").
		Values(subject.Name, subject.Description, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create subject query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_name_key") {
			return ErrSubjectNameTaken
		}
		logger.Error().Err(err).Str("name", subject.Name).Msg("Error executing create subject query")
		return fmt.Errorf("error creating subject: %w", err)
	}

	return nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := r.sb.Select("id", "name", "description", "created_at", "updated_at").
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	subject, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error getting subject by ID: %w", err)
	}

	return subject, nil
}

// List retrieves one page of subjects ordered by name and the total count
func (r *SubjectRepository) List(ctx context.Context, page models.Page) ([]*models.Subject, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM subjects").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting subjects: %w", err)
	}

	sql, args, err := r.sb.Select("id", "name", "description", "created_at", "updated_at").
		From("subjects").
		OrderBy("name ASC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	subjects := []*models.Subject{}
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating subject rows: %w", err)
	}

	return subjects, total, nil
}

// Update updates an existing subject
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	sql, args, err := r.sb.Update("subjects").
		SetMap(map[string]interface{}{
			"name":        subject.Name,
			"description": subject.Description,
			"updated_at":  time.Now(),
		}).
		Where(squirrel.Eq{"id": subject.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subject query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&subject.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrSubjectNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "subjects_name_key") {
			return ErrSubjectNameTaken
		}
		return fmt.Errorf("error updating subject: %w", err)
	}

	return nil
}

// Delete deletes a subject together with its tests
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subject query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
