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

const questionsCountColumn = "(SELECT COUNT(*) FROM questions q WHERE q.test_id = t.id) AS questions_count"

// TestRepository handles test database operations
type TestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTestRepository creates a new TestRepository
func NewTestRepository(db *pgxpool.Pool) *TestRepository {
	return &TestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *TestRepository) selectTests() squirrel.SelectBuilder {
	return r.sb.Select(
		"t.id", "t.subject_id", "t.teacher_id", "t.title", "t.description",
		"t.duration_minutes", "t.is_active", "t.created_at", "t.updated_at",
		questionsCountColumn,
	).From("tests t")
}

func scanTest(row pgx.Row) (*models.Test, error) {
	test := &models.Test{}
	err := row.Scan(
		&test.ID, &test.SubjectID, &test.TeacherID, &test.Title, &test.Description,
		&test.DurationMinutes, &test.IsActive, &test.CreatedAt, &test.UpdatedAt,
		&test.QuestionsCount,
	)
	return test, err
}

func testWhere(filter models.TestFilter) squirrel.And {
	where := squirrel.And{}
	if filter.SubjectID != nil {
		where = append(where, squirrel.Eq{"t.subject_id": *filter.SubjectID})
	}
	if filter.TeacherID != nil {
		where = append(where, squirrel.Eq{"t.teacher_id": *filter.TeacherID})
	}
	if filter.OnlyActive {
		where = append(where, squirrel.Eq{"t.is_active": true})
	}
	return where
}

func translateTestWriteError(err error) error {
	switch {
	case dberrors.IsForeignKeyError(err, "tests_subject_id_fkey"):
		return apperrors.ErrSubjectNotFound
	case dberrors.IsForeignKeyError(err, "tests_teacher_id_fkey"):
		return apperrors.ErrTeacherNotFound
	}
	return err
}

// Create creates a new test
func (r *TestRepository) Create(ctx context.Context, test *models.Test) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("tests").
		Columns("subject_id", "teacher_id", "title", "description", "duration_minutes", "is_active", "created_at", "updated_at").
		Values(test.SubjectID, test.TeacherID, test.Title, test.Description, test.DurationMinutes, test.IsActive, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create test query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&test.ID, &test.CreatedAt, &test.UpdatedAt)
	if err != nil {
		if mapped := translateTestWriteError(err); mapped != err {
			return mapped
		}
		logger.Error().Err(err).Str("title", test.Title).Msg("Error executing create test query")
		return fmt.Errorf("error creating test: %w", err)
	}

	return nil
}

// GetByID retrieves a test with its questions count
func (r *TestRepository) GetByID(ctx context.Context, id int64) (*models.Test, error) {
	sql, args, err := r.selectTests().Where(squirrel.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get test query: %w", err)
	}

	test, err := scanTest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTestNotFound
		}
		logger.Error().Err(err).Int64("testID", id).Msg("Error scanning test row")
		return nil, fmt.Errorf("error getting test by ID: %w", err)
	}

	return test, nil
}

// List retrieves one page of tests matching filter, newest first, and the total count
func (r *TestRepository) List(ctx context.Context, filter models.TestFilter, page models.Page) ([]*models.Test, int64, error) {
	where := testWhere(filter)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("tests t").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count tests query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting tests: %w", err)
	}

	sql, args, err := r.selectTests().
		Where(where).
		OrderBy("t.created_at DESC", "t.id DESC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list tests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying tests: %w", err)
	}
	defer rows.Close()

	tests := []*models.Test{}
	for rows.Next() {
		test, err := scanTest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning test row: %w", err)
		}
		tests = append(tests, test)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating test rows: %w", err)
	}

	return tests, total, nil
}

// Update updates an existing test
func (r *TestRepository) Update(ctx context.Context, test *models.Test) error {
	sql, args, err := r.sb.Update("tests").
		SetMap(map[string]interface{}{
			"subject_id":       test.SubjectID,
			"title":            test.Title,
			"description":      test.Description,
			"duration_minutes": test.DurationMinutes,
			"is_active":        test.IsActive,
			"updated_at":       time.Now(),
		}).
		Where(squirrel.Eq{"id": test.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update test query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&test.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrTestNotFound
		}
		if mapped := translateTestWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("error updating test: %w", err)
	}

	return nil
}

// Delete deletes a test with its questions, answers and results
func (r *TestRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("tests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete test query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting test: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTestNotFound
	}

	return nil
}
