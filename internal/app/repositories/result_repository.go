package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/db"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/dberrors"
	"github.com/yigit/eduadmin/internal/pkg/logger"
)

var resultColumns = []string{"id", "test_id", "student_id", "correct_count", "total_count", "score", "created_at"}

// ResultRepository handles result database operations
type ResultRepository struct {
	database *db.PostgresDB
	db       *pgxpool.Pool
	sb       squirrel.StatementBuilderType
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(database *db.PostgresDB) *ResultRepository {
	return &ResultRepository{
		database: database,
		db:       database.Pool,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanResult(row pgx.Row) (*models.Result, error) {
	result := &models.Result{}
	err := row.Scan(
		&result.ID, &result.TestID, &result.StudentID,
		&result.CorrectCount, &result.TotalCount, &result.Score, &result.CreatedAt,
	)
	return result, err
}

func translateResultWriteError(err error) error {
	switch {
	case dberrors.IsForeignKeyError(err, "results_test_id_fkey"):
		return apperrors.ErrTestNotFound
	case dberrors.IsForeignKeyError(err, "results_student_id_fkey"):
		return apperrors.ErrStudentNotFound
	case dberrors.IsForeignKeyError(err, "result_answers_question_id_fkey"):
		return apperrors.ErrQuestionNotFound
	case dberrors.IsForeignKeyError(err, "result_answers_answer_id_fkey"):
		return apperrors.ErrAnswerNotFound
	case dberrors.IsDuplicateConstraintError(err, "result_answers_result_question_key"):
		return apperrors.NewConflictError("question answered more than once")
	}
	return nil
}

func (r *ResultRepository) insertResult(ctx context.Context, q querier, result *models.Result) error {
	sql, args, err := r.sb.Insert("results").
		Columns("test_id", "student_id", "correct_count", "total_count", "score").
		Values(result.TestID, result.StudentID, result.CorrectCount, result.TotalCount, result.Score).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create result query: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&result.ID, &result.CreatedAt); err != nil {
		if mapped := translateResultWriteError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Int64("testID", result.TestID).Int64("studentID", result.StudentID).Msg("Error executing create result query")
		return fmt.Errorf("error creating result: %w", err)
	}
	return nil
}

// Create stores a result entered directly, without per-question answers
func (r *ResultRepository) Create(ctx context.Context, result *models.Result) error {
	return r.insertResult(ctx, r.db, result)
}

// CreateWithAnswers stores a graded submission and its answers atomically
func (r *ResultRepository) CreateWithAnswers(ctx context.Context, result *models.Result) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.insertResult(ctx, tx, result); err != nil {
			return err
		}

		if len(result.Answers) == 0 {
			return nil
		}

		insert := r.sb.Insert("result_answers").
			Columns("result_id", "question_id", "answer_id", "is_correct").
			Suffix("RETURNING id")
		for _, answer := range result.Answers {
			answer.ResultID = result.ID
			insert = insert.Values(answer.ResultID, answer.QuestionID, answer.AnswerID, answer.IsCorrect)
		}

		sql, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create result answers query: %w", err)
		}

		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			if mapped := translateResultWriteError(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("error creating result answers: %w", err)
		}
		defer rows.Close()

		i := 0
		for rows.Next() {
			if err := rows.Scan(&result.Answers[i].ID); err != nil {
				return fmt.Errorf("error scanning result answer id: %w", err)
			}
			i++
		}
		if err := rows.Err(); err != nil {
			if mapped := translateResultWriteError(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("error creating result answers: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a result with its recorded answers
func (r *ResultRepository) GetByID(ctx context.Context, id int64) (*models.Result, error) {
	sql, args, err := r.sb.Select(resultColumns...).
		From("results").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get result query: %w", err)
	}

	result, err := scanResult(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResultNotFound
		}
		return nil, fmt.Errorf("error getting result by ID: %w", err)
	}

	answers, err := r.listAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	result.Answers = answers

	return result, nil
}

func (r *ResultRepository) listAnswers(ctx context.Context, resultID int64) ([]*models.ResultAnswer, error) {
	sql, args, err := r.sb.Select("id", "result_id", "question_id", "answer_id", "is_correct").
		From("result_answers").
		Where(squirrel.Eq{"result_id": resultID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list result answers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying result answers: %w", err)
	}
	defer rows.Close()

	answers := []*models.ResultAnswer{}
	for rows.Next() {
		answer := &models.ResultAnswer{}
		if err := rows.Scan(&answer.ID, &answer.ResultID, &answer.QuestionID, &answer.AnswerID, &answer.IsCorrect); err != nil {
			return nil, fmt.Errorf("error scanning result answer row: %w", err)
		}
		answers = append(answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result answer rows: %w", err)
	}

	return answers, nil
}

// List retrieves one page of results matching filter, newest first, and the total count
func (r *ResultRepository) List(ctx context.Context, filter models.ResultFilter, page models.Page) ([]*models.Result, int64, error) {
	where := squirrel.And{}
	if filter.TestID != nil {
		where = append(where, squirrel.Eq{"test_id": *filter.TestID})
	}
	if filter.StudentID != nil {
		where = append(where, squirrel.Eq{"student_id": *filter.StudentID})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("results").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count results query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting results: %w", err)
	}

	sql, args, err := r.sb.Select(resultColumns...).
		From("results").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying results: %w", err)
	}
	defer rows.Close()

	results := []*models.Result{}
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning result row: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating result rows: %w", err)
	}

	return results, total, nil
}

// Update rewrites the counts and score of a result
func (r *ResultRepository) Update(ctx context.Context, result *models.Result) error {
	sql, args, err := r.sb.Update("results").
		SetMap(map[string]interface{}{
			"correct_count": result.CorrectCount,
			"total_count":   result.TotalCount,
			"score":         result.Score,
		}).
		Where(squirrel.Eq{"id": result.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update result query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating result: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResultNotFound
	}

	return nil
}

// Delete deletes a result and its answers
func (r *ResultRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("results").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete result query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting result: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResultNotFound
	}

	return nil
}
