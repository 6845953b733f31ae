package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/dberrors"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

var answerColumns = []string{"a.id", "a.question_id", "a.text", "a.is_correct", "a.created_at", "a.updated_at"}

func scanAnswer(row pgx.Row) (*models.Answer, error) {
	answer := &models.Answer{}
	err := row.Scan(&answer.ID, &answer.QuestionID, &answer.Text, &answer.IsCorrect, &answer.CreatedAt, &answer.UpdatedAt)
	return answer, err
}

func insertAnswer(ctx context.Context, q querier, sb squirrel.StatementBuilderType, answer *models.Answer, now time.Time) error {
	sql, args, err := sb.Insert("answers").
		Columns("question_id", "text", "is_correct", "created_at", "updated_at").
		Values(answer.QuestionID, answer.Text, answer.IsCorrect, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create answer query: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&answer.ID, &answer.CreatedAt, &answer.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyError(err, "answers_question_id_fkey") {
			return apperrors.ErrQuestionNotFound
		}
		return fmt.Errorf("error creating answer: %w", err)
	}
	return nil
}

// listAnswers returns answers joined with their question, filtered by where.
func listAnswers(ctx context.Context, q querier, sb squirrel.StatementBuilderType, where squirrel.Sqlizer) ([]*models.Answer, error) {
	sql, args, err := sb.Select(answerColumns...).
		From("answers a").
		Join("questions q ON q.id = a.question_id").
		Where(where).
		OrderBy("a.question_id ASC", "a.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list answers query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying answers: %w", err)
	}
	defer rows.Close()

	answers := []*models.Answer{}
	for rows.Next() {
		answer, err := scanAnswer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning answer row: %w", err)
		}
		answers = append(answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answer rows: %w", err)
	}

	return answers, nil
}

// AnswerRepository handles answer database operations
type AnswerRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new answer
func (r *AnswerRepository) Create(ctx context.Context, answer *models.Answer) error {
	return insertAnswer(ctx, r.db, r.sb, answer, time.Now())
}

// GetByID retrieves an answer by ID
func (r *AnswerRepository) GetByID(ctx context.Context, id int64) (*models.Answer, error) {
	sql, args, err := r.sb.Select(answerColumns...).
		From("answers a").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get answer query: %w", err)
	}

	answer, err := scanAnswer(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnswerNotFound
		}
		return nil, fmt.Errorf("error getting answer by ID: %w", err)
	}

	return answer, nil
}

// ListByQuestion retrieves the answers of a question
func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID int64) ([]*models.Answer, error) {
	return listAnswers(ctx, r.db, r.sb, squirrel.Eq{"a.question_id": questionID})
}

// ListByTest retrieves every answer of every question of a test
func (r *AnswerRepository) ListByTest(ctx context.Context, testID int64) ([]*models.Answer, error) {
	return listAnswers(ctx, r.db, r.sb, squirrel.Eq{"q.test_id": testID})
}

// Update updates text and correctness of an answer
func (r *AnswerRepository) Update(ctx context.Context, answer *models.Answer) error {
	sql, args, err := r.sb.Update("answers").
		SetMap(map[string]interface{}{
			"text":       answer.Text,
			"is_correct": answer.IsCorrect,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": answer.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update answer query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&answer.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrAnswerNotFound
		}
		return fmt.Errorf("error updating answer: %w", err)
	}

	return nil
}

// Delete deletes an answer
func (r *AnswerRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("answers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete answer query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting answer: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnswerNotFound
	}

	return nil
}
