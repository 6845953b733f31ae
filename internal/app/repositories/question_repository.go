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
	"github.com/yigit/eduadmin/internal/db"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/dberrors"
)

// QuestionRepository handles question database operations
type QuestionRepository struct {
	database *db.PostgresDB
	db       *pgxpool.Pool
	sb       squirrel.StatementBuilderType
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(database *db.PostgresDB) *QuestionRepository {
	return &QuestionRepository{
		database: database,
		db:       database.Pool,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanQuestion(row pgx.Row) (*models.Question, error) {
	question := &models.Question{}
	err := row.Scan(&question.ID, &question.TestID, &question.Text, &question.CreatedAt, &question.UpdatedAt)
	return question, err
}

// Create inserts a question together with its initial answers in one transaction
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		now := time.Now()
		sql, args, err := r.sb.Insert("questions").
			Columns("test_id", "text", "created_at", "updated_at").
			Values(question.TestID, question.Text, now, now).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create question query: %w", err)
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
		if err != nil {
			if dberrors.IsForeignKeyError(err, "questions_test_id_fkey") {
				return apperrors.ErrTestNotFound
			}
			return fmt.Errorf("error creating question: %w", err)
		}

		for _, answer := range question.Answers {
			answer.QuestionID = question.ID
			if err := insertAnswer(ctx, tx, r.sb, answer, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a question with its answers
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	sql, args, err := r.sb.Select("id", "test_id", "text", "created_at", "updated_at").
		From("questions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get question query: %w", err)
	}

	question, err := scanQuestion(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error getting question by ID: %w", err)
	}

	answers, err := listAnswers(ctx, r.db, r.sb, squirrel.Eq{"a.question_id": id})
	if err != nil {
		return nil, err
	}
	question.Answers = answers

	return question, nil
}

// ListByTest retrieves all questions of a test with their answers, in creation order
func (r *QuestionRepository) ListByTest(ctx context.Context, testID int64) ([]*models.Question, error) {
	sql, args, err := r.sb.Select("id", "test_id", "text", "created_at", "updated_at").
		From("questions").
		Where(squirrel.Eq{"test_id": testID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list questions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying questions: %w", err)
	}
	defer rows.Close()

	questions := []*models.Question{}
	byID := map[int64]*models.Question{}
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}
		question.Answers = []*models.Answer{}
		questions = append(questions, question)
		byID[question.ID] = question
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}

	if len(questions) == 0 {
		return questions, nil
	}

	answers, err := listAnswers(ctx, r.db, r.sb, squirrel.Eq{"q.test_id": testID})
	if err != nil {
		return nil, err
	}
	for _, answer := range answers {
		if q, ok := byID[answer.QuestionID]; ok {
			q.Answers = append(q.Answers, answer)
		}
	}

	return questions, nil
}

// Update changes the question text
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	sql, args, err := r.sb.Update("questions").
		Set("text", question.Text).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": question.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update question query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&question.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrQuestionNotFound
		}
		return fmt.Errorf("error updating question: %w", err)
	}

	return nil
}

// Delete deletes a question with its answers
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("questions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete question query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}
