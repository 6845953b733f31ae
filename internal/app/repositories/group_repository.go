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

// ErrGroupNameTaken is returned when a group with the same name exists.
var ErrGroupNameTaken = apperrors.NewConflictError("group with this name already exists")

const studentsCountColumn = "(SELECT COUNT(*) FROM students s WHERE s.group_id = g.id) AS students_count"

// GroupRepository handles group database operations
type GroupRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *GroupRepository) selectGroups() squirrel.SelectBuilder {
	return r.sb.Select("g.id", "g.name", "g.description", "g.created_at", "g.updated_at", studentsCountColumn).
		From("groups g")
}

func scanGroup(row pgx.Row) (*models.Group, error) {
	group := &models.Group{}
	err := row.Scan(&group.ID, &group.Name, &group.Description, &group.CreatedAt, &group.UpdatedAt, &group.StudentsCount)
	return group, err
}

// Create creates a new group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("groups").
		Columns("name", "description", "created_at", "updated_at").
		Values(group.Name, group.Description, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create group SQL")
		return fmt.Errorf("failed to build create group query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "groups_name_key") {
			return ErrGroupNameTaken
		}
		logger.Error().Err(err).Str("name", group.Name).Msg("Error executing create group query")
		return fmt.Errorf("error creating group: %w", err)
	}

	return nil
}

// GetByID retrieves a group with its students count
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	sql, args, err := r.selectGroups().Where(squirrel.Eq{"g.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get group query: %w", err)
	}

	group, err := scanGroup(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		logger.Error().Err(err).Int64("groupID", id).Msg("Error scanning group row")
		return nil, fmt.Errorf("error getting group by ID: %w", err)
	}

	return group, nil
}

// Exists reports whether a group with id exists
func (r *GroupRepository) Exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("groups").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build group exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking group existence: %w", err)
	}
	return exists, nil
}

// List retrieves one page of groups ordered by name and the total count
func (r *GroupRepository) List(ctx context.Context, page models.Page) ([]*models.Group, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM groups").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting groups: %w", err)
	}

	sql, args, err := r.selectGroups().
		OrderBy("g.name ASC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list groups query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list groups query")
		return nil, 0, fmt.Errorf("error querying groups: %w", err)
	}
	defer rows.Close()

	groups := []*models.Group{}
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning group row: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating group rows: %w", err)
	}

	return groups, total, nil
}

// Update updates an existing group
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	sql, args, err := r.sb.Update("groups").
		SetMap(map[string]interface{}{
			"name":        group.Name,
			"description": group.Description,
			"updated_at":  time.Now(),
		}).
		Where(squirrel.Eq{"id": group.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update group query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&group.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrGroupNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "groups_name_key") {
			return ErrGroupNameTaken
		}
		logger.Error().Err(err).Int64("groupID", group.ID).Msg("Error executing update group query")
		return fmt.Errorf("error updating group: %w", err)
	}

	return nil
}

// Delete deletes a group. Its students stay with group_id = NULL.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("groups").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete group query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("groupID", id).Msg("Error executing delete group query")
		return fmt.Errorf("error deleting group: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}
