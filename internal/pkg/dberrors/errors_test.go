package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "teachers_login_key"}

	assert.True(t, IsDuplicateConstraintError(dup, "teachers_login_key"))
	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert: %w", dup), ""))
	assert.False(t, IsDuplicateConstraintError(dup, "students_login_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), ""))
}

func TestIsForeignKeyError(t *testing.T) {
	fk := &pgconn.PgError{Code: CodeForeignKeyViolation, ConstraintName: "students_group_id_fkey"}

	assert.True(t, IsForeignKeyError(fk, "students_group_id_fkey"))
	assert.True(t, IsForeignKeyError(fk, ""))
	assert.False(t, IsForeignKeyError(fk, "tests_subject_id_fkey"))
	assert.False(t, IsForeignKeyError(&pgconn.PgError{Code: CodeUniqueViolation}, ""))
}
