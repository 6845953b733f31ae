package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
)

func TestGroupService(t *testing.T) {
	ctx := context.Background()
	firstPage := models.Page{Offset: 0, Limit: 10}

	t.Run("admin creates", func(t *testing.T) {
		groups := &mockGroupRepo{}
		svc := NewGroupService(groups, &mockStudentRepo{}, zerolog.Nop())
		groups.On("Create", ctx, mock.MatchedBy(func(g *models.Group) bool {
			return g.Name == "CS-101" && g.Description == nil
		})).Return(nil)

		group, err := svc.CreateGroup(ctx, plainAdmin, &dto.CreateGroupRequest{Name: " CS-101 ", Description: strPtr("  ")})
		require.NoError(t, err)
		assert.Equal(t, "CS-101", group.Name)
		groups.AssertExpectations(t)
	})

	t.Run("teacher and student cannot create", func(t *testing.T) {
		groups := &mockGroupRepo{}
		svc := NewGroupService(groups, &mockStudentRepo{}, zerolog.Nop())

		_, err := svc.CreateGroup(ctx, teacher7, &dto.CreateGroupRequest{Name: "G"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		_, err = svc.CreateGroup(ctx, student11, &dto.CreateGroupRequest{Name: "G"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		groups.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate name", func(t *testing.T) {
		groups := &mockGroupRepo{}
		svc := NewGroupService(groups, &mockStudentRepo{}, zerolog.Nop())
		groups.On("Create", ctx, mock.Anything).Return(apperrors.NewConflictError("group with this name already exists"))

		_, err := svc.CreateGroup(ctx, plainAdmin, &dto.CreateGroupRequest{Name: "CS-101"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("blank name on update", func(t *testing.T) {
		groups := &mockGroupRepo{}
		svc := NewGroupService(groups, &mockStudentRepo{}, zerolog.Nop())
		groups.On("GetByID", ctx, int64(1)).Return(&models.Group{ID: 1, Name: "CS-101"}, nil)

		_, err := svc.UpdateGroup(ctx, plainAdmin, 1, &dto.UpdateGroupRequest{Name: strPtr("   ")})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		groups.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("students of a group", func(t *testing.T) {
		groups := &mockGroupRepo{}
		students := &mockStudentRepo{}
		svc := NewGroupService(groups, students, zerolog.Nop())
		groupID := int64(1)
		groups.On("Exists", ctx, groupID).Return(true, nil)
		students.On("List", ctx, models.StudentFilter{GroupID: &groupID}, firstPage).
			Return([]*models.Student{{ID: 11, GroupID: &groupID}}, int64(1), nil)

		list, total, err := svc.GetGroupStudents(ctx, teacher7, groupID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, list, 1)

		_, _, err = svc.GetGroupStudents(ctx, student11, groupID, 1, 10)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("students of a missing group", func(t *testing.T) {
		groups := &mockGroupRepo{}
		students := &mockStudentRepo{}
		svc := NewGroupService(groups, students, zerolog.Nop())
		groups.On("Exists", ctx, int64(99)).Return(false, nil)

		_, _, err := svc.GetGroupStudents(ctx, plainAdmin, 99, 1, 10)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
		students.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete is admin only", func(t *testing.T) {
		groups := &mockGroupRepo{}
		svc := NewGroupService(groups, &mockStudentRepo{}, zerolog.Nop())
		groups.On("Delete", ctx, int64(1)).Return(nil)

		assert.ErrorIs(t, svc.DeleteGroup(ctx, teacher7, 1), apperrors.ErrPermissionDenied)
		require.NoError(t, svc.DeleteGroup(ctx, plainAdmin, 1))
		groups.AssertNumberOfCalls(t, "Delete", 1)
	})
}

func TestSubjectService(t *testing.T) {
	ctx := context.Background()
	firstPage := models.Page{Offset: 0, Limit: 10}

	t.Run("any authenticated user lists", func(t *testing.T) {
		subjects := &mockSubjectRepo{}
		svc := NewSubjectService(subjects, zerolog.Nop())
		subjects.On("List", ctx, firstPage).Return([]*models.Subject{{ID: 1, Name: "Math"}}, int64(1), nil)

		list, total, err := svc.GetSubjects(ctx, student11, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, list, 1)

		_, _, err = svc.GetSubjects(ctx, nil, 1, 10)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("teacher cannot create or delete", func(t *testing.T) {
		subjects := &mockSubjectRepo{}
		svc := NewSubjectService(subjects, zerolog.Nop())

		_, err := svc.CreateSubject(ctx, teacher7, &dto.CreateSubjectRequest{Name: "Math"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, svc.DeleteSubject(ctx, teacher7, 1), apperrors.ErrPermissionDenied)
		subjects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		subjects.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("rename to an existing name", func(t *testing.T) {
		subjects := &mockSubjectRepo{}
		svc := NewSubjectService(subjects, zerolog.Nop())
		subjects.On("GetByID", ctx, int64(2)).Return(&models.Subject{ID: 2, Name: "Physics"}, nil)
		subjects.On("Update", ctx, mock.MatchedBy(func(s *models.Subject) bool { return s.Name == "Math" })).
			Return(apperrors.NewConflictError("subject with this name already exists"))

		_, err := svc.UpdateSubject(ctx, plainAdmin, 2, &dto.UpdateSubjectRequest{Name: strPtr("Math")})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("missing subject", func(t *testing.T) {
		subjects := &mockSubjectRepo{}
		svc := NewSubjectService(subjects, zerolog.Nop())
		subjects.On("GetByID", ctx, int64(9)).Return(nil, apperrors.ErrSubjectNotFound)

		_, err := svc.GetSubjectByID(ctx, teacher7, 9)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}
