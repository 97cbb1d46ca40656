package staff

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository/mocks"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

func TestUpdateAppliesOnlySetFields(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := &mocks.StaffRepository{}
	repo.On("Get", ctx, id).Return(&model.Staff{
		Base:        model.Base{ID: id},
		Name:        "Dr. Rao",
		Designation: model.DesignationDoctor,
		Department:  "Cardiology",
		Contact:     "555-0100",
	}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*model.Staff")).Return(nil)

	dept := "Neurology"
	staff, err := NewService(repo).Update(ctx, id, model.UpdateStaffRequest{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Rao", staff.Name)
	assert.Equal(t, "Neurology", staff.Department)
	assert.Equal(t, model.DesignationDoctor, staff.Designation)
}

func TestUpdateMissingStaff(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := &mocks.StaffRepository{}
	repo.On("Get", ctx, id).Return(nil, apperrors.NewNotFound("Staff", nil))

	_, err := NewService(repo).Update(ctx, id, model.UpdateStaffRequest{})
	assert.True(t, apperrors.IsNotFound(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteStaff(t *testing.T) {
	ctx := context.Background()
	present, missing := uuid.New(), uuid.New()
	repo := &mocks.StaffRepository{}
	repo.On("Delete", ctx, present).Return(true, nil)
	repo.On("Delete", ctx, missing).Return(false, nil)
	svc := NewService(repo)

	assert.NoError(t, svc.Delete(ctx, present))
	err := svc.Delete(ctx, missing)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Staff not found", err.Error())
}
