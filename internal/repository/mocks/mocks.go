// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

var (
	_ repository.UserRepository      = (*UserRepository)(nil)
	_ repository.StaffRepository     = (*StaffRepository)(nil)
	_ repository.PatientRepository   = (*PatientRepository)(nil)
	_ repository.EquipmentRepository = (*EquipmentRepository)(nil)
	_ repository.DashboardRepository = (*DashboardRepository)(nil)
)

// get unpacks a (*T, error) return.
func get[T any](args mock.Arguments) (*T, error) {
	v, _ := args.Get(0).(*T)
	return v, args.Error(1)
}

func list[T any](args mock.Arguments) ([]*T, error) {
	v, _ := args.Get(0).([]*T)
	return v, args.Error(1)
}

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return get[model.User](m.Called(ctx, id))
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return get[model.User](m.Called(ctx, username))
}

func (m *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	return list[model.User](m.Called(ctx))
}

func (m *UserRepository) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type StaffRepository struct{ mock.Mock }

func (m *StaffRepository) Create(ctx context.Context, staff *model.Staff) error {
	return m.Called(ctx, staff).Error(0)
}

func (m *StaffRepository) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	return get[model.Staff](m.Called(ctx, id))
}

func (m *StaffRepository) List(ctx context.Context) ([]*model.Staff, error) {
	return list[model.Staff](m.Called(ctx))
}

func (m *StaffRepository) Update(ctx context.Context, staff *model.Staff) error {
	return m.Called(ctx, staff).Error(0)
}

func (m *StaffRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *StaffRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type PatientRepository struct{ mock.Mock }

func (m *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *PatientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return get[model.Patient](m.Called(ctx, id))
}

func (m *PatientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	return list[model.Patient](m.Called(ctx))
}

func (m *PatientRepository) Update(ctx context.Context, patient *model.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *PatientRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type EquipmentRepository struct{ mock.Mock }

func (m *EquipmentRepository) Create(ctx context.Context, equipment *model.Equipment) error {
	return m.Called(ctx, equipment).Error(0)
}

func (m *EquipmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	return get[model.Equipment](m.Called(ctx, id))
}

func (m *EquipmentRepository) List(ctx context.Context) ([]*model.Equipment, error) {
	return list[model.Equipment](m.Called(ctx))
}

func (m *EquipmentRepository) Update(ctx context.Context, equipment *model.Equipment) error {
	return m.Called(ctx, equipment).Error(0)
}

func (m *EquipmentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type DashboardRepository struct{ mock.Mock }

func (m *DashboardRepository) Stats(ctx context.Context, today model.Date) (*model.DashboardStats, error) {
	return get[model.DashboardStats](m.Called(ctx, today))
}

func (m *DashboardRepository) RecentAppointments(ctx context.Context, limit int) ([]*model.AppointmentDetail, error) {
	return list[model.AppointmentDetail](m.Called(ctx, limit))
}
