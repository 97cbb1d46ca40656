package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-admin/internal/model"
)

// ErrDuplicate is wrapped by Create and Update when a unique constraint rejects the write.
var ErrDuplicate = errors.New("duplicate key")

// All repository interfaces in one file.
//
// Get returns a NotFound application error for unknown IDs. Update returns
// NotFound when no row matched. Delete reports whether a row was removed.
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		List(ctx context.Context) ([]*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) (bool, error)
	}

	StaffRepository interface {
		Create(ctx context.Context, staff *model.Staff) error
		Get(ctx context.Context, id uuid.UUID) (*model.Staff, error)
		List(ctx context.Context) ([]*model.Staff, error)
		Update(ctx context.Context, staff *model.Staff) error
		Delete(ctx context.Context, id uuid.UUID) (bool, error)
		Count(ctx context.Context) (int, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) (bool, error)
	}

	EquipmentRepository interface {
		Create(ctx context.Context, equipment *model.Equipment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error)
		List(ctx context.Context) ([]*model.Equipment, error)
		Update(ctx context.Context, equipment *model.Equipment) error
		Delete(ctx context.Context, id uuid.UUID) (bool, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context) ([]*model.AppointmentDetail, error)
		// FindSlot returns every appointment, in any status, booked for the slot.
		FindSlot(ctx context.Context, slot model.SlotKey) ([]*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) (bool, error)
	}

	AttendanceRepository interface {
		Create(ctx context.Context, attendance *model.Attendance) error
		Get(ctx context.Context, id uuid.UUID) (*model.Attendance, error)
		List(ctx context.Context) ([]*model.AttendanceDetail, error)
		ListBetween(ctx context.Context, from, to model.Date) ([]*model.AttendanceDetail, error)
		FindSlot(ctx context.Context, key model.ShiftKey) ([]*model.Attendance, error)
		Update(ctx context.Context, attendance *model.Attendance) error
		Delete(ctx context.Context, id uuid.UUID) (bool, error)
	}

	DashboardRepository interface {
		Stats(ctx context.Context, today model.Date) (*model.DashboardStats, error)
		RecentAppointments(ctx context.Context, limit int) ([]*model.AppointmentDetail, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		// ClaimPending marks up to limit publishable events as processing and returns them.
		// Events left in processing for longer than lease are publishable again.
		ClaimPending(ctx context.Context, limit, maxRetries int, lease time.Duration) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}

	// SchedulingStore is the set of repositories a scheduling write touches.
	// Inside Transactor.WithinTx all of them share one transaction.
	SchedulingStore interface {
		Appointments() AppointmentRepository
		Attendance() AttendanceRepository
		Outbox() OutboxRepository
	}

	Transactor interface {
		SchedulingStore
		WithinTx(ctx context.Context, fn func(SchedulingStore) error) error
	}
)
