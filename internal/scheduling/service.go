package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

const (
	MsgDoctorBooked       = "Doctor is already booked at this time"
	MsgAttendanceRecorded = "Attendance already logged for this shift"
)

// kind describes how one scheduled record type is checked and persisted.
type kind[T any] struct {
	name        string
	conflictMsg string
	policy      Policy[T]
	validate    func(T) error
	id          func(T) uuid.UUID
	clone       func(T) T
	// recheck reports whether an update moved the record into a state that
	// must be checked against its partition again.
	recheck  func(before, after T) bool
	findSlot func(context.Context, repository.SchedulingStore, T) ([]T, error)
	get      func(context.Context, repository.SchedulingStore, uuid.UUID) (T, error)
	insert   func(context.Context, repository.SchedulingStore, T) error
	update   func(context.Context, repository.SchedulingStore, T) error
	remove   func(context.Context, repository.SchedulingStore, uuid.UUID) (bool, error)
	events   [3]string // created, updated, deleted
}

var appointments = kind[*model.Appointment]{
	name:        "appointment",
	conflictMsg: MsgDoctorBooked,
	policy:      AppointmentPolicy,
	validate:    validateAppointment,
	id:          func(a *model.Appointment) uuid.UUID { return a.ID },
	clone:       func(a *model.Appointment) *model.Appointment { c := *a; return &c },
	recheck: func(before, after *model.Appointment) bool {
		return before.Status != after.Status ||
			before.DoctorID != after.DoctorID ||
			!before.Date.Equal(after.Date) ||
			before.Time != after.Time
	},
	findSlot: func(ctx context.Context, s repository.SchedulingStore, a *model.Appointment) ([]*model.Appointment, error) {
		return s.Appointments().FindSlot(ctx, a.Slot())
	},
	get: func(ctx context.Context, s repository.SchedulingStore, id uuid.UUID) (*model.Appointment, error) {
		return s.Appointments().Get(ctx, id)
	},
	insert: func(ctx context.Context, s repository.SchedulingStore, a *model.Appointment) error {
		return s.Appointments().Create(ctx, a)
	},
	update: func(ctx context.Context, s repository.SchedulingStore, a *model.Appointment) error {
		return s.Appointments().Update(ctx, a)
	},
	remove: func(ctx context.Context, s repository.SchedulingStore, id uuid.UUID) (bool, error) {
		return s.Appointments().Delete(ctx, id)
	},
	events: [3]string{model.EventAppointmentCreated, model.EventAppointmentUpdated, model.EventAppointmentDeleted},
}

var attendance = kind[*model.Attendance]{
	name:        "attendance",
	conflictMsg: MsgAttendanceRecorded,
	policy:      AttendancePolicy,
	validate:    validateAttendance,
	id:          func(a *model.Attendance) uuid.UUID { return a.ID },
	clone:       func(a *model.Attendance) *model.Attendance { c := *a; return &c },
	recheck: func(before, after *model.Attendance) bool {
		return before.StaffID != after.StaffID ||
			!before.Date.Equal(after.Date) ||
			before.Shift != after.Shift
	},
	findSlot: func(ctx context.Context, s repository.SchedulingStore, a *model.Attendance) ([]*model.Attendance, error) {
		return s.Attendance().FindSlot(ctx, a.Key())
	},
	get: func(ctx context.Context, s repository.SchedulingStore, id uuid.UUID) (*model.Attendance, error) {
		return s.Attendance().Get(ctx, id)
	},
	insert: func(ctx context.Context, s repository.SchedulingStore, a *model.Attendance) error {
		return s.Attendance().Create(ctx, a)
	},
	update: func(ctx context.Context, s repository.SchedulingStore, a *model.Attendance) error {
		return s.Attendance().Update(ctx, a)
	},
	remove: func(ctx context.Context, s repository.SchedulingStore, id uuid.UUID) (bool, error) {
		return s.Attendance().Delete(ctx, id)
	},
	events: [3]string{model.EventAttendanceCreated, model.EventAttendanceUpdated, model.EventAttendanceDeleted},
}

// Service is the single write path for appointments and attendance.
type Service struct {
	store   repository.Transactor
	metrics *metrics.Metrics
}

func NewService(store repository.Transactor, m *metrics.Metrics) *Service {
	return &Service{store: store, metrics: m}
}

// CreateAppointment books a slot. An empty status defaults to Scheduled.
func (s *Service) CreateAppointment(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	if a.Status == "" {
		a.Status = model.AppointmentStatusScheduled
	}
	return createScheduled(ctx, s, appointments, a)
}

func (s *Service) CreateAttendance(ctx context.Context, a *model.Attendance) (*model.Attendance, error) {
	return createScheduled(ctx, s, attendance, a)
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req model.UpdateAppointmentRequest) (*model.Appointment, error) {
	return updateScheduled(ctx, s, appointments, id, req.Apply)
}

func (s *Service) UpdateAttendance(ctx context.Context, id uuid.UUID, req model.UpdateAttendanceRequest) (*model.Attendance, error) {
	return updateScheduled(ctx, s, attendance, id, req.Apply)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteScheduled(ctx, s, appointments, id)
}

func (s *Service) DeleteAttendance(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteScheduled(ctx, s, attendance, id)
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.store.Appointments().Get(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.AppointmentDetail, error) {
	return s.store.Appointments().List(ctx)
}

func (s *Service) GetAttendance(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	return s.store.Attendance().Get(ctx, id)
}

func (s *Service) ListAttendance(ctx context.Context) ([]*model.AttendanceDetail, error) {
	return s.store.Attendance().List(ctx)
}

// ListAttendanceBetween lists records dated within [from, to]. A zero bound is
// open.
func (s *Service) ListAttendanceBetween(ctx context.Context, from, to model.Date) ([]*model.AttendanceDetail, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, apperrors.NewValidation("to must not be before from", nil)
	}
	return s.store.Attendance().ListBetween(ctx, from, to)
}

// createScheduled validates record, checks it against the records sharing its
// partition key and inserts it, all in one transaction. The unique index
// behind the insert settles races the pre-check cannot see.
func createScheduled[T any](ctx context.Context, s *Service, k kind[T], record T) (T, error) {
	var zero T
	if err := k.validate(record); err != nil {
		return zero, err
	}

	err := s.store.WithinTx(ctx, func(tx repository.SchedulingStore) error {
		if err := check(ctx, s, tx, k, record); err != nil {
			return err
		}
		if err := k.insert(ctx, tx, record); err != nil {
			return err
		}
		return emit(ctx, tx, k.events[0], k.id(record), record)
	})
	if err != nil {
		return zero, resolve(ctx, s, k, record, true, err)
	}
	return record, nil
}

func updateScheduled[T any](ctx context.Context, s *Service, k kind[T], id uuid.UUID, apply func(T)) (T, error) {
	var (
		updated T
		loaded  bool
	)
	err := s.store.WithinTx(ctx, func(tx repository.SchedulingStore) error {
		current, err := k.get(ctx, tx, id)
		if err != nil {
			return err
		}

		before := k.clone(current)
		apply(current)
		updated, loaded = current, true
		if err := k.validate(current); err != nil {
			return err
		}

		if k.recheck(before, current) {
			if err := check(ctx, s, tx, k, current); err != nil {
				return err
			}
		}

		if err := k.update(ctx, tx, current); err != nil {
			return err
		}
		return emit(ctx, tx, k.events[1], id, current)
	})
	if err != nil {
		var zero T
		return zero, resolve(ctx, s, k, updated, loaded, err)
	}
	return updated, nil
}

func deleteScheduled[T any](ctx context.Context, s *Service, k kind[T], id uuid.UUID) (bool, error) {
	var removed bool
	err := s.store.WithinTx(ctx, func(tx repository.SchedulingStore) error {
		var err error
		removed, err = k.remove(ctx, tx, id)
		if err != nil || !removed {
			return err
		}
		return emit(ctx, tx, k.events[2], id, map[string]uuid.UUID{"id": id})
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// check runs the policy against the stored records sharing record's key.
func check[T any](ctx context.Context, s *Service, store repository.SchedulingStore, k kind[T], record T) error {
	existing, err := k.findSlot(ctx, store, record)
	if err != nil {
		return err
	}
	if d := k.policy(record, existing); d.Conflict {
		s.metrics.SchedulingConflicts.WithLabelValues(k.name, "policy").Inc()
		return apperrors.NewConflict(k.conflictMsg, d.ConflictingID)
	}
	return nil
}

// resolve turns a failed write into the error returned to callers. A unique
// violation means a concurrent writer took the key between check and insert;
// the winner is looked up so the conflict still names it.
func resolve[T any](ctx context.Context, s *Service, k kind[T], record T, haveRecord bool, err error) error {
	if !errors.Is(err, repository.ErrDuplicate) {
		if _, ok := apperrors.As(err); ok {
			return err
		}
		return apperrors.NewStorage(fmt.Errorf("%s write failed: %w", k.name, err))
	}

	s.metrics.SchedulingConflicts.WithLabelValues(k.name, "constraint").Inc()
	log.Warn().Err(err).Str("kind", k.name).Msg("unique index rejected a write that passed the pre-check")

	var conflictID uuid.UUID
	if haveRecord {
		if existing, lookupErr := k.findSlot(ctx, s.store, record); lookupErr == nil {
			conflictID = k.policy(record, existing).ConflictingID
		}
	}
	return apperrors.NewConflict(k.conflictMsg, conflictID)
}

func emit(ctx context.Context, tx repository.SchedulingStore, eventType string, id uuid.UUID, payload interface{}) error {
	event, err := model.NewOutboxEvent(eventType, id, payload)
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to encode %s event: %w", eventType, err))
	}
	return tx.Outbox().Create(ctx, event)
}
