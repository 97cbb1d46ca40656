package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

// memStore is an in-memory Transactor that enforces the same unique rules
// as the postgres schema. Writes inside WithinTx are undone on error.
type memStore struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]model.Appointment
	attendance   map[uuid.UUID]model.Attendance
	events       []*model.OutboxEvent

	// afterFindSlot runs once after the next FindSlot, simulating a
	// concurrent writer that commits between check and insert.
	afterFindSlot func()
	failOutbox    error
}

func newMemStore() *memStore {
	return &memStore{
		appointments: make(map[uuid.UUID]model.Appointment),
		attendance:   make(map[uuid.UUID]model.Attendance),
	}
}

func (m *memStore) Appointments() repository.AppointmentRepository {
	return &memAppointments{store: m}
}

func (m *memStore) Attendance() repository.AttendanceRepository {
	return &memAttendance{store: m}
}

func (m *memStore) Outbox() repository.OutboxRepository {
	return &memOutbox{store: m}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(repository.SchedulingStore) error) error {
	tx := &memTx{store: m}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (m *memStore) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.EventType)
	}
	return types
}

func (m *memStore) fireAfterFindSlot() {
	m.mu.Lock()
	hook := m.afterFindSlot
	m.afterFindSlot = nil
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
}

type memTx struct {
	store *memStore
	undo  []func()
}

func (t *memTx) Appointments() repository.AppointmentRepository {
	return &memAppointments{store: t.store, tx: t}
}

func (t *memTx) Attendance() repository.AttendanceRepository {
	return &memAttendance{store: t.store, tx: t}
}

func (t *memTx) Outbox() repository.OutboxRepository {
	return &memOutbox{store: t.store, tx: t}
}

func (t *memTx) record(fn func()) {
	if t != nil {
		t.undo = append(t.undo, fn)
	}
}

func (t *memTx) rollback() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
}

type memAppointments struct {
	store *memStore
	tx    *memTx
}

func (r *memAppointments) takenBy(a *model.Appointment) bool {
	if a.Status != model.AppointmentStatusScheduled {
		return false
	}
	for id, e := range r.store.appointments {
		if id != a.ID && e.Status == model.AppointmentStatusScheduled &&
			e.DoctorID == a.DoctorID && e.Date.Equal(a.Date) && e.Time == a.Time {
			return true
		}
	}
	return false
}

func (r *memAppointments) Create(ctx context.Context, a *model.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if r.takenBy(a) {
		return fmt.Errorf("insert appointment: %w", repository.ErrDuplicate)
	}
	a.Touch(time.Now())
	r.store.appointments[a.ID] = *a
	id := a.ID
	r.tx.record(func() { delete(r.store.appointments, id) })
	return nil
}

func (r *memAppointments) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.appointments[id]
	if !ok {
		return nil, apperrors.NewNotFound("Appointment", nil)
	}
	return &a, nil
}

func (r *memAppointments) List(ctx context.Context) ([]*model.AppointmentDetail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*model.AppointmentDetail, 0, len(r.store.appointments))
	for _, a := range r.store.appointments {
		out = append(out, &model.AppointmentDetail{Appointment: a})
	}
	return out, nil
}

func (r *memAppointments) FindSlot(ctx context.Context, slot model.SlotKey) ([]*model.Appointment, error) {
	r.store.mu.Lock()
	var out []*model.Appointment
	for _, a := range r.store.appointments {
		if a.DoctorID == slot.DoctorID && a.Date.Equal(slot.Date) && a.Time == slot.Time {
			a := a
			out = append(out, &a)
		}
	}
	r.store.mu.Unlock()
	r.store.fireAfterFindSlot()
	return out, nil
}

func (r *memAppointments) Update(ctx context.Context, a *model.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.appointments[a.ID]
	if !ok {
		return apperrors.NewNotFound("Appointment", nil)
	}
	if r.takenBy(a) {
		return fmt.Errorf("update appointment: %w", repository.ErrDuplicate)
	}
	a.UpdatedAt = time.Now()
	r.store.appointments[a.ID] = *a
	r.tx.record(func() { r.store.appointments[prev.ID] = prev })
	return nil
}

func (r *memAppointments) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.appointments[id]
	if !ok {
		return false, nil
	}
	delete(r.store.appointments, id)
	r.tx.record(func() { r.store.appointments[id] = prev })
	return true, nil
}

type memAttendance struct {
	store *memStore
	tx    *memTx
}

func (r *memAttendance) takenBy(a *model.Attendance) bool {
	for id, e := range r.store.attendance {
		if id != a.ID && e.StaffID == a.StaffID && e.Date.Equal(a.Date) && e.Shift == a.Shift {
			return true
		}
	}
	return false
}

func (r *memAttendance) Create(ctx context.Context, a *model.Attendance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if r.takenBy(a) {
		return fmt.Errorf("insert attendance: %w", repository.ErrDuplicate)
	}
	a.Touch(time.Now())
	r.store.attendance[a.ID] = *a
	id := a.ID
	r.tx.record(func() { delete(r.store.attendance, id) })
	return nil
}

func (r *memAttendance) Get(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.attendance[id]
	if !ok {
		return nil, apperrors.NewNotFound("Attendance record", nil)
	}
	return &a, nil
}

func (r *memAttendance) List(ctx context.Context) ([]*model.AttendanceDetail, error) {
	return r.ListBetween(ctx, model.Date{}, model.Date{})
}

func (r *memAttendance) ListBetween(ctx context.Context, from, to model.Date) ([]*model.AttendanceDetail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*model.AttendanceDetail
	for _, a := range r.store.attendance {
		if !from.IsZero() && a.Date.Before(from) {
			continue
		}
		if !to.IsZero() && to.Before(a.Date) {
			continue
		}
		out = append(out, &model.AttendanceDetail{Attendance: a})
	}
	return out, nil
}

func (r *memAttendance) FindSlot(ctx context.Context, key model.ShiftKey) ([]*model.Attendance, error) {
	r.store.mu.Lock()
	var out []*model.Attendance
	for _, a := range r.store.attendance {
		if a.StaffID == key.StaffID && a.Date.Equal(key.Date) && a.Shift == key.Shift {
			a := a
			out = append(out, &a)
		}
	}
	r.store.mu.Unlock()
	r.store.fireAfterFindSlot()
	return out, nil
}

func (r *memAttendance) Update(ctx context.Context, a *model.Attendance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.attendance[a.ID]
	if !ok {
		return apperrors.NewNotFound("Attendance record", nil)
	}
	if r.takenBy(a) {
		return fmt.Errorf("update attendance: %w", repository.ErrDuplicate)
	}
	a.UpdatedAt = time.Now()
	r.store.attendance[a.ID] = *a
	r.tx.record(func() { r.store.attendance[prev.ID] = prev })
	return nil
}

func (r *memAttendance) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.attendance[id]
	if !ok {
		return false, nil
	}
	delete(r.store.attendance, id)
	r.tx.record(func() { r.store.attendance[id] = prev })
	return true, nil
}

type memOutbox struct {
	store *memStore
	tx    *memTx
}

func (r *memOutbox) Create(ctx context.Context, event *model.OutboxEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failOutbox != nil {
		return r.store.failOutbox
	}
	r.store.events = append(r.store.events, event)
	n := len(r.store.events) - 1
	r.tx.record(func() { r.store.events = r.store.events[:n] })
	return nil
}

func (r *memOutbox) ClaimPending(ctx context.Context, limit, maxRetries int, lease time.Duration) ([]*model.OutboxEvent, error) {
	return nil, nil
}

func (r *memOutbox) MarkProcessed(ctx context.Context, id uuid.UUID) error { return nil }

func (r *memOutbox) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error { return nil }

func (r *memOutbox) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}
