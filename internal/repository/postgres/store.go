package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/repository"
)

// Store hands out the scheduling repositories, either bound to the pool or
// to a single transaction.
type Store struct {
	BaseRepository
	appointments repository.AppointmentRepository
	attendance   repository.AttendanceRepository
	outbox       repository.OutboxRepository
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		BaseRepository: NewBaseRepository(db),
		appointments:   NewAppointmentRepository(db),
		attendance:     NewAttendanceRepository(db),
		outbox:         NewOutboxRepository(db),
	}
}

func (s *Store) Appointments() repository.AppointmentRepository { return s.appointments }
func (s *Store) Attendance() repository.AttendanceRepository { return s.attendance }
func (s *Store) Outbox() repository.OutboxRepository { return s.outbox }

// WithinTx runs fn against repositories sharing one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.SchedulingStore) error) error {
	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		base := newTxBase(s.db, tx)
		return fn(&txStore{
			appointments: &appointmentRepository{base},
			attendance:   &attendanceRepository{base},
			outbox:       &outboxRepository{base},
		})
	})
}

type txStore struct {
	appointments repository.AppointmentRepository
	attendance   repository.AttendanceRepository
	outbox       repository.OutboxRepository
}

func (s *txStore) Appointments() repository.AppointmentRepository { return s.appointments }
func (s *txStore) Attendance() repository.AttendanceRepository     { return s.attendance }
func (s *txStore) Outbox() repository.OutboxRepository             { return s.outbox }
