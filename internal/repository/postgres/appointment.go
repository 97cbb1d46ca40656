package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

const appointmentColumns = `id, patient_id, doctor_id, date, time, status, notes, created_at, updated_at`

// appointmentDetailQuery left-joins the referenced names so appointments whose
// patient or doctor was deleted are still listed.
const appointmentDetailQuery = `
	SELECT a.id, a.patient_id, a.doctor_id, a.date, a.time, a.status, a.notes,
		   a.created_at, a.updated_at,
		   COALESCE(p.name, '') AS patient_name,
		   COALESCE(s.name, '') AS doctor_name
	FROM appointments a
	LEFT JOIN patients p ON p.id = a.patient_id
	LEFT JOIN staff s ON s.id = a.doctor_id
`

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	appointment.Touch(time.Now().UTC())

	_, err := r.exec(ctx, "failed to create appointment", query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	return err
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appointment model.Appointment
	if err := r.get(ctx, &appointment, "Appointment", query, id); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.AppointmentDetail, error) {
	query := appointmentDetailQuery + ` ORDER BY a.date DESC, a.time DESC`

	appointments := []*model.AppointmentDetail{}
	if err := r.selectAll(ctx, &appointments, "appointments", query); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindSlot(ctx context.Context, slot model.SlotKey) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE doctor_id = $1 AND date = $2 AND time = $3
	`

	appointments := []*model.Appointment{}
	if err := r.selectAll(ctx, &appointments, "appointments in slot", query, slot.DoctorID, slot.Date, slot.Time); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = $1, doctor_id = $2, date = $3, time = $4,
			status = $5, notes = $6, updated_at = $7
		WHERE id = $8
	`
	appointment.UpdatedAt = time.Now().UTC()

	return r.update(ctx, "Appointment", query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		appointment.Notes,
		appointment.UpdatedAt,
		appointment.ID,
	)
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.delete(ctx, "Appointment", `DELETE FROM appointments WHERE id = $1`, id)
}
