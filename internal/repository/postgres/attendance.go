package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

const attendanceColumns = `id, staff_id, date, shift, status, created_at, updated_at`

const attendanceDetailQuery = `
	SELECT t.id, t.staff_id, t.date, t.shift, t.status, t.created_at, t.updated_at,
		   COALESCE(s.name, '') AS staff_name,
		   COALESCE(s.designation, '') AS staff_designation
	FROM attendance t
	LEFT JOIN staff s ON s.id = t.staff_id
`

type attendanceRepository struct {
	BaseRepository
}

func NewAttendanceRepository(db *sqlx.DB) repository.AttendanceRepository {
	return &attendanceRepository{NewBaseRepository(db)}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *model.Attendance) error {
	query := `
		INSERT INTO attendance (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	attendance.Touch(time.Now().UTC())

	_, err := r.exec(ctx, "failed to create attendance", query,
		attendance.ID,
		attendance.StaffID,
		attendance.Date,
		attendance.Shift,
		attendance.Status,
		attendance.CreatedAt,
		attendance.UpdatedAt,
	)
	return err
}

func (r *attendanceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`

	var attendance model.Attendance
	if err := r.get(ctx, &attendance, "Attendance record", query, id); err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) List(ctx context.Context) ([]*model.AttendanceDetail, error) {
	query := attendanceDetailQuery + ` ORDER BY t.date DESC, t.shift ASC`

	records := []*model.AttendanceDetail{}
	if err := r.selectAll(ctx, &records, "attendance", query); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) ListBetween(ctx context.Context, from, to model.Date) ([]*model.AttendanceDetail, error) {
	query := attendanceDetailQuery + `
		WHERE ($1::date IS NULL OR t.date >= $1::date)
		  AND ($2::date IS NULL OR t.date <= $2::date)
		ORDER BY t.date ASC, s.name ASC, t.shift ASC
	`

	records := []*model.AttendanceDetail{}
	if err := r.selectAll(ctx, &records, "attendance", query, from, to); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) FindSlot(ctx context.Context, key model.ShiftKey) ([]*model.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE staff_id = $1 AND date = $2 AND shift = $3
	`

	records := []*model.Attendance{}
	if err := r.selectAll(ctx, &records, "attendance for shift", query, key.StaffID, key.Date, key.Shift); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) Update(ctx context.Context, attendance *model.Attendance) error {
	query := `
		UPDATE attendance
		SET staff_id = $1, date = $2, shift = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	attendance.UpdatedAt = time.Now().UTC()

	return r.update(ctx, "Attendance record", query,
		attendance.StaffID,
		attendance.Date,
		attendance.Shift,
		attendance.Status,
		attendance.UpdatedAt,
		attendance.ID,
	)
}

func (r *attendanceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.delete(ctx, "Attendance record", `DELETE FROM attendance WHERE id = $1`, id)
}
