package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

type dashboardRepository struct {
	BaseRepository
}

func NewDashboardRepository(db *sqlx.DB) repository.DashboardRepository {
	return &dashboardRepository{NewBaseRepository(db)}
}

func (r *dashboardRepository) Stats(ctx context.Context, today model.Date) (*model.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM appointments WHERE date = $1) AS appointments_today,
			(SELECT COUNT(*) FROM attendance WHERE date = $1 AND status = 'Present') AS staff_on_duty,
			(SELECT COUNT(*) FROM staff) AS total_staff,
			(SELECT COUNT(*) FROM equipment WHERE status = 'Available') AS equipment_available,
			(SELECT COUNT(*) FROM equipment WHERE status = 'In Use') AS equipment_in_use,
			(SELECT COUNT(*) FROM equipment WHERE status = 'Maintenance') AS equipment_maintenance,
			(SELECT COUNT(*) FROM patients) AS total_patients
	`

	var stats model.DashboardStats
	if err := r.get(ctx, &stats, "Dashboard stats", query, today); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *dashboardRepository) RecentAppointments(ctx context.Context, limit int) ([]*model.AppointmentDetail, error) {
	query := appointmentDetailQuery + ` ORDER BY a.date DESC, a.time DESC LIMIT $1`

	appointments := []*model.AppointmentDetail{}
	if err := r.selectAll(ctx, &appointments, "recent appointments", query, limit); err != nil {
		return nil, err
	}
	return appointments, nil
}
