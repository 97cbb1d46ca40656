package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

const staffColumns = `id, name, designation, department, contact, email, created_at, updated_at`

type staffRepository struct {
	BaseRepository
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{NewBaseRepository(db)}
}

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	query := `
		INSERT INTO staff (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	staff.Touch(time.Now().UTC())

	_, err := r.exec(ctx, "failed to create staff", query,
		staff.ID,
		staff.Name,
		staff.Designation,
		staff.Department,
		staff.Contact,
		staff.Email,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	return err
}

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`

	var staff model.Staff
	if err := r.get(ctx, &staff, "Staff", query, id); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context) ([]*model.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY name ASC`

	staff := []*model.Staff{}
	if err := r.selectAll(ctx, &staff, "staff", query); err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	query := `
		UPDATE staff
		SET name = $1, designation = $2, department = $3, contact = $4, email = $5, updated_at = $6
		WHERE id = $7
	`
	staff.UpdatedAt = time.Now().UTC()

	return r.update(ctx, "Staff", query,
		staff.Name,
		staff.Designation,
		staff.Department,
		staff.Contact,
		staff.Email,
		staff.UpdatedAt,
		staff.ID,
	)
}

// Delete removes only the staff row. Appointments and attendance that
// reference it are left untouched.
func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.delete(ctx, "Staff", `DELETE FROM staff WHERE id = $1`, id)
}

func (r *staffRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.get(ctx, &n, "Staff", `SELECT COUNT(*) FROM staff`); err != nil {
		return 0, err
	}
	return n, nil
}
