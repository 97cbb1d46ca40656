package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

const equipmentColumns = `id, name, department, status, last_maintenance, created_at, updated_at`

type equipmentRepository struct {
	BaseRepository
}

func NewEquipmentRepository(db *sqlx.DB) repository.EquipmentRepository {
	return &equipmentRepository{NewBaseRepository(db)}
}

func (r *equipmentRepository) Create(ctx context.Context, equipment *model.Equipment) error {
	query := `
		INSERT INTO equipment (` + equipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	equipment.Touch(time.Now().UTC())

	_, err := r.exec(ctx, "failed to create equipment", query,
		equipment.ID,
		equipment.Name,
		equipment.Department,
		equipment.Status,
		equipment.LastMaintenance,
		equipment.CreatedAt,
		equipment.UpdatedAt,
	)
	return err
}

func (r *equipmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`

	var equipment model.Equipment
	if err := r.get(ctx, &equipment, "Equipment", query, id); err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) List(ctx context.Context) ([]*model.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY name ASC`

	items := []*model.Equipment{}
	if err := r.selectAll(ctx, &items, "equipment", query); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *equipmentRepository) Update(ctx context.Context, equipment *model.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $1, department = $2, status = $3, last_maintenance = $4, updated_at = $5
		WHERE id = $6
	`
	equipment.UpdatedAt = time.Now().UTC()

	return r.update(ctx, "Equipment", query,
		equipment.Name,
		equipment.Department,
		equipment.Status,
		equipment.LastMaintenance,
		equipment.UpdatedAt,
		equipment.ID,
	)
}

func (r *equipmentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.delete(ctx, "Equipment", `DELETE FROM equipment WHERE id = $1`, id)
}
