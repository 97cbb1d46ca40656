package model

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "Available"
	EquipmentStatusInUse       EquipmentStatus = "In Use"
	EquipmentStatusMaintenance EquipmentStatus = "Maintenance"
)

type Equipment struct {
	Base
	Name            string          `db:"name" json:"name"`
	Department      string          `db:"department" json:"department"`
	Status          EquipmentStatus `db:"status" json:"status"`
	LastMaintenance *Date           `db:"last_maintenance" json:"last_maintenance,omitempty"`
}

type CreateEquipmentRequest struct {
	Name            string          `json:"name" binding:"required,max=200"`
	Department      string          `json:"department" binding:"required,max=200"`
	Status          EquipmentStatus `json:"status" binding:"omitempty,oneof=Available 'In Use' Maintenance"`
	LastMaintenance *Date           `json:"last_maintenance"`
}

func (r CreateEquipmentRequest) ToEquipment() *Equipment {
	status := r.Status
	if status == "" {
		status = EquipmentStatusAvailable
	}
	return &Equipment{
		Name:            r.Name,
		Department:      r.Department,
		Status:          status,
		LastMaintenance: r.LastMaintenance,
	}
}

type UpdateEquipmentRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Department      *string          `json:"department" binding:"omitempty,min=1,max=200"`
	Status          *EquipmentStatus `json:"status" binding:"omitempty,oneof=Available 'In Use' Maintenance"`
	LastMaintenance *Date            `json:"last_maintenance"`
}

func (r UpdateEquipmentRequest) Apply(e *Equipment) {
	if r.Name != nil {
		e.Name = *r.Name
	}
	if r.Department != nil {
		e.Department = *r.Department
	}
	if r.Status != nil {
		e.Status = *r.Status
	}
	if r.LastMaintenance != nil {
		e.LastMaintenance = r.LastMaintenance
	}
}
