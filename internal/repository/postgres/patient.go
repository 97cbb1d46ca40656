package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

const patientColumns = `id, name, age, gender, contact, emergency_contact, medical_history, created_at, updated_at`

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{NewBaseRepository(db)}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (` + patientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	patient.Touch(time.Now().UTC())

	_, err := r.exec(ctx, "failed to create patient", query,
		patient.ID,
		patient.Name,
		patient.Age,
		patient.Gender,
		patient.Contact,
		patient.EmergencyContact,
		patient.MedicalHistory,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	return err
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`

	var patient model.Patient
	if err := r.get(ctx, &patient, "Patient", query, id); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY created_at DESC`

	patients := []*model.Patient{}
	if err := r.selectAll(ctx, &patients, "patients", query); err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, age = $2, gender = $3, contact = $4,
			emergency_contact = $5, medical_history = $6, updated_at = $7
		WHERE id = $8
	`
	patient.UpdatedAt = time.Now().UTC()

	return r.update(ctx, "Patient", query,
		patient.Name,
		patient.Age,
		patient.Gender,
		patient.Contact,
		patient.EmergencyContact,
		patient.MedicalHistory,
		patient.UpdatedAt,
		patient.ID,
	)
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.delete(ctx, "Patient", `DELETE FROM patients WHERE id = $1`, id)
}
