package model

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type Patient struct {
	Base
	Name             string `db:"name" json:"name"`
	Age              int    `db:"age" json:"age"`
	Gender           Gender `db:"gender" json:"gender"`
	Contact          string `db:"contact" json:"contact"`
	EmergencyContact string `db:"emergency_contact" json:"emergency_contact,omitempty"`
	MedicalHistory   string `db:"medical_history" json:"medical_history,omitempty"`
}

type CreatePatientRequest struct {
	Name             string `json:"name" binding:"required,max=200"`
	Age              *int   `json:"age" binding:"required,min=0,max=150"`
	Gender           Gender `json:"gender" binding:"required,oneof=Male Female Other"`
	Contact          string `json:"contact" binding:"required,max=50"`
	EmergencyContact string `json:"emergency_contact" binding:"max=50"`
	MedicalHistory   string `json:"medical_history" binding:"max=5000"`
}

func (r CreatePatientRequest) ToPatient() *Patient {
	p := &Patient{
		Name:             r.Name,
		Gender:           r.Gender,
		Contact:          r.Contact,
		EmergencyContact: r.EmergencyContact,
		MedicalHistory:   r.MedicalHistory,
	}
	if r.Age != nil {
		p.Age = *r.Age
	}
	return p
}

type UpdatePatientRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=200"`
	Age              *int    `json:"age" binding:"omitempty,min=0,max=150"`
	Gender           *Gender `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	Contact          *string `json:"contact" binding:"omitempty,min=1,max=50"`
	EmergencyContact *string `json:"emergency_contact" binding:"omitempty,max=50"`
	MedicalHistory   *string `json:"medical_history" binding:"omitempty,max=5000"`
}

func (r UpdatePatientRequest) Apply(p *Patient) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Age != nil {
		p.Age = *r.Age
	}
	if r.Gender != nil {
		p.Gender = *r.Gender
	}
	if r.Contact != nil {
		p.Contact = *r.Contact
	}
	if r.EmergencyContact != nil {
		p.EmergencyContact = *r.EmergencyContact
	}
	if r.MedicalHistory != nil {
		p.MedicalHistory = *r.MedicalHistory
	}
}
