package model

type Designation string

const (
	DesignationDoctor    Designation = "Doctor"
	DesignationNurse     Designation = "Nurse"
	DesignationReception Designation = "Reception"
	DesignationAdmin     Designation = "Admin"
	DesignationOther     Designation = "Other"
)

type Staff struct {
	Base
	Name        string      `db:"name" json:"name"`
	Designation Designation `db:"designation" json:"designation"`
	Department  string      `db:"department" json:"department"`
	Contact     string      `db:"contact" json:"contact"`
	Email       *string     `db:"email" json:"email,omitempty"`
}

type CreateStaffRequest struct {
	Name        string      `json:"name" binding:"required,max=200"`
	Designation Designation `json:"designation" binding:"required,oneof=Doctor Nurse Reception Admin Other"`
	Department  string      `json:"department" binding:"required,max=200"`
	Contact     string      `json:"contact" binding:"required,max=50"`
	Email       *string     `json:"email" binding:"omitempty,email"`
}

func (r CreateStaffRequest) ToStaff() *Staff {
	return &Staff{
		Name:        r.Name,
		Designation: r.Designation,
		Department:  r.Department,
		Contact:     r.Contact,
		Email:       r.Email,
	}
}

type UpdateStaffRequest struct {
	Name        *string      `json:"name" binding:"omitempty,min=1,max=200"`
	Designation *Designation `json:"designation" binding:"omitempty,oneof=Doctor Nurse Reception Admin Other"`
	Department  *string      `json:"department" binding:"omitempty,min=1,max=200"`
	Contact     *string      `json:"contact" binding:"omitempty,min=1,max=50"`
	Email       *string      `json:"email" binding:"omitempty,email"`
}

// Apply merges the set fields into s.
func (r UpdateStaffRequest) Apply(s *Staff) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Designation != nil {
		s.Designation = *r.Designation
	}
	if r.Department != nil {
		s.Department = *r.Department
	}
	if r.Contact != nil {
		s.Contact = *r.Contact
	}
	if r.Email != nil {
		s.Email = r.Email
	}
}
