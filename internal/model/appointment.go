package model

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment books a doctor for a patient in a (date, time) slot. Time is an
// opaque token such as "09:00"; slots are compared by exact token.
type Appointment struct {
	Base
	PatientID uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	Date      Date              `db:"date" json:"date"`
	Time      string            `db:"time" json:"time"`
	Status    AppointmentStatus `db:"status" json:"status"`
	Notes     string            `db:"notes" json:"notes,omitempty"`
}

// SlotKey is the partition key appointments conflict on.
type SlotKey struct {
	DoctorID uuid.UUID
	Date     Date
	Time     string
}

func (a *Appointment) Slot() SlotKey {
	return SlotKey{DoctorID: a.DoctorID, Date: a.Date, Time: a.Time}
}

// AppointmentDetail is an appointment joined with the names it references.
// Names are empty when the referenced staff or patient no longer exists.
type AppointmentDetail struct {
	Appointment
	PatientName string `db:"patient_name" json:"patient_name"`
	DoctorName  string `db:"doctor_name" json:"doctor_name"`
}

type CreateAppointmentRequest struct {
	PatientID uuid.UUID         `json:"patient_id" binding:"required"`
	DoctorID  uuid.UUID         `json:"doctor_id" binding:"required"`
	Date      Date              `json:"date" binding:"required"`
	Time      string            `json:"time" binding:"required,max=20"`
	Status    AppointmentStatus `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled"`
	Notes     string            `json:"notes" binding:"max=1000"`
}

func (r CreateAppointmentRequest) ToAppointment() *Appointment {
	status := r.Status
	if status == "" {
		status = AppointmentStatusScheduled
	}
	return &Appointment{
		PatientID: r.PatientID,
		DoctorID:  r.DoctorID,
		Date:      r.Date,
		Time:      r.Time,
		Status:    status,
		Notes:     r.Notes,
	}
}

type UpdateAppointmentRequest struct {
	PatientID *uuid.UUID         `json:"patient_id"`
	DoctorID  *uuid.UUID         `json:"doctor_id"`
	Date      *Date              `json:"date"`
	Time      *string            `json:"time" binding:"omitempty,min=1,max=20"`
	Status    *AppointmentStatus `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled"`
	Notes     *string            `json:"notes" binding:"omitempty,max=1000"`
}

func (r UpdateAppointmentRequest) Apply(a *Appointment) {
	if r.PatientID != nil {
		a.PatientID = *r.PatientID
	}
	if r.DoctorID != nil {
		a.DoctorID = *r.DoctorID
	}
	if r.Date != nil {
		a.Date = *r.Date
	}
	if r.Time != nil {
		a.Time = *r.Time
	}
	if r.Status != nil {
		a.Status = *r.Status
	}
	if r.Notes != nil {
		a.Notes = *r.Notes
	}
}
