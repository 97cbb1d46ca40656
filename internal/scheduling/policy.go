// Package scheduling keeps appointments and attendance free of double
// bookings. Policies are pure functions over a candidate and the stored
// records sharing its partition key; the Service runs them inside a
// transaction and relies on the database's unique indexes as the final guard.
package scheduling

import (
	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-admin/internal/model"
)

// Decision is the outcome of a policy check.
type Decision struct {
	Conflict      bool
	ConflictingID uuid.UUID
}

func noConflict() Decision {
	return Decision{}
}

func conflictWith(id uuid.UUID) Decision {
	return Decision{Conflict: true, ConflictingID: id}
}

// Policy decides whether candidate collides with any of existing.
type Policy[T any] func(candidate T, existing []T) Decision

// AttendancePolicy allows at most one record per (staff, day, shift). The
// status of either record is irrelevant: Absent and Leave still take the shift.
func AttendancePolicy(candidate *model.Attendance, existing []*model.Attendance) Decision {
	for _, e := range existing {
		if e.ID == candidate.ID {
			continue
		}
		if e.StaffID == candidate.StaffID && e.Date.Equal(candidate.Date) && e.Shift == candidate.Shift {
			return conflictWith(e.ID)
		}
	}
	return noConflict()
}

// AppointmentPolicy rejects a booking when a Scheduled appointment already
// holds the same (doctor, day, time) slot. Times are compared as exact tokens,
// so "09:00" and "09:30" never conflict even if the visits would overlap.
// Cancelled and Completed appointments release their slot.
func AppointmentPolicy(candidate *model.Appointment, existing []*model.Appointment) Decision {
	for _, e := range existing {
		if e.ID == candidate.ID || e.Status != model.AppointmentStatusScheduled {
			continue
		}
		if e.DoctorID == candidate.DoctorID && e.Date.Equal(candidate.Date) && e.Time == candidate.Time {
			return conflictWith(e.ID)
		}
	}
	return noConflict()
}
