package scheduling

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-admin/internal/model"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

type problems []string

func (p *problems) require(ok bool, msg string) {
	if !ok {
		*p = append(*p, msg)
	}
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return apperrors.NewValidation(strings.Join(p, "; "), nil)
}

func validateAppointment(a *model.Appointment) error {
	var p problems
	p.require(a.PatientID != uuid.Nil, "patient_id is required")
	p.require(a.DoctorID != uuid.Nil, "doctor_id is required")
	p.require(!a.Date.IsZero(), "date is required")
	p.require(strings.TrimSpace(a.Time) != "", "time is required")

	switch a.Status {
	case model.AppointmentStatusScheduled, model.AppointmentStatusCompleted, model.AppointmentStatusCancelled:
	default:
		p = append(p, "status must be one of [Scheduled Completed Cancelled]")
	}
	return p.err()
}

func validateAttendance(a *model.Attendance) error {
	var p problems
	p.require(a.StaffID != uuid.Nil, "staff_id is required")
	p.require(!a.Date.IsZero(), "date is required")

	switch a.Shift {
	case model.ShiftMorning, model.ShiftEvening, model.ShiftNight:
	default:
		p = append(p, "shift must be one of [Morning Evening Night]")
	}

	switch a.Status {
	case model.AttendanceStatusPresent, model.AttendanceStatusAbsent, model.AttendanceStatusLeave:
	default:
		p = append(p, "status must be one of [Present Absent Leave]")
	}
	return p.err()
}
