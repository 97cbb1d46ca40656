package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/hospital-admin/internal/model"
)

func TestAttendancePolicy(t *testing.T) {
	staffID := uuid.New()
	day := model.NewDate(2024, time.January, 10)
	stored := &model.Attendance{
		Base:    model.Base{ID: uuid.New()},
		StaffID: staffID,
		Date:    day,
		Shift:   model.ShiftMorning,
		Status:  model.AttendanceStatusAbsent,
	}

	tests := []struct {
		name      string
		candidate *model.Attendance
		conflict  bool
	}{
		{
			name:      "same shift with different status",
			candidate: &model.Attendance{StaffID: staffID, Date: day, Shift: model.ShiftMorning, Status: model.AttendanceStatusPresent},
			conflict:  true,
		},
		{
			name:      "different shift",
			candidate: &model.Attendance{StaffID: staffID, Date: day, Shift: model.ShiftEvening, Status: model.AttendanceStatusPresent},
		},
		{
			name:      "different day",
			candidate: &model.Attendance{StaffID: staffID, Date: model.NewDate(2024, time.January, 11), Shift: model.ShiftMorning, Status: model.AttendanceStatusPresent},
		},
		{
			name:      "different staff",
			candidate: &model.Attendance{StaffID: uuid.New(), Date: day, Shift: model.ShiftMorning, Status: model.AttendanceStatusPresent},
		},
		{
			name:      "the stored record itself",
			candidate: &model.Attendance{Base: model.Base{ID: stored.ID}, StaffID: staffID, Date: day, Shift: model.ShiftMorning},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := AttendancePolicy(tt.candidate, []*model.Attendance{stored})
			assert.Equal(t, tt.conflict, d.Conflict)
			if tt.conflict {
				assert.Equal(t, stored.ID, d.ConflictingID)
			} else {
				assert.Equal(t, uuid.Nil, d.ConflictingID)
			}
		})
	}
}

func TestAppointmentPolicy(t *testing.T) {
	doctorID := uuid.New()
	day := model.NewDate(2024, time.January, 10)

	booked := func(status model.AppointmentStatus) *model.Appointment {
		return &model.Appointment{
			Base:     model.Base{ID: uuid.New()},
			DoctorID: doctorID,
			Date:     day,
			Time:     "09:00",
			Status:   status,
		}
	}
	candidate := &model.Appointment{PatientID: uuid.New(), DoctorID: doctorID, Date: day, Time: "09:00", Status: model.AppointmentStatusScheduled}

	t.Run("scheduled holds the slot", func(t *testing.T) {
		existing := booked(model.AppointmentStatusScheduled)
		d := AppointmentPolicy(candidate, []*model.Appointment{existing})
		assert.True(t, d.Conflict)
		assert.Equal(t, existing.ID, d.ConflictingID)
	})

	t.Run("cancelled and completed release the slot", func(t *testing.T) {
		d := AppointmentPolicy(candidate, []*model.Appointment{
			booked(model.AppointmentStatusCancelled),
			booked(model.AppointmentStatusCompleted),
		})
		assert.False(t, d.Conflict)
	})

	t.Run("time tokens compare exactly", func(t *testing.T) {
		other := &model.Appointment{DoctorID: doctorID, Date: day, Time: "09:30", Status: model.AppointmentStatusScheduled}
		d := AppointmentPolicy(other, []*model.Appointment{booked(model.AppointmentStatusScheduled)})
		assert.False(t, d.Conflict)
	})

	t.Run("other doctor", func(t *testing.T) {
		other := &model.Appointment{DoctorID: uuid.New(), Date: day, Time: "09:00", Status: model.AppointmentStatusScheduled}
		d := AppointmentPolicy(other, []*model.Appointment{booked(model.AppointmentStatusScheduled)})
		assert.False(t, d.Conflict)
	})

	t.Run("first scheduled match wins", func(t *testing.T) {
		cancelled := booked(model.AppointmentStatusCancelled)
		scheduled := booked(model.AppointmentStatusScheduled)
		d := AppointmentPolicy(candidate, []*model.Appointment{cancelled, scheduled})
		assert.True(t, d.Conflict)
		assert.Equal(t, scheduled.ID, d.ConflictingID)
	})
}
