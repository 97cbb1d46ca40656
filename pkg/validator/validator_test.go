package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/model"
)

func TestAttendanceRequestValidation(t *testing.T) {
	req := model.CreateAttendanceRequest{
		StaffID: uuid.New(),
		Shift:   "Afternoon",
		Status:  model.AttendanceStatusPresent,
	}

	err := Struct(req)
	require.Error(t, err)

	msg := Message(err)
	assert.Contains(t, msg, "date is required")
	assert.Contains(t, msg, "shift must be one of [Morning Evening Night]")
}

func TestEquipmentStatusWithSpace(t *testing.T) {
	inUse := model.EquipmentStatusInUse
	assert.NoError(t, Struct(model.UpdateEquipmentRequest{Status: &inUse}))

	broken := model.EquipmentStatus("Broken")
	assert.Error(t, Struct(model.UpdateEquipmentRequest{Status: &broken}))
}

func TestAppointmentRequestValidation(t *testing.T) {
	valid := model.CreateAppointmentRequest{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Date:      model.NewDate(2024, 1, 10),
		Time:      "09:00",
	}
	assert.NoError(t, Struct(valid))

	missingDoctor := valid
	missingDoctor.DoctorID = uuid.Nil
	err := Struct(missingDoctor)
	require.Error(t, err)
	assert.Contains(t, Message(err), "doctor_id is required")
}
