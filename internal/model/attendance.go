package model

import (
	"github.com/google/uuid"
)

type Shift string

const (
	ShiftMorning Shift = "Morning"
	ShiftEvening Shift = "Evening"
	ShiftNight   Shift = "Night"
)

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
	AttendanceStatusLeave   AttendanceStatus = "Leave"
)

type Attendance struct {
	Base
	StaffID uuid.UUID        `db:"staff_id" json:"staff_id"`
	Date    Date             `db:"date" json:"date"`
	Shift   Shift            `db:"shift" json:"shift"`
	Status  AttendanceStatus `db:"status" json:"status"`
}

// ShiftKey is the partition key attendance records are unique on.
type ShiftKey struct {
	StaffID uuid.UUID
	Date    Date
	Shift   Shift
}

func (a *Attendance) Key() ShiftKey {
	return ShiftKey{StaffID: a.StaffID, Date: a.Date, Shift: a.Shift}
}

// AttendanceDetail carries the referenced staff member's name and designation,
// both empty for a dangling reference.
type AttendanceDetail struct {
	Attendance
	StaffName        string `db:"staff_name" json:"staff_name"`
	StaffDesignation string `db:"staff_designation" json:"staff_designation"`
}

type CreateAttendanceRequest struct {
	StaffID uuid.UUID        `json:"staff_id" binding:"required"`
	Date    Date             `json:"date" binding:"required"`
	Shift   Shift            `json:"shift" binding:"required,oneof=Morning Evening Night"`
	Status  AttendanceStatus `json:"status" binding:"required,oneof=Present Absent Leave"`
}

func (r CreateAttendanceRequest) ToAttendance() *Attendance {
	return &Attendance{
		StaffID: r.StaffID,
		Date:    r.Date,
		Shift:   r.Shift,
		Status:  r.Status,
	}
}

type UpdateAttendanceRequest struct {
	StaffID *uuid.UUID        `json:"staff_id"`
	Date    *Date             `json:"date"`
	Shift   *Shift            `json:"shift" binding:"omitempty,oneof=Morning Evening Night"`
	Status  *AttendanceStatus `json:"status" binding:"omitempty,oneof=Present Absent Leave"`
}

func (r UpdateAttendanceRequest) Apply(a *Attendance) {
	if r.StaffID != nil {
		a.StaffID = *r.StaffID
	}
	if r.Date != nil {
		a.Date = *r.Date
	}
	if r.Shift != nil {
		a.Shift = *r.Shift
	}
	if r.Status != nil {
		a.Status = *r.Status
	}
}
