package model

// DashboardStats is the snapshot shown on the landing page.
type DashboardStats struct {
	AppointmentsToday    int                  `json:"appointments_today" db:"appointments_today"`
	StaffOnDuty          int                  `json:"staff_on_duty" db:"staff_on_duty"`
	TotalStaff           int                  `json:"total_staff" db:"total_staff"`
	EquipmentAvailable   int                  `json:"equipment_available" db:"equipment_available"`
	EquipmentInUse       int                  `json:"equipment_in_use" db:"equipment_in_use"`
	EquipmentMaintenance int                  `json:"equipment_maintenance" db:"equipment_maintenance"`
	TotalPatients        int                  `json:"total_patients" db:"total_patients"`
	RecentAppointments   []*AppointmentDetail `json:"recent_appointments" db:"-"`
}
