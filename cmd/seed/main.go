// Command seed creates the first admin account and, outside production, a
// small demo data set for an empty database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/hospital-admin/internal/config"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository/postgres"
	"github.com/jwalitptl/hospital-admin/internal/scheduling"
	equipmentService "github.com/jwalitptl/hospital-admin/internal/service/equipment"
	patientService "github.com/jwalitptl/hospital-admin/internal/service/patient"
	staffService "github.com/jwalitptl/hospital-admin/internal/service/staff"
	userService "github.com/jwalitptl/hospital-admin/internal/service/user"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
	"github.com/jwalitptl/hospital-admin/pkg/security"
)

type seedEnv struct {
	AdminUsername string `envconfig:"ADMIN_USERNAME" required:"true"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" required:"true"`
	Env           string `envconfig:"APP_ENV" default:"development"`
}

func main() {
	var env seedEnv
	if err := envconfig.Process("", &env); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobal(log)

	// Validate already resolved the zone; "today" follows it from here on.
	if loc, err := cfg.Location(); err == nil {
		time.Local = loc
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal(err, "failed to migrate database")
	}

	users := userService.NewService(postgres.NewUserRepository(db), security.NewBcryptHasher(0))
	created, err := users.EnsureAdmin(ctx, env.AdminUsername, env.AdminPassword)
	if err != nil {
		log.Fatal(err, "failed to create admin")
	}
	if created {
		log.Info("Admin user created", "username", env.AdminUsername)
	} else {
		log.Info("Admin user already exists", "username", env.AdminUsername)
	}

	if env.Env == "production" {
		return
	}

	staffRepo := postgres.NewStaffRepository(db)
	n, err := staffRepo.Count(ctx)
	if err != nil {
		log.Fatal(err, "failed to count staff")
	}
	if n > 0 {
		log.Info("Demo data skipped, staff table is not empty")
		return
	}

	s := demoServices{
		staff:      staffService.NewService(staffRepo),
		patients:   patientService.NewService(postgres.NewPatientRepository(db)),
		equipment:  equipmentService.NewService(postgres.NewEquipmentRepository(db)),
		scheduling: scheduling.NewService(postgres.NewStore(db), metrics.New("hospital_seed", prometheus.NewRegistry())),
	}
	if err := s.seed(ctx); err != nil {
		log.Fatal(err, "failed to seed demo data")
	}
	log.Info("Demo data created")
}

type demoServices struct {
	staff      *staffService.Service
	patients   *patientService.Service
	equipment  *equipmentService.Service
	scheduling *scheduling.Service
}

func (s demoServices) seed(ctx context.Context) error {
	doctor, err := s.staff.Create(ctx, &model.Staff{
		Name: "Dr. Asha Rao", Designation: model.DesignationDoctor, Department: "Cardiology", Contact: "555-0101",
	})
	if err != nil {
		return err
	}
	nurse, err := s.staff.Create(ctx, &model.Staff{
		Name: "Ben Ortiz", Designation: model.DesignationNurse, Department: "Cardiology", Contact: "555-0102",
	})
	if err != nil {
		return err
	}
	if _, err := s.staff.Create(ctx, &model.Staff{
		Name: "Chen Li", Designation: model.DesignationReception, Department: "Front Desk", Contact: "555-0103",
	}); err != nil {
		return err
	}

	patient, err := s.patients.Create(ctx, &model.Patient{
		Name: "Dana Whitfield", Age: 54, Gender: model.GenderFemale, Contact: "555-0201",
	})
	if err != nil {
		return err
	}
	if _, err := s.patients.Create(ctx, &model.Patient{
		Name: "Eli Mensah", Age: 31, Gender: model.GenderMale, Contact: "555-0202",
	}); err != nil {
		return err
	}

	for _, e := range []*model.Equipment{
		{Name: "ECG Monitor", Department: "Cardiology", Status: model.EquipmentStatusAvailable},
		{Name: "Defibrillator", Department: "Emergency", Status: model.EquipmentStatusInUse},
		{Name: "Ultrasound", Department: "Radiology", Status: model.EquipmentStatusMaintenance},
	} {
		if _, err := s.equipment.Create(ctx, e); err != nil {
			return err
		}
	}

	today := model.Today()
	if _, err := s.scheduling.CreateAppointment(ctx, &model.Appointment{
		PatientID: patient.ID, DoctorID: doctor.ID, Date: today, Time: "10:00", Notes: "Follow-up",
	}); err != nil {
		return err
	}
	_, err = s.scheduling.CreateAttendance(ctx, &model.Attendance{
		StaffID: nurse.ID, Date: today, Shift: model.ShiftMorning, Status: model.AttendanceStatusPresent,
	})
	return err
}
