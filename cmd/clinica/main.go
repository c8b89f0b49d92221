package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/medisuite/clinica/internal/cli"
	"github.com/medisuite/clinica/internal/config"
	"github.com/medisuite/clinica/internal/notification"
	"github.com/medisuite/clinica/internal/repository/sqlite"
	"github.com/medisuite/clinica/internal/seed"
	reportService "github.com/medisuite/clinica/internal/service/report"
	sessionService "github.com/medisuite/clinica/internal/service/session"
	viewService "github.com/medisuite/clinica/internal/service/view"
	"github.com/medisuite/clinica/pkg/logger"
	"github.com/medisuite/clinica/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger(nil).Fatal(err, "failed to load configuration")
	}

	log := logger.NewLogger(&logger.Config{Level: logger.ParseLevel(cfg.Logging.Level)})

	// Open the embedded database
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal(err, "failed to open database")
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	base := sqlite.NewBaseRepository(db, metrics.New(registry, "clinica"))

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(base)
	doctorRepo := sqlite.NewDoctorRepository(base)
	patientRepo := sqlite.NewPatientRepository(base)
	appointmentRepo := sqlite.NewAppointmentRepository(base)
	treatmentRepo := sqlite.NewTreatmentRepository(base)
	medicationRepo := sqlite.NewMedicationRepository(base)
	prescriptionRepo := sqlite.NewPrescriptionRepository(base)
	stateRepo := sqlite.NewStateRepository(base)

	// Initialize services
	var notifier notification.Notifier = notification.NewNoop(log)
	if cfg.SMTP.Enabled {
		notifier = notification.NewSMTP(cfg.SMTP)
	}

	sessionSvc := sessionService.NewService(userRepo, stateRepo, notifier, log)
	viewSvc := viewService.NewService(userRepo, doctorRepo, patientRepo, appointmentRepo, treatmentRepo)
	reportSvc := reportService.NewService(patientRepo, medicationRepo, appointmentRepo)
	seeder := seed.NewSeeder(userRepo, doctorRepo, patientRepo, medicationRepo, log)

	ctx := context.Background()

	// Seed runs before anything else; it is a no-op on a populated store.
	if cfg.Seed.Enabled {
		if err := seeder.Run(ctx); err != nil {
			log.Fatal(err, "failed to seed store")
		}
	}

	// Restore the session persisted by a previous run.
	sessionSvc.Hydrate(ctx)

	app := &cli.App{
		Config:        cfg,
		Logger:        log,
		Session:       sessionSvc,
		Views:         viewSvc,
		Reports:       reportSvc,
		Seeder:        seeder,
		Gatherer:      registry,
		Users:         userRepo,
		Doctors:       doctorRepo,
		Patients:      patientRepo,
		Medications:   medicationRepo,
		Appointments:  appointmentRepo,
		Treatments:    treatmentRepo,
		Prescriptions: prescriptionRepo,
	}

	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		log.Error(err, "command failed")
		os.Exit(1)
	}
}
