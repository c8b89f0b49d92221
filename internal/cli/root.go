package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/medisuite/clinica/internal/config"
	"github.com/medisuite/clinica/internal/repository"
	"github.com/medisuite/clinica/internal/seed"
	"github.com/medisuite/clinica/internal/service/report"
	"github.com/medisuite/clinica/internal/service/session"
	"github.com/medisuite/clinica/internal/service/view"
	"github.com/medisuite/clinica/pkg/logger"
)

// App bundles the wired services the commands operate on. The CLI is the
// in-process consumer of the data layer; it holds no state of its own.
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Session  *session.Service
	Views    *view.Service
	Reports  *report.Service
	Seeder   *seed.Seeder
	Gatherer prometheus.Gatherer

	Users         repository.UserRepository
	Doctors       repository.DoctorRepository
	Patients      repository.PatientRepository
	Medications   repository.MedicationRepository
	Appointments  repository.AppointmentRepository
	Treatments    repository.TreatmentRepository
	Prescriptions repository.PrescriptionRepository
}

// NewRootCommand creates the root command for the clinica CLI.
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "clinica",
		Short:         "clinica - embedded clinical records",
		Long:          "Local clinical-records store: authentication, domain data and report exports, all backed by an embedded database.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newLoginCommand(app))
	cmd.AddCommand(newLogoutCommand(app))
	cmd.AddCommand(newWhoamiCommand(app))
	cmd.AddCommand(newRegisterCommand(app))
	cmd.AddCommand(newForgotPasswordCommand(app))
	cmd.AddCommand(newPatientsCommand(app))
	cmd.AddCommand(newMedicationsCommand(app))
	cmd.AddCommand(newAppointmentsCommand(app))
	cmd.AddCommand(newTreatmentsCommand(app))
	cmd.AddCommand(newPrescriptionsCommand(app))
	cmd.AddCommand(newReportCommand(app))
	cmd.AddCommand(newSeedCommand(app))
	cmd.AddCommand(newStatsCommand(app))

	return cmd
}
