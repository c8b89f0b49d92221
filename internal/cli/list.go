package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/medisuite/clinica/internal/model"
	apperrors "github.com/medisuite/clinica/pkg/errors"
)

var validate = validator.New()

func newPatientsCommand(app *App) *cobra.Command {
	var lastName string

	cmd := &cobra.Command{
		Use:   "patients",
		Short: "List patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}

			patients, err := listPatients(app, cmd, lastName)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBIRTH DATE\tNATIONAL ID\tPHONE")
			for _, p := range patients {
				fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\n",
					p.ID, p.FirstName, p.LastName, p.BirthDate.Format("2006-01-02"), p.NationalID, p.Phone)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&lastName, "last-name", "", "filter by exact family name (indexed)")

	cmd.AddCommand(newPatientAddCommand(app))

	return cmd
}

func newPatientAddCommand(app *App) *cobra.Command {
	req := &model.CreatePatientRequest{}
	var birthDate, bloodType, allergies string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}

			parsed, err := time.Parse("2006-01-02", birthDate)
			if err != nil {
				return fmt.Errorf("invalid birth date %q: %w", birthDate, err)
			}
			req.BirthDate = parsed
			if bloodType != "" {
				req.BloodType = &bloodType
			}
			if allergies != "" {
				req.Allergies = &allergies
			}

			patient, err := newPatient(req)
			if err != nil {
				return err
			}
			if err := app.Patients.Create(cmd.Context(), patient); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created patient %d\n", patient.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "given name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "family name")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Gender, "gender", "", "gender")
	cmd.Flags().StringVar(&req.Address, "address", "", "street address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&req.NationalID, "national-id", "", "national id")
	cmd.Flags().StringVar(&bloodType, "blood-type", "", "blood type")
	cmd.Flags().StringVar(&allergies, "allergies", "", "known allergies")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	cmd.MarkFlagRequired("birth-date")
	cmd.MarkFlagRequired("gender")
	cmd.MarkFlagRequired("national-id")

	return cmd
}

// newPatient validates a creation request and maps it to the entity.
func newPatient(req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid patient data", err)
	}

	return &model.Patient{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		BirthDate:  req.BirthDate,
		Gender:     req.Gender,
		Address:    req.Address,
		Phone:      req.Phone,
		Email:      req.Email,
		NationalID: req.NationalID,
		BloodType:  req.BloodType,
		Allergies:  req.Allergies,
	}, nil
}

func listPatients(app *App, cmd *cobra.Command, lastName string) ([]*model.Patient, error) {
	if lastName != "" {
		return app.Patients.ListByLastName(cmd.Context(), lastName)
	}
	return app.Patients.List(cmd.Context())
}

func newMedicationsCommand(app *App) *cobra.Command {
	var ingredient string

	cmd := &cobra.Command{
		Use:   "medications",
		Short: "List medications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}

			medications, err := listMedications(app, cmd, ingredient)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tACTIVE INGREDIENT\tFORM\tSTOCK")
			for _, m := range medications {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", m.ID, m.Name, m.ActiveIngredient, m.Form, m.Stock)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&ingredient, "active-ingredient", "", "filter by active ingredient (indexed)")

	return cmd
}

func listMedications(app *App, cmd *cobra.Command, ingredient string) ([]*model.Medication, error) {
	if ingredient != "" {
		return app.Medications.ListByActiveIngredient(cmd.Context(), ingredient)
	}
	return app.Medications.List(cmd.Context())
}

func newAppointmentsCommand(app *App) *cobra.Command {
	var status, search string

	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List appointments with resolved names",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}

			views, err := app.Views.ListAppointments(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTIME\tPATIENT\tDOCTOR\tREASON\tSTATUS")
			for _, v := range views {
				if status != "" && string(v.Status) != status {
					continue
				}
				if !matchesSearch(search, v.PatientName, v.DoctorName, v.Reason) {
					continue
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					v.ID, v.Date.Format("2006-01-02"), v.Time, v.PatientName, v.DoctorName, v.Reason, v.Status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (scheduled|completed|cancelled)")
	cmd.Flags().StringVar(&search, "search", "", "substring match on patient, doctor or reason")

	return cmd
}

func newTreatmentsCommand(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "treatments",
		Short: "List treatments with resolved names",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}

			views, err := app.Views.ListTreatments(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTART\tEND\tPATIENT\tDOCTOR\tDESCRIPTION\tSTATUS")
			for _, v := range views {
				if status != "" && string(v.Status) != status {
					continue
				}
				end := ""
				if v.EndDate != nil {
					end = v.EndDate.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					v.ID, v.StartDate.Format("2006-01-02"), end, v.PatientName, v.DoctorName, v.Description, v.Status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (active|completed|cancelled)")

	return cmd
}

func newPrescriptionsCommand(app *App) *cobra.Command {
	var treatmentID, medicationID int64

	cmd := &cobra.Command{
		Use:   "prescriptions",
		Short: "List prescriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}

			prescriptions, err := listPrescriptions(app, cmd, treatmentID, medicationID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTREATMENT\tMEDICATION\tDOSE\tFREQUENCY\tDURATION")
			for _, p := range prescriptions {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
					p.ID, p.TreatmentID, medicationName(app, cmd, p.MedicationID), p.Dose, p.Frequency, p.Duration)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&treatmentID, "treatment", 0, "filter by treatment id (indexed)")
	cmd.Flags().Int64Var(&medicationID, "medication", 0, "filter by medication id (indexed)")

	return cmd
}

func listPrescriptions(app *App, cmd *cobra.Command, treatmentID, medicationID int64) ([]*model.Prescription, error) {
	switch {
	case treatmentID != 0:
		return app.Prescriptions.ListByTreatment(cmd.Context(), treatmentID)
	case medicationID != 0:
		return app.Prescriptions.ListByMedication(cmd.Context(), medicationID)
	default:
		return app.Prescriptions.List(cmd.Context())
	}
}

func medicationName(app *App, cmd *cobra.Command, id int64) string {
	medication, err := app.Medications.Get(cmd.Context(), id)
	if err != nil {
		return "Unknown medication"
	}
	return medication.Name
}

// matchesSearch mirrors the in-memory filtering the listing pages do over
// the joined views.
func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
