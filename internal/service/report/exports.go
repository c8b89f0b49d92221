package report

import (
	"context"
	"strconv"

	"github.com/medisuite/clinica/internal/model"
)

// Narrow listing dependencies so the service does not pull in full
// repository interfaces it never mutates through.
type (
	PatientLister interface {
		List(ctx context.Context) ([]*model.Patient, error)
	}
	MedicationLister interface {
		List(ctx context.Context) ([]*model.Medication, error)
	}
	AppointmentLister interface {
		List(ctx context.Context) ([]*model.Appointment, error)
	}
)

type patientExport struct {
	patients PatientLister
}

func (e *patientExport) export(ctx context.Context) (*table, error) {
	patients, err := e.patients.List(ctx)
	if err != nil {
		return nil, err
	}

	t := &table{
		header: []string{"id", "first_name", "last_name", "birth_date", "gender",
			"address", "phone", "email", "national_id", "blood_type", "allergies"},
	}
	for _, p := range patients {
		t.rows = append(t.rows, []string{
			formatID(p.ID),
			p.FirstName,
			p.LastName,
			formatDate(p.BirthDate),
			p.Gender,
			p.Address,
			p.Phone,
			p.Email,
			p.NationalID,
			formatOptional(p.BloodType),
			formatOptional(p.Allergies),
		})
	}
	return t, nil
}

type medicationExport struct {
	medications MedicationLister
}

func (e *medicationExport) export(ctx context.Context) (*table, error) {
	medications, err := e.medications.List(ctx)
	if err != nil {
		return nil, err
	}

	t := &table{
		header: []string{"id", "name", "description", "active_ingredient",
			"form", "dose", "stock", "expiry_date"},
	}
	for _, m := range medications {
		t.rows = append(t.rows, []string{
			formatID(m.ID),
			m.Name,
			m.Description,
			m.ActiveIngredient,
			m.Form,
			m.Dose,
			strconv.Itoa(m.Stock),
			formatOptionalDate(m.ExpiryDate),
		})
	}
	return t, nil
}

type appointmentExport struct {
	appointments AppointmentLister
}

func (e *appointmentExport) export(ctx context.Context) (*table, error) {
	appointments, err := e.appointments.List(ctx)
	if err != nil {
		return nil, err
	}

	t := &table{
		header: []string{"id", "patient_id", "doctor_id", "date", "time",
			"reason", "status", "notes"},
	}
	for _, a := range appointments {
		t.rows = append(t.rows, []string{
			formatID(a.ID),
			formatID(a.PatientID),
			formatID(a.DoctorID),
			formatDate(a.Date),
			a.Time,
			a.Reason,
			string(a.Status),
			formatOptional(a.Notes),
		})
	}
	return t, nil
}
