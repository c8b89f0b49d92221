package view

import (
	"context"
	"fmt"

	"github.com/medisuite/clinica/internal/model"
	"github.com/medisuite/clinica/internal/repository"
)

// Sentinel labels substituted when a foreign key does not resolve. Readers
// tolerate orphans; a broken reference is never an error here.
const (
	UnknownPatient = "Unknown patient"
	UnknownDoctor  = "Unknown doctor"
)

// Appointment is a display projection with foreign keys flattened into
// human-readable names.
type Appointment struct {
	model.Appointment
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
}

// Treatment is the display projection for treatments.
type Treatment struct {
	model.Treatment
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
}

// Service resolves cross-references for display. It is read-only and
// uncached: every call re-fetches from the store, which is in-process and
// O(1) by key.
type Service struct {
	users        repository.UserRepository
	doctors      repository.DoctorRepository
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	treatments   repository.TreatmentRepository
}

func NewService(users repository.UserRepository, doctors repository.DoctorRepository,
	patients repository.PatientRepository, appointments repository.AppointmentRepository,
	treatments repository.TreatmentRepository) *Service {
	return &Service{
		users:        users,
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
		treatments:   treatments,
	}
}

// PatientLabel resolves a patient id to "{given} {family}", or the sentinel.
func (s *Service) PatientLabel(ctx context.Context, patientID int64) string {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return UnknownPatient
	}
	return fmt.Sprintf("%s %s", patient.FirstName, patient.LastName)
}

// DoctorLabel resolves a doctor id to "Dr. {given} {family}" through the
// linked user record. Either hop may be missing independently; both fall
// back to the sentinel.
func (s *Service) DoctorLabel(ctx context.Context, doctorID int64) string {
	doctor, err := s.doctors.Get(ctx, doctorID)
	if err != nil {
		return UnknownDoctor
	}
	user, err := s.users.Get(ctx, doctor.UserID)
	if err != nil {
		return UnknownDoctor
	}
	return fmt.Sprintf("Dr. %s %s", user.FirstName, user.LastName)
}

// Appointment hydrates a single appointment record.
func (s *Service) Appointment(ctx context.Context, appointment *model.Appointment) *Appointment {
	return &Appointment{
		Appointment: *appointment,
		PatientName: s.PatientLabel(ctx, appointment.PatientID),
		DoctorName:  s.DoctorLabel(ctx, appointment.DoctorID),
	}
}

// ListAppointments returns all appointments with names resolved.
func (s *Service) ListAppointments(ctx context.Context) ([]*Appointment, error) {
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		views = append(views, s.Appointment(ctx, appointment))
	}
	return views, nil
}

// Treatment hydrates a single treatment record.
func (s *Service) Treatment(ctx context.Context, treatment *model.Treatment) *Treatment {
	return &Treatment{
		Treatment:   *treatment,
		PatientName: s.PatientLabel(ctx, treatment.PatientID),
		DoctorName:  s.DoctorLabel(ctx, treatment.DoctorID),
	}
}

// ListTreatments returns all treatments with names resolved.
func (s *Service) ListTreatments(ctx context.Context) ([]*Treatment, error) {
	treatments, err := s.treatments.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*Treatment, 0, len(treatments))
	for _, treatment := range treatments {
		views = append(views, s.Treatment(ctx, treatment))
	}
	return views, nil
}
