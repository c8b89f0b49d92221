package repository

import (
	"context"
	"time"

	"github.com/medisuite/clinica/internal/model"
)

// All repository interfaces in one file. Every mutating operation is durably
// committed before it returns. Indexed lookups exist only for the declared
// secondary indexes; anything else is caller-side filtering over List.
type (
	// UserRepository handles user records and the email/role indexes.
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		Update(ctx context.Context, id int64, patch *model.UpdateUserRequest) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.User, error)
		Count(ctx context.Context) (int64, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		ListByRole(ctx context.Context, role string) ([]*model.User, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		Update(ctx context.Context, id int64, patch *model.UpdateDoctorRequest) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Doctor, error)
		Count(ctx context.Context) (int64, error)
		GetByUserID(ctx context.Context, userID int64) (*model.Doctor, error)
		ListBySpecialty(ctx context.Context, specialty string) ([]*model.Doctor, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		Update(ctx context.Context, id int64, patch *model.UpdatePatientRequest) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Patient, error)
		Count(ctx context.Context) (int64, error)
		ListByLastName(ctx context.Context, lastName string) ([]*model.Patient, error)
		ListByNationalID(ctx context.Context, nationalID string) ([]*model.Patient, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		Update(ctx context.Context, id int64, patch *model.UpdateAppointmentRequest) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error)
		ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error)
		ListByStatus(ctx context.Context, status model.AppointmentStatus) ([]*model.Appointment, error)
		ListByDate(ctx context.Context, date time.Time) ([]*model.Appointment, error)
	}

	TreatmentRepository interface {
		Create(ctx context.Context, treatment *model.Treatment) error
		Get(ctx context.Context, id int64) (*model.Treatment, error)
		Update(ctx context.Context, id int64, patch *model.UpdateTreatmentRequest) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Treatment, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Treatment, error)
		ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Treatment, error)
		ListByStatus(ctx context.Context, status model.TreatmentStatus) ([]*model.Treatment, error)
	}

	MedicationRepository interface {
		Create(ctx context.Context, medication *model.Medication) error
		Get(ctx context.Context, id int64) (*model.Medication, error)
		Update(ctx context.Context, id int64, patch *model.UpdateMedicationRequest) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Medication, error)
		Count(ctx context.Context) (int64, error)
		ListByName(ctx context.Context, name string) ([]*model.Medication, error)
		ListByActiveIngredient(ctx context.Context, ingredient string) ([]*model.Medication, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		Get(ctx context.Context, id int64) (*model.Prescription, error)
		Update(ctx context.Context, id int64, patch *model.UpdatePrescriptionRequest) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Prescription, error)
		ListByTreatment(ctx context.Context, treatmentID int64) ([]*model.Prescription, error)
		ListByMedication(ctx context.Context, medicationID int64) ([]*model.Prescription, error)
	}

	// StateRepository is the process-external key-value slot used for
	// session persistence across restarts.
	StateRepository interface {
		Get(ctx context.Context, key string) (string, error)
		Set(ctx context.Context, key, value string) error
		Delete(ctx context.Context, key string) error
	}
)
