package seed

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/medisuite/clinica/internal/model"
	"github.com/medisuite/clinica/internal/repository"
	"github.com/medisuite/clinica/pkg/logger"
)

const bcryptCost = 12

// Seeder populates an empty store with the minimal reference dataset: one
// admin, one doctor user with its professional profile, one patient and one
// medication, in that order so foreign keys resolve from the first insert.
type Seeder struct {
	users       repository.UserRepository
	doctors     repository.DoctorRepository
	patients    repository.PatientRepository
	medications repository.MedicationRepository
	logger      *logger.Logger
}

func NewSeeder(users repository.UserRepository, doctors repository.DoctorRepository,
	patients repository.PatientRepository, medications repository.MedicationRepository,
	l *logger.Logger) *Seeder {
	return &Seeder{
		users:       users,
		doctors:     doctors,
		patients:    patients,
		medications: medications,
		logger:      l,
	}
}

// Run is idempotent: it is a no-op whenever the user table is non-empty.
// The steps are individual commits; a crash mid-way can leave partial data,
// which the next run will not repair (accepted).
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check user table: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := &model.User{
		Email:     "admin@clinica.com",
		FirstName: "System",
		LastName:  "Administrator",
		Role:      model.RoleAdmin,
		Active:    true,
	}
	if admin.PasswordHash, err = hash("admin123"); err != nil {
		return err
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	doctorUser := &model.User{
		Email:     "doctor@clinica.com",
		FirstName: "Juan",
		LastName:  "Perez",
		Role:      model.RoleDoctor,
		Active:    true,
	}
	if doctorUser.PasswordHash, err = hash("doctor123"); err != nil {
		return err
	}
	if err := s.users.Create(ctx, doctorUser); err != nil {
		return fmt.Errorf("failed to seed doctor user: %w", err)
	}

	doctor := &model.Doctor{
		UserID:    doctorUser.ID,
		Specialty: "General Medicine",
		License:   "MG-12345",
		Phone:     "555-123-4567",
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return fmt.Errorf("failed to seed doctor profile: %w", err)
	}

	bloodType := "O+"
	allergies := "Penicillin"
	patient := &model.Patient{
		FirstName:  "Maria",
		LastName:   "Gonzalez",
		BirthDate:  time.Date(1985, time.May, 15, 0, 0, 0, 0, time.UTC),
		Gender:     "Female",
		Address:    "Av. Principal 123",
		Phone:      "555-987-6543",
		Email:      "maria@example.com",
		NationalID: "12345678",
		BloodType:  &bloodType,
		Allergies:  &allergies,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return fmt.Errorf("failed to seed patient: %w", err)
	}

	expiry := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	medication := &model.Medication{
		Name:             "Paracetamol",
		Description:      "Analgesic and antipyretic",
		ActiveIngredient: "Paracetamol",
		Form:             "500mg tablets",
		Dose:             "1-2 tablets every 8 hours",
		Stock:            100,
		ExpiryDate:       &expiry,
	}
	if err := s.medications.Create(ctx, medication); err != nil {
		return fmt.Errorf("failed to seed medication: %w", err)
	}

	s.logger.Info("store seeded with reference data")
	return nil
}

func hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash seed password: %w", err)
	}
	return string(h), nil
}
