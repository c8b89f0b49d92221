package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/medisuite/clinica/internal/model"
	"github.com/medisuite/clinica/internal/repository"
	apperrors "github.com/medisuite/clinica/pkg/errors"
)

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{base}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			first_name, last_name, birth_date, gender, address, phone,
			email, national_id, blood_type, allergies, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	res, err := r.exec(ctx, "patients", "create", query,
		patient.FirstName,
		patient.LastName,
		patient.BirthDate,
		patient.Gender,
		patient.Address,
		patient.Phone,
		patient.Email,
		patient.NationalID,
		patient.BloodType,
		patient.Allergies,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return apperrors.Persistence("failed to create patient", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Persistence("failed to read new patient id", err)
	}
	patient.ID = id

	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var patient model.Patient
	if err := r.get(ctx, "patients", "get", &patient, `SELECT * FROM patients WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Persistence("failed to get patient", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, id int64, patch *model.UpdatePatientRequest) error {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if patch.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *patch.FirstName)
	}
	if patch.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *patch.LastName)
	}
	if patch.BirthDate != nil {
		sets = append(sets, "birth_date = ?")
		args = append(args, *patch.BirthDate)
	}
	if patch.Gender != nil {
		sets = append(sets, "gender = ?")
		args = append(args, *patch.Gender)
	}
	if patch.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *patch.Address)
	}
	if patch.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *patch.Phone)
	}
	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.NationalID != nil {
		sets = append(sets, "national_id = ?")
		args = append(args, *patch.NationalID)
	}
	if patch.BloodType != nil {
		sets = append(sets, "blood_type = ?")
		args = append(args, *patch.BloodType)
	}
	if patch.Allergies != nil {
		sets = append(sets, "allergies = ?")
		args = append(args, *patch.Allergies)
	}

	query := fmt.Sprintf("UPDATE patients SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	result, err := r.exec(ctx, "patients", "update", query, args...)
	if err != nil {
		return apperrors.Persistence("failed to update patient", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}

	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.exec(ctx, "patients", "delete", `DELETE FROM patients WHERE id = ?`, id); err != nil {
		return apperrors.Persistence("failed to delete patient", err)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	var patients []*model.Patient
	if err := r.list(ctx, "patients", "list", &patients, `SELECT * FROM patients ORDER BY id`); err != nil {
		return nil, apperrors.Persistence("failed to list patients", err)
	}
	return patients, nil
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.get(ctx, "patients", "count", &count, `SELECT COUNT(*) FROM patients`); err != nil {
		return 0, apperrors.Persistence("failed to count patients", err)
	}
	return count, nil
}

func (r *patientRepository) ListByLastName(ctx context.Context, lastName string) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE last_name = ? ORDER BY id`

	var patients []*model.Patient
	if err := r.list(ctx, "patients", "list_by_last_name", &patients, query, lastName); err != nil {
		return nil, apperrors.Persistence("failed to list patients by last name", err)
	}
	return patients, nil
}

// ListByNationalID returns all matches: the national id is a natural key but
// uniqueness is not enforced, so duplicates are possible.
func (r *patientRepository) ListByNationalID(ctx context.Context, nationalID string) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE national_id = ? ORDER BY id`

	var patients []*model.Patient
	if err := r.list(ctx, "patients", "list_by_national_id", &patients, query, nationalID); err != nil {
		return nil, apperrors.Persistence("failed to list patients by national id", err)
	}
	return patients, nil
}
