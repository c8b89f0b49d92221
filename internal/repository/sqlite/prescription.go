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

type prescriptionRepository struct {
	BaseRepository
}

func NewPrescriptionRepository(base BaseRepository) repository.PrescriptionRepository {
	return &prescriptionRepository{base}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			treatment_id, medication_id, dose, frequency, duration,
			instructions, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	prescription.CreatedAt = now
	prescription.UpdatedAt = now

	res, err := r.exec(ctx, "prescriptions", "create", query,
		prescription.TreatmentID,
		prescription.MedicationID,
		prescription.Dose,
		prescription.Frequency,
		prescription.Duration,
		prescription.Instructions,
		prescription.CreatedAt,
		prescription.UpdatedAt,
	)
	if err != nil {
		return apperrors.Persistence("failed to create prescription", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Persistence("failed to read new prescription id", err)
	}
	prescription.ID = id

	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	var prescription model.Prescription
	if err := r.get(ctx, "prescriptions", "get", &prescription, `SELECT * FROM prescriptions WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("prescription", err)
		}
		return nil, apperrors.Persistence("failed to get prescription", err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, id int64, patch *model.UpdatePrescriptionRequest) error {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if patch.TreatmentID != nil {
		sets = append(sets, "treatment_id = ?")
		args = append(args, *patch.TreatmentID)
	}
	if patch.MedicationID != nil {
		sets = append(sets, "medication_id = ?")
		args = append(args, *patch.MedicationID)
	}
	if patch.Dose != nil {
		sets = append(sets, "dose = ?")
		args = append(args, *patch.Dose)
	}
	if patch.Frequency != nil {
		sets = append(sets, "frequency = ?")
		args = append(args, *patch.Frequency)
	}
	if patch.Duration != nil {
		sets = append(sets, "duration = ?")
		args = append(args, *patch.Duration)
	}
	if patch.Instructions != nil {
		sets = append(sets, "instructions = ?")
		args = append(args, *patch.Instructions)
	}

	query := fmt.Sprintf("UPDATE prescriptions SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	result, err := r.exec(ctx, "prescriptions", "update", query, args...)
	if err != nil {
		return apperrors.Persistence("failed to update prescription", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NotFound("prescription", nil)
	}

	return nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.exec(ctx, "prescriptions", "delete", `DELETE FROM prescriptions WHERE id = ?`, id); err != nil {
		return apperrors.Persistence("failed to delete prescription", err)
	}
	return nil
}

func (r *prescriptionRepository) List(ctx context.Context) ([]*model.Prescription, error) {
	var prescriptions []*model.Prescription
	if err := r.list(ctx, "prescriptions", "list", &prescriptions, `SELECT * FROM prescriptions ORDER BY id`); err != nil {
		return nil, apperrors.Persistence("failed to list prescriptions", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByTreatment(ctx context.Context, treatmentID int64) ([]*model.Prescription, error) {
	query := `SELECT * FROM prescriptions WHERE treatment_id = ? ORDER BY id`

	var prescriptions []*model.Prescription
	if err := r.list(ctx, "prescriptions", "list_by_treatment", &prescriptions, query, treatmentID); err != nil {
		return nil, apperrors.Persistence("failed to list prescriptions by treatment", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByMedication(ctx context.Context, medicationID int64) ([]*model.Prescription, error) {
	query := `SELECT * FROM prescriptions WHERE medication_id = ? ORDER BY id`

	var prescriptions []*model.Prescription
	if err := r.list(ctx, "prescriptions", "list_by_medication", &prescriptions, query, medicationID); err != nil {
		return nil, apperrors.Persistence("failed to list prescriptions by medication", err)
	}
	return prescriptions, nil
}
