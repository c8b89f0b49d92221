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

type treatmentRepository struct {
	BaseRepository
}

func NewTreatmentRepository(base BaseRepository) repository.TreatmentRepository {
	return &treatmentRepository{base}
}

func (r *treatmentRepository) Create(ctx context.Context, treatment *model.Treatment) error {
	query := `
		INSERT INTO treatments (
			patient_id, doctor_id, start_date, end_date, description, status,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	treatment.CreatedAt = now
	treatment.UpdatedAt = now
	if treatment.Status == "" {
		treatment.Status = model.TreatmentStatusActive
	}

	res, err := r.exec(ctx, "treatments", "create", query,
		treatment.PatientID,
		treatment.DoctorID,
		treatment.StartDate,
		treatment.EndDate,
		treatment.Description,
		treatment.Status,
		treatment.CreatedAt,
		treatment.UpdatedAt,
	)
	if err != nil {
		return apperrors.Persistence("failed to create treatment", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Persistence("failed to read new treatment id", err)
	}
	treatment.ID = id

	return nil
}

func (r *treatmentRepository) Get(ctx context.Context, id int64) (*model.Treatment, error) {
	var treatment model.Treatment
	if err := r.get(ctx, "treatments", "get", &treatment, `SELECT * FROM treatments WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("treatment", err)
		}
		return nil, apperrors.Persistence("failed to get treatment", err)
	}
	return &treatment, nil
}

func (r *treatmentRepository) Update(ctx context.Context, id int64, patch *model.UpdateTreatmentRequest) error {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if patch.PatientID != nil {
		sets = append(sets, "patient_id = ?")
		args = append(args, *patch.PatientID)
	}
	if patch.DoctorID != nil {
		sets = append(sets, "doctor_id = ?")
		args = append(args, *patch.DoctorID)
	}
	if patch.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *patch.StartDate)
	}
	if patch.EndDate != nil {
		sets = append(sets, "end_date = ?")
		args = append(args, *patch.EndDate)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}

	query := fmt.Sprintf("UPDATE treatments SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	result, err := r.exec(ctx, "treatments", "update", query, args...)
	if err != nil {
		return apperrors.Persistence("failed to update treatment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NotFound("treatment", nil)
	}

	return nil
}

func (r *treatmentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.exec(ctx, "treatments", "delete", `DELETE FROM treatments WHERE id = ?`, id); err != nil {
		return apperrors.Persistence("failed to delete treatment", err)
	}
	return nil
}

func (r *treatmentRepository) List(ctx context.Context) ([]*model.Treatment, error) {
	var treatments []*model.Treatment
	if err := r.list(ctx, "treatments", "list", &treatments, `SELECT * FROM treatments ORDER BY id`); err != nil {
		return nil, apperrors.Persistence("failed to list treatments", err)
	}
	return treatments, nil
}

func (r *treatmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Treatment, error) {
	query := `SELECT * FROM treatments WHERE patient_id = ? ORDER BY id`

	var treatments []*model.Treatment
	if err := r.list(ctx, "treatments", "list_by_patient", &treatments, query, patientID); err != nil {
		return nil, apperrors.Persistence("failed to list treatments by patient", err)
	}
	return treatments, nil
}

func (r *treatmentRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Treatment, error) {
	query := `SELECT * FROM treatments WHERE doctor_id = ? ORDER BY id`

	var treatments []*model.Treatment
	if err := r.list(ctx, "treatments", "list_by_doctor", &treatments, query, doctorID); err != nil {
		return nil, apperrors.Persistence("failed to list treatments by doctor", err)
	}
	return treatments, nil
}

func (r *treatmentRepository) ListByStatus(ctx context.Context, status model.TreatmentStatus) ([]*model.Treatment, error) {
	query := `SELECT * FROM treatments WHERE status = ? ORDER BY id`

	var treatments []*model.Treatment
	if err := r.list(ctx, "treatments", "list_by_status", &treatments, query, status); err != nil {
		return nil, apperrors.Persistence("failed to list treatments by status", err)
	}
	return treatments, nil
}
