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

type medicationRepository struct {
	BaseRepository
}

func NewMedicationRepository(base BaseRepository) repository.MedicationRepository {
	return &medicationRepository{base}
}

func (r *medicationRepository) Create(ctx context.Context, medication *model.Medication) error {
	query := `
		INSERT INTO medications (
			name, description, active_ingredient, form, dose, stock,
			expiry_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	medication.CreatedAt = now
	medication.UpdatedAt = now

	res, err := r.exec(ctx, "medications", "create", query,
		medication.Name,
		medication.Description,
		medication.ActiveIngredient,
		medication.Form,
		medication.Dose,
		medication.Stock,
		medication.ExpiryDate,
		medication.CreatedAt,
		medication.UpdatedAt,
	)
	if err != nil {
		return apperrors.Persistence("failed to create medication", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Persistence("failed to read new medication id", err)
	}
	medication.ID = id

	return nil
}

func (r *medicationRepository) Get(ctx context.Context, id int64) (*model.Medication, error) {
	var medication model.Medication
	if err := r.get(ctx, "medications", "get", &medication, `SELECT * FROM medications WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("medication", err)
		}
		return nil, apperrors.Persistence("failed to get medication", err)
	}
	return &medication, nil
}

func (r *medicationRepository) Update(ctx context.Context, id int64, patch *model.UpdateMedicationRequest) error {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.ActiveIngredient != nil {
		sets = append(sets, "active_ingredient = ?")
		args = append(args, *patch.ActiveIngredient)
	}
	if patch.Form != nil {
		sets = append(sets, "form = ?")
		args = append(args, *patch.Form)
	}
	if patch.Dose != nil {
		sets = append(sets, "dose = ?")
		args = append(args, *patch.Dose)
	}
	if patch.Stock != nil {
		sets = append(sets, "stock = ?")
		args = append(args, *patch.Stock)
	}
	if patch.ExpiryDate != nil {
		sets = append(sets, "expiry_date = ?")
		args = append(args, *patch.ExpiryDate)
	}

	query := fmt.Sprintf("UPDATE medications SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	result, err := r.exec(ctx, "medications", "update", query, args...)
	if err != nil {
		return apperrors.Persistence("failed to update medication", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NotFound("medication", nil)
	}

	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.exec(ctx, "medications", "delete", `DELETE FROM medications WHERE id = ?`, id); err != nil {
		return apperrors.Persistence("failed to delete medication", err)
	}
	return nil
}

func (r *medicationRepository) List(ctx context.Context) ([]*model.Medication, error) {
	var medications []*model.Medication
	if err := r.list(ctx, "medications", "list", &medications, `SELECT * FROM medications ORDER BY id`); err != nil {
		return nil, apperrors.Persistence("failed to list medications", err)
	}
	return medications, nil
}

func (r *medicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.get(ctx, "medications", "count", &count, `SELECT COUNT(*) FROM medications`); err != nil {
		return 0, apperrors.Persistence("failed to count medications", err)
	}
	return count, nil
}

func (r *medicationRepository) ListByName(ctx context.Context, name string) ([]*model.Medication, error) {
	query := `SELECT * FROM medications WHERE name = ? ORDER BY id`

	var medications []*model.Medication
	if err := r.list(ctx, "medications", "list_by_name", &medications, query, name); err != nil {
		return nil, apperrors.Persistence("failed to list medications by name", err)
	}
	return medications, nil
}

func (r *medicationRepository) ListByActiveIngredient(ctx context.Context, ingredient string) ([]*model.Medication, error) {
	query := `SELECT * FROM medications WHERE active_ingredient = ? ORDER BY id`

	var medications []*model.Medication
	if err := r.list(ctx, "medications", "list_by_active_ingredient", &medications, query, ingredient); err != nil {
		return nil, apperrors.Persistence("failed to list medications by active ingredient", err)
	}
	return medications, nil
}
