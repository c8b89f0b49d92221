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

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(base BaseRepository) repository.DoctorRepository {
	return &doctorRepository{base}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			user_id, specialty, license, phone, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	res, err := r.exec(ctx, "doctors", "create", query,
		doctor.UserID,
		doctor.Specialty,
		doctor.License,
		doctor.Phone,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return apperrors.Persistence("failed to create doctor", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Persistence("failed to read new doctor id", err)
	}
	doctor.ID = id

	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := r.get(ctx, "doctors", "get", &doctor, `SELECT * FROM doctors WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Persistence("failed to get doctor", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID int64) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE user_id = ? LIMIT 1`

	var doctor model.Doctor
	if err := r.get(ctx, "doctors", "get_by_user_id", &doctor, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Persistence("failed to get doctor by user id", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, id int64, patch *model.UpdateDoctorRequest) error {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if patch.UserID != nil {
		sets = append(sets, "user_id = ?")
		args = append(args, *patch.UserID)
	}
	if patch.Specialty != nil {
		sets = append(sets, "specialty = ?")
		args = append(args, *patch.Specialty)
	}
	if patch.License != nil {
		sets = append(sets, "license = ?")
		args = append(args, *patch.License)
	}
	if patch.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *patch.Phone)
	}

	query := fmt.Sprintf("UPDATE doctors SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	result, err := r.exec(ctx, "doctors", "update", query, args...)
	if err != nil {
		return apperrors.Persistence("failed to update doctor", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NotFound("doctor", nil)
	}

	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.exec(ctx, "doctors", "delete", `DELETE FROM doctors WHERE id = ?`, id); err != nil {
		return apperrors.Persistence("failed to delete doctor", err)
	}
	return nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	var doctors []*model.Doctor
	if err := r.list(ctx, "doctors", "list", &doctors, `SELECT * FROM doctors ORDER BY id`); err != nil {
		return nil, apperrors.Persistence("failed to list doctors", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.get(ctx, "doctors", "count", &count, `SELECT COUNT(*) FROM doctors`); err != nil {
		return 0, apperrors.Persistence("failed to count doctors", err)
	}
	return count, nil
}

func (r *doctorRepository) ListBySpecialty(ctx context.Context, specialty string) ([]*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE specialty = ? ORDER BY id`

	var doctors []*model.Doctor
	if err := r.list(ctx, "doctors", "list_by_specialty", &doctors, query, specialty); err != nil {
		return nil, apperrors.Persistence("failed to list doctors by specialty", err)
	}
	return doctors, nil
}
