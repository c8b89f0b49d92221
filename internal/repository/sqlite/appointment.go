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

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			patient_id, doctor_id, date, time, reason, status, notes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	if appointment.Status == "" {
		appointment.Status = model.AppointmentStatusScheduled
	}

	res, err := r.exec(ctx, "appointments", "create", query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Time,
		appointment.Reason,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return apperrors.Persistence("failed to create appointment", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Persistence("failed to read new appointment id", err)
	}
	appointment.ID = id

	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.get(ctx, "appointments", "get", &appointment, `SELECT * FROM appointments WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, apperrors.Persistence("failed to get appointment", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, id int64, patch *model.UpdateAppointmentRequest) error {
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
	if patch.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *patch.Date)
	}
	if patch.Time != nil {
		sets = append(sets, "time = ?")
		args = append(args, *patch.Time)
	}
	if patch.Reason != nil {
		sets = append(sets, "reason = ?")
		args = append(args, *patch.Reason)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}

	query := fmt.Sprintf("UPDATE appointments SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	result, err := r.exec(ctx, "appointments", "update", query, args...)
	if err != nil {
		return apperrors.Persistence("failed to update appointment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}

	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.exec(ctx, "appointments", "delete", `DELETE FROM appointments WHERE id = ?`, id); err != nil {
		return apperrors.Persistence("failed to delete appointment", err)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	if err := r.list(ctx, "appointments", "list", &appointments, `SELECT * FROM appointments ORDER BY id`); err != nil {
		return nil, apperrors.Persistence("failed to list appointments", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE patient_id = ? ORDER BY id`

	var appointments []*model.Appointment
	if err := r.list(ctx, "appointments", "list_by_patient", &appointments, query, patientID); err != nil {
		return nil, apperrors.Persistence("failed to list appointments by patient", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE doctor_id = ? ORDER BY id`

	var appointments []*model.Appointment
	if err := r.list(ctx, "appointments", "list_by_doctor", &appointments, query, doctorID); err != nil {
		return nil, apperrors.Persistence("failed to list appointments by doctor", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByStatus(ctx context.Context, status model.AppointmentStatus) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE status = ? ORDER BY id`

	var appointments []*model.Appointment
	if err := r.list(ctx, "appointments", "list_by_status", &appointments, query, status); err != nil {
		return nil, apperrors.Persistence("failed to list appointments by status", err)
	}
	return appointments, nil
}

// ListByDate matches the calendar day of the stored timestamp, in UTC.
func (r *appointmentRepository) ListByDate(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE date(date) = date(?) ORDER BY id`

	var appointments []*model.Appointment
	if err := r.list(ctx, "appointments", "list_by_date", &appointments, query, date.UTC()); err != nil {
		return nil, apperrors.Persistence("failed to list appointments by date", err)
	}
	return appointments, nil
}
