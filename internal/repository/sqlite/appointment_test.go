package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisuite/clinica/internal/model"
)

func newTestAppointment(patientID, doctorID int64, day time.Time) *model.Appointment {
	return &model.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      day,
		Time:      "10:30",
		Reason:    "checkup",
		Status:    model.AppointmentStatusScheduled,
	}
}

func TestAppointmentRepository_KeysAreNeverReused(t *testing.T) {
	repo := NewAppointmentRepository(newTestBase(t))
	ctx := context.Background()
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	first := newTestAppointment(1, 1, day)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Delete(ctx, first.ID))

	second := newTestAppointment(1, 1, day)
	require.NoError(t, repo.Create(ctx, second))

	assert.Greater(t, second.ID, first.ID, "key issued after a delete must not reuse the deleted key")
}

func TestAppointmentRepository_IndexedLookups(t *testing.T) {
	repo := NewAppointmentRepository(newTestBase(t))
	ctx := context.Background()

	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)

	scheduled := newTestAppointment(1, 7, monday)
	cancelled := newTestAppointment(2, 7, tuesday)
	cancelled.Status = model.AppointmentStatusCancelled
	require.NoError(t, repo.Create(ctx, scheduled))
	require.NoError(t, repo.Create(ctx, cancelled))

	byStatus, err := repo.ListByStatus(ctx, model.AppointmentStatusCancelled)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, cancelled.ID, byStatus[0].ID)

	byPatient, err := repo.ListByPatient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byPatient, 1)
	assert.Equal(t, scheduled.ID, byPatient[0].ID)

	byDoctor, err := repo.ListByDoctor(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, byDoctor, 2)

	byDate, err := repo.ListByDate(ctx, monday)
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, scheduled.ID, byDate[0].ID)
}

func TestAppointmentRepository_UpdateStatus(t *testing.T) {
	repo := NewAppointmentRepository(newTestBase(t))
	ctx := context.Background()

	appointment := newTestAppointment(1, 1, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, appointment))

	done := model.AppointmentStatusCompleted
	notes := "all good"
	require.NoError(t, repo.Update(ctx, appointment.ID, &model.UpdateAppointmentRequest{
		Status: &done,
		Notes:  &notes,
	}))

	got, err := repo.Get(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, got.Status)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "all good", *got.Notes)
	assert.Equal(t, "checkup", got.Reason)
}
