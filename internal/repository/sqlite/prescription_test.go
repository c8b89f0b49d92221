package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisuite/clinica/internal/model"
	apperrors "github.com/medisuite/clinica/pkg/errors"
)

func TestPrescriptionRepository_RoundTrip(t *testing.T) {
	repo := NewPrescriptionRepository(newTestBase(t))
	ctx := context.Background()

	prescription := &model.Prescription{
		TreatmentID:  1,
		MedicationID: 2,
		Dose:         "500mg",
		Frequency:    "every 8 hours",
		Duration:     "5 days",
		Instructions: "After meals",
	}
	require.NoError(t, repo.Create(ctx, prescription))
	require.NotZero(t, prescription.ID)

	got, err := repo.Get(ctx, prescription.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TreatmentID)
	assert.Equal(t, int64(2), got.MedicationID)
	assert.Equal(t, "500mg", got.Dose)
	assert.Equal(t, "After meals", got.Instructions)
}

func TestPrescriptionRepository_IndexedLookups(t *testing.T) {
	repo := NewPrescriptionRepository(newTestBase(t))
	ctx := context.Background()

	for _, p := range []*model.Prescription{
		{TreatmentID: 1, MedicationID: 10, Dose: "500mg", Frequency: "every 8 hours", Duration: "5 days"},
		{TreatmentID: 1, MedicationID: 20, Dose: "400mg", Frequency: "every 12 hours", Duration: "3 days"},
		{TreatmentID: 2, MedicationID: 10, Dose: "250mg", Frequency: "daily", Duration: "7 days"},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	byTreatment, err := repo.ListByTreatment(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byTreatment, 2)

	byMedication, err := repo.ListByMedication(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, byMedication, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPrescriptionRepository_UpdatePatch(t *testing.T) {
	repo := NewPrescriptionRepository(newTestBase(t))
	ctx := context.Background()

	prescription := &model.Prescription{
		TreatmentID:  1,
		MedicationID: 2,
		Dose:         "500mg",
		Frequency:    "every 8 hours",
		Duration:     "5 days",
	}
	require.NoError(t, repo.Create(ctx, prescription))

	dose := "250mg"
	require.NoError(t, repo.Update(ctx, prescription.ID, &model.UpdatePrescriptionRequest{Dose: &dose}))

	got, err := repo.Get(ctx, prescription.ID)
	require.NoError(t, err)
	assert.Equal(t, "250mg", got.Dose)
	assert.Equal(t, "every 8 hours", got.Frequency, "untouched fields keep their values")
}

func TestPrescriptionRepository_DeleteIsIdempotent(t *testing.T) {
	repo := NewPrescriptionRepository(newTestBase(t))
	ctx := context.Background()

	prescription := &model.Prescription{TreatmentID: 1, MedicationID: 2, Dose: "500mg"}
	require.NoError(t, repo.Create(ctx, prescription))

	require.NoError(t, repo.Delete(ctx, prescription.ID))
	require.NoError(t, repo.Delete(ctx, prescription.ID))

	_, err := repo.Get(ctx, prescription.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
