package seed_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medisuite/clinica/internal/model"
	"github.com/medisuite/clinica/internal/repository"
	"github.com/medisuite/clinica/internal/repository/sqlite"
	"github.com/medisuite/clinica/internal/seed"
	"github.com/medisuite/clinica/pkg/logger"
	"github.com/medisuite/clinica/pkg/metrics"
)

type fixture struct {
	users       repository.UserRepository
	doctors     repository.DoctorRepository
	patients    repository.PatientRepository
	medications repository.MedicationRepository
	seeder      *seed.Seeder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "clinica.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	base := sqlite.NewBaseRepository(db, metrics.New(prometheus.NewRegistry(), "seed_test"))
	f := &fixture{
		users:       sqlite.NewUserRepository(base),
		doctors:     sqlite.NewDoctorRepository(base),
		patients:    sqlite.NewPatientRepository(base),
		medications: sqlite.NewMedicationRepository(base),
	}
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	f.seeder = seed.NewSeeder(f.users, f.doctors, f.patients, f.medications, log)
	return f
}

func TestRun_PopulatesEmptyStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.seeder.Run(ctx))

	count, err := f.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	admin, err := f.users.GetByEmail(ctx, "admin@clinica.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, admin.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	doctorUser, err := f.users.GetByEmail(ctx, "doctor@clinica.com")
	require.NoError(t, err)

	doctor, err := f.doctors.GetByUserID(ctx, doctorUser.ID)
	require.NoError(t, err)
	assert.Equal(t, "General Medicine", doctor.Specialty)
	assert.Equal(t, "MG-12345", doctor.License)

	patients, err := f.patients.List(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Maria", patients[0].FirstName)
	assert.Equal(t, "Gonzalez", patients[0].LastName)

	medications, err := f.medications.List(ctx)
	require.NoError(t, err)
	require.Len(t, medications, 1)
	assert.Equal(t, "Paracetamol", medications[0].Name)
	assert.Equal(t, 100, medications[0].Stock)
}

func TestRun_SecondRunIsANoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.seeder.Run(ctx))
	require.NoError(t, f.seeder.Run(ctx))

	count, err := f.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	patients, err := f.patients.List(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 1)
}

func TestRun_SkipsNonEmptyStoreWithoutSeedUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.Create(ctx, &model.User{
		Email:        "existing@clinica.com",
		PasswordHash: "x",
		FirstName:    "Existing",
		LastName:     "User",
		Role:         model.RoleNurse,
		Active:       true,
	}))

	require.NoError(t, f.seeder.Run(ctx))

	count, err := f.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "any user present disables seeding")
}
