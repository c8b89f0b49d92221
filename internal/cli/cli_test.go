package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisuite/clinica/internal/model"
	"github.com/medisuite/clinica/internal/notification"
	"github.com/medisuite/clinica/internal/repository/sqlite"
	"github.com/medisuite/clinica/internal/service/session"
	apperrors "github.com/medisuite/clinica/pkg/errors"
	"github.com/medisuite/clinica/pkg/logger"
	"github.com/medisuite/clinica/pkg/metrics"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "clinica.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	base := sqlite.NewBaseRepository(db, metrics.New(prometheus.NewRegistry(), "cli_test"))
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})

	users := sqlite.NewUserRepository(base)
	state := sqlite.NewStateRepository(base)

	return &App{
		Logger:   log,
		Session:  session.NewService(users, state, notification.NewNoop(log), log),
		Users:    users,
		Patients: sqlite.NewPatientRepository(base),
	}
}

func login(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()

	ok := app.Session.Register(ctx, &model.RegisterRequest{
		Email:     "staff@clinica.com",
		Password:  "secret1",
		FirstName: "Staff",
		LastName:  "User",
		Role:      model.RoleReceptionist,
	})
	require.True(t, ok)
	require.True(t, app.Session.Login(ctx, "staff@clinica.com", "secret1"))
}

func execute(app *App, args ...string) (string, error) {
	root := NewRootCommand(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPatientsAdd_CreatesValidatedPatient(t *testing.T) {
	app := newTestApp(t)
	login(t, app)

	out, err := execute(app, "patients", "add",
		"--first-name", "Maria",
		"--last-name", "Gonzalez",
		"--birth-date", "1985-05-15",
		"--gender", "Female",
		"--national-id", "12345678",
		"--email", "maria@example.com",
		"--blood-type", "O+")
	require.NoError(t, err)
	assert.Contains(t, out, "created patient")

	patients, err := app.Patients.List(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Maria", patients[0].FirstName)
	assert.Equal(t, "12345678", patients[0].NationalID)
	require.NotNil(t, patients[0].BloodType)
	assert.Equal(t, "O+", *patients[0].BloodType)
}

func TestPatientsAdd_RejectsInvalidEmail(t *testing.T) {
	app := newTestApp(t)
	login(t, app)

	_, err := execute(app, "patients", "add",
		"--first-name", "Maria",
		"--last-name", "Gonzalez",
		"--birth-date", "1985-05-15",
		"--gender", "Female",
		"--national-id", "12345678",
		"--email", "not-an-email")
	assert.True(t, apperrors.IsValidation(err))

	patients, err := app.Patients.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, patients)
}

func TestPatientsAdd_RejectsBadBirthDate(t *testing.T) {
	app := newTestApp(t)
	login(t, app)

	_, err := execute(app, "patients", "add",
		"--first-name", "Maria",
		"--last-name", "Gonzalez",
		"--birth-date", "15/05/1985",
		"--gender", "Female",
		"--national-id", "12345678")
	assert.ErrorContains(t, err, "invalid birth date")
}

func TestPatientsAdd_RequiresLogin(t *testing.T) {
	app := newTestApp(t)

	_, err := execute(app, "patients", "add",
		"--first-name", "Maria",
		"--last-name", "Gonzalez",
		"--birth-date", "1985-05-15",
		"--gender", "Female",
		"--national-id", "12345678")
	assert.ErrorIs(t, err, errNotAuthenticated)
}
