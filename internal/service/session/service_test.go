package session_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisuite/clinica/internal/model"
	"github.com/medisuite/clinica/internal/repository"
	"github.com/medisuite/clinica/internal/repository/sqlite"
	"github.com/medisuite/clinica/internal/service/session"
	apperrors "github.com/medisuite/clinica/pkg/errors"
	"github.com/medisuite/clinica/pkg/logger"
	"github.com/medisuite/clinica/pkg/metrics"
)

// spyNotifier records reset requests instead of delivering them.
type spyNotifier struct {
	emails []string
}

func (n *spyNotifier) SendPasswordReset(_ context.Context, email, _ string) error {
	n.emails = append(n.emails, email)
	return nil
}

type fixture struct {
	users    repository.UserRepository
	state    repository.StateRepository
	notifier *spyNotifier
	log      *logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "clinica.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	base := sqlite.NewBaseRepository(db, metrics.New(prometheus.NewRegistry(), "session_test"))
	return &fixture{
		users:    sqlite.NewUserRepository(base),
		state:    sqlite.NewStateRepository(base),
		notifier: &spyNotifier{},
		log:      logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard}),
	}
}

func (f *fixture) newService() *session.Service {
	return session.NewService(f.users, f.state, f.notifier, f.log)
}

func registerUser(t *testing.T, svc *session.Service, email, password string) {
	t.Helper()
	ok := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: "Test",
		LastName:  "User",
		Role:      model.RoleNurse,
	})
	require.True(t, ok, "registration should succeed for %s", email)
}

func TestLogin_ActiveUserWithValidCredentials(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()
	ctx := context.Background()

	registerUser(t, svc, "nurse@clinica.com", "secret1")

	assert.True(t, svc.Login(ctx, "nurse@clinica.com", "secret1"))
	assert.True(t, svc.IsAuthenticated())
	require.NotNil(t, svc.CurrentUser())
	assert.Equal(t, "nurse@clinica.com", svc.CurrentUser().Email)
}

func TestLogin_EmailLookupIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()

	registerUser(t, svc, "nurse@clinica.com", "secret1")

	assert.True(t, svc.Login(context.Background(), "NURSE@Clinica.COM", "secret1"))
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()

	registerUser(t, svc, "nurse@clinica.com", "secret1")

	assert.False(t, svc.Login(context.Background(), "nurse@clinica.com", "wrong"))
	assert.False(t, svc.IsAuthenticated())
}

func TestLogin_InactiveUserWithCorrectPassword(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()
	ctx := context.Background()

	registerUser(t, svc, "nurse@clinica.com", "secret1")

	user, err := f.users.GetByEmail(ctx, "nurse@clinica.com")
	require.NoError(t, err)
	inactive := false
	require.NoError(t, f.users.Update(ctx, user.ID, &model.UpdateUserRequest{Active: &inactive}))

	assert.False(t, svc.Login(ctx, "nurse@clinica.com", "secret1"))
	assert.False(t, svc.IsAuthenticated())
}

func TestLogin_SuccessfulLoginsAreNotThrottled(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()
	ctx := context.Background()

	registerUser(t, svc, "nurse@clinica.com", "secret1")

	// Valid credentials keep working past the failed-attempt budget.
	for i := 0; i < 10; i++ {
		require.True(t, svc.Login(ctx, "nurse@clinica.com", "secret1"), "login %d", i)
	}
}

func TestLogin_FailedAttemptsAreThrottled(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()
	ctx := context.Background()

	registerUser(t, svc, "nurse@clinica.com", "secret1")

	for i := 0; i < 5; i++ {
		require.False(t, svc.Login(ctx, "nurse@clinica.com", "wrong"), "attempt %d", i)
	}

	// Budget exhausted: even valid credentials are rejected until tokens
	// refill.
	assert.False(t, svc.Login(ctx, "nurse@clinica.com", "secret1"))
}

func TestRegister_DuplicateEmailDiffersOnlyInCase(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()
	ctx := context.Background()

	registerUser(t, svc, "nurse@clinica.com", "secret1")

	ok := svc.Register(ctx, &model.RegisterRequest{
		Email:     "Nurse@Clinica.com",
		Password:  "other12",
		FirstName: "Other",
		LastName:  "User",
		Role:      model.RoleNurse,
	})
	assert.False(t, ok)

	count, err := f.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "failed registration must not insert a row")
}

func TestRegister_StoresLowercasedEmail(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()
	ctx := context.Background()

	registerUser(t, svc, "Nurse@Clinica.COM", "secret1")

	user, err := f.users.GetByEmail(ctx, "nurse@clinica.com")
	require.NoError(t, err)
	assert.Equal(t, "nurse@clinica.com", user.Email)
	assert.True(t, user.Active, "new accounts default to active")
	assert.False(t, svc.IsAuthenticated(), "register must not auto-authenticate")
}

func TestRegister_RejectsInvalidRequest(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()

	ok := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "not-an-email",
		Password:  "secret1",
		FirstName: "Test",
		LastName:  "User",
		Role:      model.RoleNurse,
	})
	assert.False(t, ok)
}

func TestHydrate_RestoresSessionAcrossRestart(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()
	ctx := context.Background()

	registerUser(t, svc, "nurse@clinica.com", "secret1")
	require.True(t, svc.Login(ctx, "nurse@clinica.com", "secret1"))

	// A new service over the same store stands in for a process restart.
	restarted := f.newService()
	restarted.Hydrate(ctx)

	assert.True(t, restarted.IsAuthenticated())
	require.NotNil(t, restarted.CurrentUser())
	assert.Equal(t, svc.CurrentUser().ID, restarted.CurrentUser().ID)
	assert.False(t, restarted.Loading())
}

func TestHydrate_UserDeletedBetweenLoginAndRestart(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()
	ctx := context.Background()

	registerUser(t, svc, "nurse@clinica.com", "secret1")
	require.True(t, svc.Login(ctx, "nurse@clinica.com", "secret1"))
	require.NoError(t, f.users.Delete(ctx, svc.CurrentUser().ID))

	restarted := f.newService()
	restarted.Hydrate(ctx)

	assert.False(t, restarted.IsAuthenticated())
}

func TestHydrate_UserDeactivatedBetweenLoginAndRestart(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()
	ctx := context.Background()

	registerUser(t, svc, "nurse@clinica.com", "secret1")
	require.True(t, svc.Login(ctx, "nurse@clinica.com", "secret1"))

	inactive := false
	require.NoError(t, f.users.Update(ctx, svc.CurrentUser().ID, &model.UpdateUserRequest{Active: &inactive}))

	restarted := f.newService()
	restarted.Hydrate(ctx)

	assert.False(t, restarted.IsAuthenticated())

	// The stale slot is discarded, not kept for a retry.
	_, err := f.state.Get(ctx, "currentUser")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestHydrate_MalformedSlotIsDiscarded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.state.Set(ctx, "currentUser", "{not json"))

	svc := f.newService()
	svc.Hydrate(ctx)

	assert.False(t, svc.IsAuthenticated())
}

func TestLogout_ClearsPersistedSlot(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()
	ctx := context.Background()

	registerUser(t, svc, "nurse@clinica.com", "secret1")
	require.True(t, svc.Login(ctx, "nurse@clinica.com", "secret1"))

	svc.Logout(ctx)
	assert.False(t, svc.IsAuthenticated())

	restarted := f.newService()
	restarted.Hydrate(ctx)
	assert.False(t, restarted.IsAuthenticated())
}

func TestForgotPassword(t *testing.T) {
	f := newFixture(t)
	svc := f.newService()
	ctx := context.Background()

	registerUser(t, svc, "nurse@clinica.com", "secret1")
	before, err := f.users.GetByEmail(ctx, "nurse@clinica.com")
	require.NoError(t, err)

	assert.False(t, svc.ForgotPassword(ctx, "unknown@x.com"))
	assert.Empty(t, f.notifier.emails)

	assert.True(t, svc.ForgotPassword(ctx, "nurse@clinica.com"))
	assert.Equal(t, []string{"nurse@clinica.com"}, f.notifier.emails)

	// The request performs no store mutation.
	after, err := f.users.GetByEmail(ctx, "nurse@clinica.com")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}
