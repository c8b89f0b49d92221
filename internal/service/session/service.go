package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/medisuite/clinica/internal/model"
	"github.com/medisuite/clinica/internal/notification"
	"github.com/medisuite/clinica/internal/repository"
	apperrors "github.com/medisuite/clinica/pkg/errors"
	"github.com/medisuite/clinica/pkg/logger"
)

// sessionKey is the app_state slot holding the serialized current user.
const sessionKey = "currentUser"

const (
	bcryptCost = 12

	// Login throttling per email: a budget of 5 failed attempts,
	// refilling one every 12 seconds. Successful logins hand their token
	// back; throttled attempts fail like bad credentials.
	loginBurst  = 5
	loginRefill = 12 * time.Second
)

// Service owns the authenticated-identity lifecycle: login, logout,
// registration, password-reset requests and startup hydration from the
// persisted session slot. All public operations resolve to success/failure
// indicators; internal errors are logged and converted to safe
// unauthenticated outcomes, never propagated.
type Service struct {
	users    repository.UserRepository
	state    repository.StateRepository
	notifier notification.Notifier
	logger   *logger.Logger
	validate *validator.Validate

	mu      sync.RWMutex
	current *model.User
	loading bool

	lmu      sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewService(users repository.UserRepository, state repository.StateRepository,
	notifier notification.Notifier, l *logger.Logger) *Service {
	return &Service{
		users:    users,
		state:    state,
		notifier: notifier,
		logger:   l,
		validate: validator.New(),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Hydrate restores the session from the persisted slot at startup. The slot
// is only trusted as a pointer: the user is re-fetched and must still exist
// and be active, otherwise the slot is discarded and the process starts
// unauthenticated. Any store error is treated as "no session".
func (s *Service) Hydrate(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	raw, err := s.state.Get(ctx, sessionKey)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error(err, "failed to read persisted session")
		}
		return
	}

	var stored model.User
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Error(err, "discarding malformed persisted session")
		s.clearSlot(ctx)
		return
	}

	user, err := s.users.Get(ctx, stored.ID)
	if err != nil || !user.Active {
		s.logger.Info("discarding stale persisted session", "user_id", stored.ID)
		s.clearSlot(ctx)
		return
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
}

// Login authenticates by case-insensitive email and password. It succeeds
// only for existing, active users; on success the session is persisted to
// the slot so it survives a restart. Failure leaves no partial state.
func (s *Service) Login(ctx context.Context, email, password string) bool {
	// A token is reserved per attempt and returned on success, so only
	// failed attempts spend the throttle budget.
	reservation := s.limiter(email).Reserve()
	if reservation.Delay() > 0 {
		reservation.Cancel()
		s.logger.Warn("login throttled", "email", email)
		return false
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error(err, "login lookup failed")
		}
		return false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false
	}
	if !user.Active {
		return false
	}

	payload, err := json.Marshal(user)
	if err != nil {
		s.logger.Error(err, "failed to serialize session")
		return false
	}
	if err := s.state.Set(ctx, sessionKey, string(payload)); err != nil {
		s.logger.Error(err, "failed to persist session")
		return false
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	reservation.Cancel()
	s.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)
	return true
}

// Logout unconditionally clears the in-memory session and the persisted
// slot.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.clearSlot(ctx)
}

// Register creates a new active user. It fails without writing when a user
// with the same case-insensitive email already exists; uniqueness is
// enforced here, not by the store. The new account is not auto-logged-in.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) bool {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("invalid registration request", "error", err.Error())
		return false
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return false
	} else if !apperrors.IsNotFound(err) {
		s.logger.Error(err, "registration lookup failed")
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.logger.Error(err, "failed to hash password")
		return false
	}

	user := &model.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error(err, "failed to create user")
		return false
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return true
}

// ForgotPassword reports whether an account with that email exists and, if
// so, hands a reset code to the notification port. The store is never
// mutated.
func (s *Service) ForgotPassword(ctx context.Context, email string) bool {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error(err, "reset lookup failed")
		}
		return false
	}

	token := uuid.New().String()
	if err := s.notifier.SendPasswordReset(ctx, user.Email, token); err != nil {
		// Delivery is out-of-band; the request itself succeeded.
		s.logger.Error(err, "failed to send reset notification", "email", user.Email)
	}
	return true
}

// CurrentUser returns the authenticated user, or nil.
func (s *Service) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Loading reports whether startup hydration is in progress.
func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Service) clearSlot(ctx context.Context) {
	if err := s.state.Delete(ctx, sessionKey); err != nil {
		s.logger.Error(err, "failed to clear persisted session")
	}
}

func (s *Service) limiter(email string) *rate.Limiter {
	key := strings.ToLower(email)

	s.lmu.Lock()
	defer s.lmu.Unlock()

	l, ok := s.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Every(loginRefill), loginBurst)
		s.limiters[key] = l
	}
	return l
}
