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

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			email, password_hash, first_name, last_name, role, active,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.exec(ctx, "users", "create", query,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Role,
		user.Active,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return apperrors.Persistence("failed to create user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Persistence("failed to read new user id", err)
	}
	user.ID = id

	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT * FROM users WHERE id = ?`

	var user model.User
	if err := r.get(ctx, "users", "get", &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, apperrors.Persistence("failed to get user", err)
	}

	return &user, nil
}

// GetByEmail is a case-insensitive indexed lookup.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM users WHERE lower(email) = lower(?) LIMIT 1`

	var user model.User
	if err := r.get(ctx, "users", "get_by_email", &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, apperrors.Persistence("failed to get user by email", err)
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, patch *model.UpdateUserRequest) error {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *patch.PasswordHash)
	}
	if patch.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *patch.FirstName)
	}
	if patch.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *patch.LastName)
	}
	if patch.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, *patch.Role)
	}
	if patch.Active != nil {
		sets = append(sets, "active = ?")
		args = append(args, *patch.Active)
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	result, err := r.exec(ctx, "users", "update", query, args...)
	if err != nil {
		return apperrors.Persistence("failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Persistence("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NotFound("user", nil)
	}

	return nil
}

// Delete is idempotent: removing an absent id is not an error.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.exec(ctx, "users", "delete", `DELETE FROM users WHERE id = ?`, id); err != nil {
		return apperrors.Persistence("failed to delete user", err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT * FROM users ORDER BY id`

	var users []*model.User
	if err := r.list(ctx, "users", "list", &users, query); err != nil {
		return nil, apperrors.Persistence("failed to list users", err)
	}

	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.get(ctx, "users", "count", &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, apperrors.Persistence("failed to count users", err)
	}
	return count, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role string) ([]*model.User, error) {
	query := `SELECT * FROM users WHERE role = ? ORDER BY id`

	var users []*model.User
	if err := r.list(ctx, "users", "list_by_role", &users, query, role); err != nil {
		return nil, apperrors.Persistence("failed to list users by role", err)
	}

	return users, nil
}
