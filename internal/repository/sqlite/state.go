package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/medisuite/clinica/internal/repository"
	apperrors "github.com/medisuite/clinica/pkg/errors"
)

// stateRepository backs the app_state table, a key-value slot used for the
// persisted session. Values are opaque strings owned by the caller.
type stateRepository struct {
	BaseRepository
}

func NewStateRepository(base BaseRepository) repository.StateRepository {
	return &stateRepository{base}
}

func (r *stateRepository) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM app_state WHERE key = ?`

	var value string
	if err := r.get(ctx, "app_state", "get", &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.NotFound("state key", err)
		}
		return "", apperrors.Persistence("failed to get state", err)
	}

	return value, nil
}

func (r *stateRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.exec(ctx, "app_state", "set", query, key, value, time.Now().UTC()); err != nil {
		return apperrors.Persistence("failed to set state", err)
	}
	return nil
}

func (r *stateRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.exec(ctx, "app_state", "delete", `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return apperrors.Persistence("failed to delete state", err)
	}
	return nil
}
