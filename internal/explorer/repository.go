package explorer

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"galaxy-server/internal/shared/database"
	"galaxy-server/internal/shared/errors"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

const explorerColumns = `id, name, provider, provider_user_id, avatar_url, created_at, last_login_at`

func (r *Repository) Create(ctx context.Context, e *Explorer) error {
	logger := slog.With(
		"component", "explorer_repository",
		"operation", "create",
		"explorer_id", e.ID,
		"provider", e.Provider,
	)

	query := r.db.Rebind(`
		INSERT INTO explorers (` + explorerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Name,
		e.Provider,
		e.ProviderUserID,
		e.AvatarURL,
		e.CreatedAt.Unix(),
		e.LastLoginAt.Unix(),
	)
	if err != nil {
		return errors.WrapInternal("failed to create explorer", err)
	}

	logger.Info("Explorer created")
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Explorer, error) {
	query := r.db.Rebind(`SELECT ` + explorerColumns + ` FROM explorers WHERE id = $1`)

	e, err := scanExplorer(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("explorer %s not found", id)
	}
	if err != nil {
		return nil, errors.WrapInternal("failed to get explorer", err)
	}
	return e, nil
}

func (r *Repository) GetByProvider(ctx context.Context, provider, providerUserID string) (*Explorer, error) {
	query := r.db.Rebind(`
		SELECT ` + explorerColumns + `
		FROM explorers
		WHERE provider = $1 AND provider_user_id = $2
	`)

	e, err := scanExplorer(r.db.QueryRowContext(ctx, query, provider, providerUserID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("no %s explorer for user %s", provider, providerUserID)
	}
	if err != nil {
		return nil, errors.WrapInternal("failed to find explorer by provider", err)
	}
	return e, nil
}

func (r *Repository) UpdateLogin(ctx context.Context, id, name, avatarURL string, at time.Time) error {
	query := r.db.Rebind(`
		UPDATE explorers
		SET name = $1, avatar_url = $2, last_login_at = $3
		WHERE id = $4
	`)

	result, err := r.db.ExecContext(ctx, query, name, avatarURL, at.Unix(), id)
	if err != nil {
		return errors.WrapInternal("failed to update explorer login", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.WrapInternal("failed to update explorer login", err)
	}
	if rows == 0 {
		return errors.NotFoundf("explorer %s not found", id)
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM explorers").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count explorers: %w", err)
	}
	return count, nil
}

func scanExplorer(row *sql.Row) (*Explorer, error) {
	var e Explorer
	var createdAt, lastLoginAt int64
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Provider,
		&e.ProviderUserID,
		&e.AvatarURL,
		&createdAt,
		&lastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = time.Unix(createdAt, 0).UTC()
	e.LastLoginAt = time.Unix(lastLoginAt, 0).UTC()
	return &e, nil
}
