package bookmark

import (
	"context"
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

func (r *Repository) Create(ctx context.Context, b *Bookmark) error {
	query := r.db.Rebind(`
		INSERT INTO bookmarks (id, explorer_id, x, y, label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)

	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.ExplorerID,
		int64(b.X),
		int64(b.Y),
		b.Label,
		b.CreatedAt.Unix(),
	)
	if err != nil {
		return errors.WrapInternal("failed to create bookmark", err)
	}

	slog.With("component", "bookmark_repository", "operation", "create").
		Debug("Bookmark created", "bookmark_id", b.ID, "explorer_id", b.ExplorerID)
	return nil
}

func (r *Repository) Exists(ctx context.Context, explorerID string, x, y uint32) (bool, error) {
	query := r.db.Rebind(`
		SELECT COUNT(*) FROM bookmarks
		WHERE explorer_id = $1 AND x = $2 AND y = $3
	`)

	var count int
	if err := r.db.QueryRowContext(ctx, query, explorerID, int64(x), int64(y)).Scan(&count); err != nil {
		return false, errors.WrapInternal("failed to check bookmark", err)
	}
	return count > 0, nil
}

func (r *Repository) ListByExplorer(ctx context.Context, explorerID string) ([]Bookmark, error) {
	query := r.db.Rebind(`
		SELECT id, explorer_id, x, y, label, created_at
		FROM bookmarks
		WHERE explorer_id = $1
		ORDER BY created_at, id
	`)

	rows, err := r.db.QueryContext(ctx, query, explorerID)
	if err != nil {
		return nil, errors.WrapInternal("failed to query bookmarks", err)
	}
	defer rows.Close()

	bookmarks := []Bookmark{}
	for rows.Next() {
		var b Bookmark
		var x, y, createdAt int64
		if err := rows.Scan(&b.ID, &b.ExplorerID, &x, &y, &b.Label, &createdAt); err != nil {
			return nil, errors.WrapInternal("failed to scan bookmark", err)
		}
		b.X = uint32(x)
		b.Y = uint32(y)
		b.CreatedAt = time.Unix(createdAt, 0).UTC()
		bookmarks = append(bookmarks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.WrapInternal("error iterating bookmarks", err)
	}

	return bookmarks, nil
}

// Delete removes the bookmark only if explorerID owns it
func (r *Repository) Delete(ctx context.Context, explorerID, id string) (bool, error) {
	query := r.db.Rebind(`DELETE FROM bookmarks WHERE id = $1 AND explorer_id = $2`)

	result, err := r.db.ExecContext(ctx, query, id, explorerID)
	if err != nil {
		return false, errors.WrapInternal("failed to delete bookmark", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, errors.WrapInternal("failed to delete bookmark", err)
	}
	return n > 0, nil
}
