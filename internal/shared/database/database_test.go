package database

import (
	"context"
	"path/filepath"
	"testing"

	"galaxy-server/internal/shared/config"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "galaxy.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRebind(t *testing.T) {
	tests := []struct {
		driver string
		in     string
		want   string
	}{
		{config.DriverPostgres, "SELECT * FROM t WHERE a = $1 AND b = $2", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{config.DriverSQLite, "SELECT * FROM t WHERE a = $1 AND b = $2", "SELECT * FROM t WHERE a = ?1 AND b = ?2"},
		{config.DriverSQLite, "UPDATE t SET a = $10 WHERE id = $1", "UPDATE t SET a = ?10 WHERE id = ?1"},
		{config.DriverSQLite, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		if got := Rebind(tt.driver, tt.in); got != tt.want {
			t.Errorf("Rebind(%s, %q) = %q, want %q", tt.driver, tt.in, got, tt.want)
		}
	}
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	if _, err := OpenSQLite("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("first RunMigrations() error = %v", err)
	}
	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}

	files, err := migrationFiles()
	if err != nil {
		t.Fatalf("migrationFiles() error = %v", err)
	}

	var applied int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != len(files) {
		t.Errorf("applied %d migrations, want %d", applied, len(files))
	}

	for _, table := range []string{"explorers", "bookmarks"} {
		var n int
		err := db.QueryRowContext(ctx,
			db.Rebind("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1"), table).Scan(&n)
		if err != nil || n != 1 {
			t.Errorf("table %s missing (n=%d, err=%v)", table, n, err)
		}
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	_, err := db.ExecContext(ctx,
		db.Rebind("INSERT INTO bookmarks (id, explorer_id, x, y, label, created_at) VALUES ($1, $2, $3, $4, $5, $6)"),
		"b1", "missing-explorer", 1, 2, "orphan", 0)
	if err == nil {
		t.Fatal("expected foreign key violation for an unknown explorer")
	}
}
