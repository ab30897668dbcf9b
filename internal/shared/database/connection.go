package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"galaxy-server/internal/shared/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
	Driver string
}

type Tx struct {
	*sql.Tx
	Driver string
}

type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

var placeholder = regexp.MustCompile(`\$(\d+)`)

// Rebind rewrites postgres $N placeholders into the numbered ?N form sqlite understands
func Rebind(driver, query string) string {
	if driver != config.DriverSQLite {
		return query
	}
	return placeholder.ReplaceAllString(query, "?$1")
}

func (db *DB) Rebind(query string) string {
	return Rebind(db.Driver, query)
}

func (tx *Tx) Rebind(query string) string {
	return Rebind(tx.Driver, query)
}

func (db *DB) BeginTxContext(ctx context.Context) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{Tx: tx, Driver: db.Driver}, nil
}

func Connect(cfg *config.Config) (*DB, error) {
	logger := slog.With("component", "database", "operation", "connect")
	logger.Debug("Initializing database connection", "driver", cfg.Database.Driver)

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.Database.SQLitePath)
	case config.DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	logger.Info("Connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"user", cfg.Database.User,
		"database", cfg.Database.Name,
		"sslmode", cfg.Database.SSLMode,
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		logger.Error("Failed to open database connection",
			"error", err, "host", cfg.Database.Host, "database", cfg.Database.Name)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := ping(logger, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("Database connection established successfully",
		"host", cfg.Database.Host, "database", cfg.Database.Name)

	return &DB{DB: sqlDB, Driver: config.DriverPostgres}, nil
}

// OpenSQLite opens an embedded database file with foreign keys enforced
func OpenSQLite(path string) (*DB, error) {
	logger := slog.With("component", "database", "operation", "open_sqlite")

	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	logger.Info("Opening sqlite database", "path", cleanPath)

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("Failed to open sqlite database", "error", err, "path", cleanPath)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite serializes writers; one connection avoids SQLITE_BUSY under load
	sqlDB.SetMaxOpenConns(1)

	if err := ping(logger, sqlDB); err != nil {
		return nil, err
	}

	return &DB{DB: sqlDB, Driver: config.DriverSQLite}, nil
}

func ping(logger *slog.Logger, sqlDB *sql.DB) error {
	logger.Debug("Testing database connection with ping")
	if err := sqlDB.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Error("Failed to close database after ping failure", "close_error", closeErr, "ping_error", err)
		}
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
