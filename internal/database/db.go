// Package database stores lunar anniversaries in SQLite.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
)

// MemoryPath opens a private in-memory store that lives as long as the DB.
const MemoryPath = ":memory:"

// DB is the anniversary store.
type DB struct {
	*sql.DB
	logger *slog.Logger
	path   string
}

// Config holds database configuration options.
type Config struct {
	Path            string        // SQLite file, or MemoryPath
	MaxOpenConns    int           // forced to 1 for MemoryPath
	MaxIdleConns    int           // forced to 1 for MemoryPath
	ConnMaxLifetime time.Duration // ignored for MemoryPath
}

// DefaultConfig returns pool settings for the anniversary store. SQLite has
// a single writer, so the pool holds one connection.
func DefaultConfig(path string) Config {
	return Config{
		Path:            path,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}
}

// dsn builds the go-sqlite3 connection string. Every store enforces the
// anniversary constraints and waits on a locked file; only file stores use
// WAL journaling.
func dsn(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_busy_timeout", "5000")
	if path != MemoryPath {
		params.Set("_journal_mode", "WAL")
		params.Set("_synchronous", "NORMAL")
	}
	return path + "?" + params.Encode()
}

// Open connects to the anniversary store at cfg.Path, creating its
// directory when needed. The caller must Close it.
func Open(cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	memory := cfg.Path == MemoryPath
	if !memory {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	sqlDB, err := sql.Open("sqlite3", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Each connection to :memory: sees its own empty database, and a
	// recycled connection loses it.
	if memory {
		cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime = 1, 1, 0
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("anniversary store opened",
		slog.String("path", cfg.Path),
		slog.Bool("memory", memory),
	)

	return &DB{DB: sqlDB, logger: logger, path: cfg.Path}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.logger.Info("closing anniversary store", slog.String("path", db.path))
	return db.DB.Close()
}

// HealthReport is the state of the store reported by /health.
type HealthReport struct {
	SchemaVersion int `json:"schema_version"`
	Anniversaries int `json:"anniversaries"`
	LeapMonth     int `json:"leap_month"`
}

// Health pings the store and reports its schema version and contents.
func (db *DB) Health(ctx context.Context) (*HealthReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	version, err := db.SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}
	if version < len(migrationsSQL) {
		return nil, fmt.Errorf("schema at version %d, want %d", version, len(migrationsSQL))
	}

	stats, err := db.GetAnniversaryStats(ctx)
	if err != nil {
		return nil, err
	}

	return &HealthReport{
		SchemaVersion: version,
		Anniversaries: stats.Total,
		LeapMonth:     stats.LeapMonth,
	}, nil
}

// =============================================================================
// Transactions
// =============================================================================

// Tx is a transaction over the anniversary store.
type Tx struct {
	*sql.Tx
}

// BeginTx starts a new transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx}, nil
}

// WithTx runs fn in a transaction. It commits when fn returns nil and rolls
// back otherwise.
func (db *DB) WithTx(ctx context.Context, fn func(*Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrNotFound is returned when no anniversary matches.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an anniversary uid is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// IsNotFound checks if an error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// IsDuplicate checks if an error is a "duplicate" error.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// mapConstraint turns SQLite unique violations into ErrDuplicate.
func mapConstraint(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
