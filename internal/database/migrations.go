package database

import (
	"context"
	"fmt"
	"log/slog"
)

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1Anniversaries,
	2: migrationV2AnniversaryIndexes,
}

// migrationV1Anniversaries creates the anniversary table.
//
// An anniversary is a lunar (month, day) pair that recurs every lunar year:
//   - lunar_month is 1..12, or -1..-12 for a leap month
//   - lunar_day is 1..30; short months clamp it when resolving occurrences
//   - origin_year is the lunar year the event first happened, when known
//
// Timestamps are RFC 3339 TEXT written by the application.
const migrationV1Anniversaries = `
-- Migration 001: anniversaries

CREATE TABLE IF NOT EXISTS anniversaries (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    uid         TEXT    NOT NULL UNIQUE,
    name        TEXT    NOT NULL,
    lunar_month INTEGER NOT NULL CHECK (lunar_month BETWEEN -12 AND 12 AND lunar_month <> 0),
    lunar_day   INTEGER NOT NULL CHECK (lunar_day BETWEEN 1 AND 30),
    origin_year INTEGER,
    notes       TEXT,
    created_at  TEXT    NOT NULL,
    updated_at  TEXT    NOT NULL
);
`

// migrationV2AnniversaryIndexes speeds up month listings.
const migrationV2AnniversaryIndexes = `
-- Migration 002: lookup indexes

CREATE INDEX IF NOT EXISTS idx_anniversaries_month_day
    ON anniversaries (lunar_month, lunar_day);
`

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// Migrate brings the anniversary schema up to the latest version and
// returns how many migrations it applied. All pending versions run in one
// transaction, so a failing migration leaves the schema where it was.
func (db *DB) Migrate(ctx context.Context) (int, error) {
	applied := 0
	err := db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, schemaMigrationsTable); err != nil {
			return fmt.Errorf("create schema_migrations table: %w", err)
		}

		current, err := schemaVersion(ctx, tx)
		if err != nil {
			return err
		}

		for version := current + 1; version <= len(migrationsSQL); version++ {
			content, ok := migrationsSQL[version]
			if !ok {
				return fmt.Errorf("migration %d not found", version)
			}
			if _, err := tx.ExecContext(ctx, content); err != nil {
				return fmt.Errorf("execute migration %d: %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
				return fmt.Errorf("record migration %d: %w", version, err)
			}
			db.logger.Info("applied migration", slog.Int("version", version))
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	db.logger.Info("anniversary schema ready",
		slog.Int("applied", applied),
		slog.Int("version", len(migrationsSQL)),
	)
	return applied, nil
}

// SchemaVersion returns the latest applied migration, 0 for a new store.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	if _, err := db.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return 0, fmt.Errorf("create schema_migrations table: %w", err)
	}
	return schemaVersion(ctx, db.DB)
}

func schemaVersion(ctx context.Context, q querier) (int, error) {
	var version int
	if err := q.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version); err != nil {
		return 0, fmt.Errorf("query schema version: %w", err)
	}
	return version, nil
}
