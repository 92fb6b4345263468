package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns the zero time if parsing fails.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

const anniversaryColumns = `
	id, uid, name, lunar_month, lunar_day, origin_year, notes, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnniversary(row rowScanner) (*Anniversary, error) {
	var a Anniversary
	var originYear sql.NullInt64
	var notes sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&a.ID,
		&a.UID,
		&a.Name,
		&a.LunarMonth,
		&a.LunarDay,
		&originYear,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if originYear.Valid {
		y := int(originYear.Int64)
		a.OriginYear = &y
	}
	if notes.Valid {
		a.Notes = &notes.String
	}
	a.CreatedAt = parseTimestamp(createdAt)
	a.UpdatedAt = parseTimestamp(updatedAt)

	return &a, nil
}

// =============================================================================
// Anniversary Queries
// =============================================================================

func createAnniversary(ctx context.Context, q querier, a *Anniversary) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.UID == "" {
		a.UID = uuid.NewString()
	}

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `
		INSERT INTO anniversaries (
			uid, name, lunar_month, lunar_day, origin_year, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := q.ExecContext(ctx, query,
		a.UID,
		a.Name,
		a.LunarMonth,
		a.LunarDay,
		a.OriginYear,
		a.Notes,
		formatTimestamp(a.CreatedAt),
		formatTimestamp(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert anniversary: %w", mapConstraint(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get anniversary id: %w", err)
	}
	a.ID = id

	return nil
}

// upsertAnniversary inserts a by UID or updates the existing row.
// It reports whether a new row was created.
func upsertAnniversary(ctx context.Context, q querier, a *Anniversary) (bool, error) {
	if a.UID == "" {
		return true, createAnniversary(ctx, q, a)
	}
	if err := a.Validate(); err != nil {
		return false, err
	}

	existing, err := getAnniversaryByUID(ctx, q, a.UID)
	switch {
	case IsNotFound(err):
		return true, createAnniversary(ctx, q, a)
	case err != nil:
		return false, err
	}

	a.ID = existing.ID
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE anniversaries
		SET name = ?, lunar_month = ?, lunar_day = ?, origin_year = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := q.ExecContext(ctx, query,
		a.Name,
		a.LunarMonth,
		a.LunarDay,
		a.OriginYear,
		a.Notes,
		formatTimestamp(a.UpdatedAt),
		a.ID,
	); err != nil {
		return false, fmt.Errorf("update anniversary %s: %w", a.UID, err)
	}

	return false, nil
}

func getAnniversary(ctx context.Context, q querier, id int64) (*Anniversary, error) {
	row := q.QueryRowContext(ctx, "SELECT "+anniversaryColumns+" FROM anniversaries WHERE id = ?", id)
	a, err := scanAnniversary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query anniversary %d: %w", id, err)
	}
	return a, nil
}

func getAnniversaryByUID(ctx context.Context, q querier, uid string) (*Anniversary, error) {
	row := q.QueryRowContext(ctx, "SELECT "+anniversaryColumns+" FROM anniversaries WHERE uid = ?", uid)
	a, err := scanAnniversary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query anniversary %s: %w", uid, err)
	}
	return a, nil
}

// =============================================================================
// DB methods
// =============================================================================

// CreateAnniversary inserts a new anniversary and fills in ID, UID and
// timestamps. Returns ErrDuplicate if the UID is already taken.
func (db *DB) CreateAnniversary(ctx context.Context, a *Anniversary) error {
	return createAnniversary(ctx, db.DB, a)
}

// GetAnniversary retrieves an anniversary by ID.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) GetAnniversary(ctx context.Context, id int64) (*Anniversary, error) {
	return getAnniversary(ctx, db.DB, id)
}

// GetAnniversaryByUID retrieves an anniversary by its external identifier.
func (db *DB) GetAnniversaryByUID(ctx context.Context, uid string) (*Anniversary, error) {
	return getAnniversaryByUID(ctx, db.DB, uid)
}

// ListAnniversaries returns anniversaries ordered by lunar month and day.
// Leap-month entries sort right after the regular month of the same number.
func (db *DB) ListAnniversaries(ctx context.Context, filter ListFilter) ([]Anniversary, error) {
	var where []string
	var args []any
	if filter.Month != 0 {
		where = append(where, "ABS(lunar_month) = ?")
		args = append(args, filter.Month)
	}

	query := "SELECT " + anniversaryColumns + " FROM anniversaries"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY ABS(lunar_month), lunar_month < 0, lunar_day, id"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query anniversaries: %w", err)
	}
	defer rows.Close()

	var list []Anniversary
	for rows.Next() {
		a, err := scanAnniversary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan anniversary: %w", err)
		}
		list = append(list, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate anniversaries: %w", err)
	}

	return list, nil
}

// DeleteAnniversary removes an anniversary by ID.
// Returns ErrNotFound if nothing was deleted.
func (db *DB) DeleteAnniversary(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, "DELETE FROM anniversaries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete anniversary %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete anniversary %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// GetAnniversaryStats returns counts used by the health endpoint and the importer.
func (db *DB) GetAnniversaryStats(ctx context.Context) (*AnniversaryStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN lunar_month < 0 THEN 1 ELSE 0 END), 0)
		FROM anniversaries
	`

	var stats AnniversaryStats
	if err := db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.LeapMonth); err != nil {
		return nil, fmt.Errorf("query anniversary stats: %w", err)
	}

	return &stats, nil
}

// =============================================================================
// Tx methods
// =============================================================================

// CreateAnniversary inserts a new anniversary inside the transaction.
func (tx *Tx) CreateAnniversary(ctx context.Context, a *Anniversary) error {
	return createAnniversary(ctx, tx.Tx, a)
}

// UpsertAnniversary inserts a by UID or updates the row that already has it.
// It reports whether a new row was created.
func (tx *Tx) UpsertAnniversary(ctx context.Context, a *Anniversary) (bool, error) {
	return upsertAnniversary(ctx, tx.Tx, a)
}

// GetAnniversaryByUID retrieves an anniversary inside the transaction.
func (tx *Tx) GetAnniversaryByUID(ctx context.Context, uid string) (*Anniversary, error) {
	return getAnniversaryByUID(ctx, tx.Tx, uid)
}
