// Package store persists import history in PostgreSQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the subset of *pgxpool.Pool the store uses. pgx.Tx satisfies it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `CREATE TABLE IF NOT EXISTS import_history (
	id           UUID PRIMARY KEY,
	file_name    TEXT NOT NULL,
	file_type    TEXT NOT NULL,
	course_code  TEXT,
	term_display TEXT,
	students     INTEGER NOT NULL DEFAULT 0,
	groups_count INTEGER NOT NULL DEFAULT 0,
	skipped      INTEGER NOT NULL DEFAULT 0,
	size_bytes   BIGINT NOT NULL DEFAULT 0,
	parsed_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	duration_ms  BIGINT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS import_history_parsed_at_idx ON import_history (parsed_at DESC)`

const selectColumns = `SELECT id, file_name, file_type, course_code, term_display,
	students, groups_count, skipped, size_bytes, parsed_at, duration_ms
	FROM import_history`

// Postgres is a core.HistoryStore backed by a pgx pool.
type Postgres struct {
	db DBTX
}

var _ core.HistoryStore = (*Postgres)(nil)

// NewPostgres wraps a pool (or transaction) as a history store.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the history table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create import_history: %w", err)
	}
	return nil
}

// Record implements core.HistoryStore.
func (p *Postgres) Record(ctx context.Context, e core.HistoryEntry) error {
	id := ToPgUUID(e.ID)
	if !id.Valid {
		return fmt.Errorf("record import: invalid id %q", e.ID)
	}

	_, err := p.db.Exec(ctx, `INSERT INTO import_history
		(id, file_name, file_type, course_code, term_display,
		 students, groups_count, skipped, size_bytes, parsed_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, now()), $11)`,
		id,
		e.FileName,
		string(e.Type),
		ToPgText(e.CourseCode),
		ToPgText(e.TermDisplay),
		e.Students,
		e.Groups,
		e.Skipped,
		e.SizeBytes,
		ToPgTimestamptz(e.ParsedAt),
		e.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record import %s: %w", e.ID, err)
	}
	return nil
}

// Recent implements core.HistoryStore. A limit <= 0 returns every entry.
func (p *Postgres) Recent(ctx context.Context, limit int) ([]core.HistoryEntry, error) {
	query := selectColumns + ` ORDER BY parsed_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer rows.Close()

	entries := make([]core.HistoryEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	return entries, nil
}

// Get implements core.HistoryStore.
func (p *Postgres) Get(ctx context.Context, id string) (core.HistoryEntry, error) {
	pgID := ToPgUUID(id)
	if !pgID.Valid {
		return core.HistoryEntry{}, core.ErrHistoryNotFound
	}

	entry, err := scanEntry(p.db.QueryRow(ctx, selectColumns+` WHERE id = $1`, pgID))
	if errors.Is(err, pgx.ErrNoRows) {
		return core.HistoryEntry{}, core.ErrHistoryNotFound
	}
	return entry, err
}

// scanEntry reads one row in selectColumns order.
func scanEntry(row pgx.Row) (core.HistoryEntry, error) {
	var (
		id          pgtype.UUID
		fileName    string
		fileType    string
		courseCode  pgtype.Text
		termDisplay pgtype.Text
		students    int32
		groups      int32
		skipped     int32
		sizeBytes   int64
		parsedAt    pgtype.Timestamptz
		durationMs  int64
	)

	err := row.Scan(&id, &fileName, &fileType, &courseCode, &termDisplay,
		&students, &groups, &skipped, &sizeBytes, &parsedAt, &durationMs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.HistoryEntry{}, err
		}
		return core.HistoryEntry{}, fmt.Errorf("scan import: %w", err)
	}

	return core.HistoryEntry{
		ID:          PgUUIDToString(id),
		FileName:    fileName,
		Type:        core.FileType(fileType),
		CourseCode:  PgTextToString(courseCode),
		TermDisplay: PgTextToString(termDisplay),
		Students:    int(students),
		Groups:      int(groups),
		Skipped:     int(skipped),
		SizeBytes:   sizeBytes,
		ParsedAt:    parsedAt.Time,
		Duration:    time.Duration(durationMs) * time.Millisecond,
	}, nil
}
