// Package sqlite provides a SQLite implementation of the LexiconStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/phyla/internal/domain/entities"
	"github.com/ersonp/phyla/internal/infrastructure/config"
)

const memoryPath = ":memory:"

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.LexiconStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Every pooled connection to :memory: would open its own empty database
	if cfg.Path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	pragmas := []struct {
		stmt string
		what string
	}{
		{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
		{"PRAGMA journal_mode = WAL", "enabling WAL mode"},
		{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Generated forms, one per (language, kind, gloss)
	CREATE TABLE IF NOT EXISTS lexicon_entries (
		id TEXT PRIMARY KEY,
		language TEXT NOT NULL,
		kind TEXT NOT NULL,
		gloss TEXT NOT NULL,
		form TEXT NOT NULL,
		context TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(language, kind, gloss)
	);
	CREATE INDEX IF NOT EXISTS idx_lexicon_language ON lexicon_entries(language, kind);
	CREATE INDEX IF NOT EXISTS idx_lexicon_form ON lexicon_entries(language, form);

	-- Audit log (tracks all actions)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		entry_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_entry ON audit_log(entry_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

const entryColumns = `id, language, kind, gloss, form, context, created_at, updated_at`

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SaveEntry inserts an entry or updates the existing entry with the same
// language, kind and gloss. The stored ID and timestamps are written back.
func (r *Repository) SaveEntry(ctx context.Context, entry *entities.LexiconEntry) error {
	return saveEntry(ctx, r.db, entry)
}

func saveEntry(ctx context.Context, q querier, entry *entities.LexiconEntry) error {
	if entry.Language == "" || entry.Gloss == "" {
		return errors.New("entry language and gloss are required")
	}
	if !entry.Kind.IsValid() {
		return fmt.Errorf("invalid entry kind %q", entry.Kind)
	}

	if entry.ID == "" {
		entry.ID = generateUUID()
	}
	now := timeNow()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	var note sql.NullString
	if entry.Context != "" {
		note = sql.NullString{String: entry.Context, Valid: true}
	}

	query := `
		INSERT INTO lexicon_entries (id, language, kind, gloss, form, context, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(language, kind, gloss) DO UPDATE SET
			form = excluded.form,
			context = excluded.context,
			updated_at = excluded.updated_at
	`
	_, err := q.ExecContext(ctx, query,
		entry.ID,
		entry.Language,
		string(entry.Kind),
		entry.Gloss,
		entry.Form,
		note,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}

	// An update keeps the stored row's identity
	err = q.QueryRowContext(ctx,
		`SELECT id, created_at FROM lexicon_entries WHERE language = ? AND kind = ? AND gloss = ?`,
		entry.Language, string(entry.Kind), entry.Gloss,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("reading saved entry: %w", err)
	}
	return nil
}

// SaveEntries saves several entries in one transaction.
func (r *Repository) SaveEntries(ctx context.Context, entries []entities.LexiconEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for i := range entries {
		if err := saveEntry(ctx, tx, &entries[i]); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entries: %w", err)
	}
	return nil
}

// FindEntry finds an entry by language, kind and gloss.
func (r *Repository) FindEntry(ctx context.Context, language string, kind entities.EntryKind, gloss string) (*entities.LexiconEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM lexicon_entries
		WHERE language = ? AND kind = ? AND gloss = ?
	`
	return scanOne(r.db.QueryRowContext(ctx, query, language, string(kind), gloss))
}

// FindEntryByID finds an entry by its ID.
func (r *Repository) FindEntryByID(ctx context.Context, id string) (*entities.LexiconEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM lexicon_entries WHERE id = ?`
	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindEntriesByIDs finds multiple entries by their IDs in a single query.
func (r *Repository) FindEntriesByIDs(ctx context.Context, ids []string) ([]entities.LexiconEntry, error) {
	if len(ids) == 0 {
		return []entities.LexiconEntry{}, nil
	}

	// Build placeholders for IN clause
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM lexicon_entries WHERE id IN (%s)`,
		entryColumns, strings.Join(placeholders, ","))

	return r.queryEntries(ctx, query, args...)
}

// ListEntries lists a language's entries ordered by kind then gloss.
func (r *Repository) ListEntries(ctx context.Context, language string, kind entities.EntryKind, limit, offset int) ([]entities.LexiconEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	query := `SELECT ` + entryColumns + `
		FROM lexicon_entries
		WHERE language = ? AND (? = '' OR kind = ?)
		ORDER BY kind ASC, gloss ASC
		LIMIT ? OFFSET ?
	`
	return r.queryEntries(ctx, query, language, string(kind), string(kind), limit, offset)
}

// CountEntries counts a language's entries, optionally of one kind.
func (r *Repository) CountEntries(ctx context.Context, language string, kind entities.EntryKind) (int, error) {
	query := `SELECT COUNT(*) FROM lexicon_entries WHERE language = ? AND (? = '' OR kind = ?)`

	var count int
	if err := r.db.QueryRowContext(ctx, query, language, string(kind), string(kind)).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}

// DeleteEntry deletes an entry by ID.
func (r *Repository) DeleteEntry(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lexicon_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("entry not found: %s", id)
	}
	return nil
}

// DeleteLanguage deletes every entry of a language.
func (r *Repository) DeleteLanguage(ctx context.Context, language string) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lexicon_entries WHERE language = ?`, language)
	if err != nil {
		return 0, fmt.Errorf("deleting language entries: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return int(rows), nil
}

func (r *Repository) queryEntries(ctx context.Context, query string, args ...any) ([]entities.LexiconEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	result := []entities.LexiconEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *entry)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row *sql.Row) (*entities.LexiconEntry, error) {
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return entry, err
}

func scanEntry(s scanner) (*entities.LexiconEntry, error) {
	var entry entities.LexiconEntry
	var kind string
	var note sql.NullString

	err := s.Scan(
		&entry.ID,
		&entry.Language,
		&kind,
		&entry.Gloss,
		&entry.Form,
		&note,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	entry.Kind = entities.EntryKind(kind)
	entry.Context = note.String
	return &entry, nil
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, entryID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var entryIDPtr sql.NullString
	if entryID != "" {
		entryIDPtr = sql.NullString{String: entryID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, entry_id, details, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, entryIDPtr, detailsJSON, timeNow())
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a specific lexicon entry.
func (r *Repository) FindAuditLog(ctx context.Context, entryID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, entry_id, details, created_at
		FROM audit_log
		WHERE entry_id = ?
		ORDER BY id DESC
	`
	return r.queryAuditLog(ctx, query, entryID)
}

// FindAuditLogByAction finds audit log entries by action type. A limit <= 0
// returns them all.
func (r *Repository) FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, action, entry_id, details, created_at
		FROM audit_log
		WHERE action = ?
		ORDER BY id DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, action, limit)
}

func (r *Repository) queryAuditLog(ctx context.Context, query string, args ...any) ([]entities.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var entryID, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entryID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.EntryID = entryID.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
