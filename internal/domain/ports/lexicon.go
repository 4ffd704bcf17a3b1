package ports

import (
	"context"

	"github.com/ersonp/phyla/internal/domain/entities"
)

// LexiconStore persists generated forms and the audit log.
type LexiconStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// SaveEntry inserts an entry or updates the form of the entry with the
	// same language, kind and gloss. The stored ID is written back to entry.
	SaveEntry(ctx context.Context, entry *entities.LexiconEntry) error

	// SaveEntries saves several entries in one transaction.
	SaveEntries(ctx context.Context, entries []entities.LexiconEntry) error

	// FindEntry looks an entry up by its natural key. Returns nil if absent.
	FindEntry(ctx context.Context, language string, kind entities.EntryKind, gloss string) (*entities.LexiconEntry, error)

	// FindEntryByID returns nil if no entry has the ID.
	FindEntryByID(ctx context.Context, id string) (*entities.LexiconEntry, error)

	// FindEntriesByIDs returns the entries that exist among ids.
	FindEntriesByIDs(ctx context.Context, ids []string) ([]entities.LexiconEntry, error)

	// ListEntries lists a language's entries ordered by kind then gloss. An
	// empty kind lists every kind; limit <= 0 means no limit.
	ListEntries(ctx context.Context, language string, kind entities.EntryKind, limit, offset int) ([]entities.LexiconEntry, error)

	// CountEntries counts a language's entries. An empty kind counts all.
	CountEntries(ctx context.Context, language string, kind entities.EntryKind) (int, error)

	// DeleteEntry deletes an entry by ID.
	DeleteEntry(ctx context.Context, id string) error

	// DeleteLanguage deletes every entry of a language and returns how many.
	DeleteLanguage(ctx context.Context, language string) (int, error)

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, entryID string, details map[string]any) error

	// FindAuditLog finds audit log entries for a specific entry.
	FindAuditLog(ctx context.Context, entryID string) ([]entities.AuditEntry, error)

	// FindAuditLogByAction finds audit log entries by action type.
	FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}
