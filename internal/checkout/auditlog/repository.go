package auditlog

import "context"

// Repository is the port for persisting audit entries. The orchestrator
// depends on this abstraction, not on SQLite directly, so tests can use an
// in-memory implementation.
type Repository interface {
	// Save appends a new entry; the log is append-only, never an upsert.
	Save(ctx context.Context, entry *Entry) error
}
