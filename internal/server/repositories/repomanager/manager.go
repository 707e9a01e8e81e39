// Package repomanager selects the task store backend from a DSN and owns its
// lifecycle: opening the connection, running migrations and closing it.
package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/corenotes/internal/server/tasks"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Tasks() tasks.Repository
	Close() error
}

// NewRepositoryManager picks a backend by DSN: empty means in-memory,
// postgres:// and postgresql:// use PostgreSQL, sqlite: and file: use SQLite.
func NewRepositoryManager(dsn string) (RepositoryManager, error) {
	switch {
	case dsn == "":
		return NewMemoryRepositoryManager(), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgresRepositoryManager(dsn)
	case strings.HasPrefix(dsn, "sqlite:"), strings.HasPrefix(dsn, "file:"):
		return NewSQLiteRepositoryManager(dsn)
	}
	return nil, fmt.Errorf("unsupported database dsn %q", redact(dsn))
}

// redact keeps the scheme of a DSN and drops the rest, which may hold
// credentials.
func redact(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	if len(dsn) > 8 {
		return dsn[:8] + "..."
	}
	return dsn
}
