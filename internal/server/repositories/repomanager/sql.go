package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/corenotes/internal/filex"
	"github.com/dmitrijs2005/corenotes/internal/server/migrations"
	"github.com/dmitrijs2005/corenotes/internal/server/tasks"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// backend describes how one database is opened and migrated.
type backend struct {
	driver       string
	gooseDialect string
	migrations   string
	dialect      tasks.Dialect
}

var (
	postgresBackend = backend{driver: "pgx", gooseDialect: "pgx", migrations: "postgres", dialect: tasks.Postgres}
	sqliteBackend   = backend{driver: "sqlite", gooseDialect: "sqlite3", migrations: "sqlite", dialect: tasks.SQLite}
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// SQLRepositoryManager vends database/sql backed repositories.
type SQLRepositoryManager struct {
	db      *sql.DB
	backend backend
	tasks   *tasks.SQLRepository
}

func newSQLRepositoryManager(db *sql.DB, b backend) *SQLRepositoryManager {
	return &SQLRepositoryManager{db: db, backend: b, tasks: tasks.NewSQLRepository(db, b.dialect)}
}

// NewPostgresRepositoryManager opens a PostgreSQL connection pool through pgx.
func NewPostgresRepositoryManager(dsn string) (*SQLRepositoryManager, error) {
	db, err := sql.Open(postgresBackend.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return newSQLRepositoryManager(db, postgresBackend), nil
}

// NewSQLiteRepositoryManager opens a SQLite database. A leading "sqlite:" or
// "sqlite://" is stripped, the rest goes to the driver as is. For a plain
// file path the parent directory is created.
func NewSQLiteRepositoryManager(dsn string) (*SQLRepositoryManager, error) {
	path := strings.TrimPrefix(strings.TrimPrefix(dsn, "sqlite://"), "sqlite:")
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("db dir error: %w", err)
		}
	}
	db, err := sql.Open(sqliteBackend.driver, path)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return newSQLRepositoryManager(db, sqliteBackend), nil
}

// RunMigrations applies the embedded migrations of the backend's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.backend.gooseDialect); err != nil {
		return fmt.Errorf("goose dialect error: %w", err)
	}
	if err := gooseUpContext(ctx, m.db, m.backend.migrations); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (m *SQLRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}
