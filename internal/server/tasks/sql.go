package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/corenotes/internal/common"
	"github.com/dmitrijs2005/corenotes/internal/dbx"
	"github.com/dmitrijs2005/corenotes/internal/models"
)

// Dialect holds the few SQL differences between the supported databases.
type Dialect struct {
	Name string
	// LockClause is appended to the row read that precedes an update.
	LockClause string
	// positional placeholders ("?") instead of numbered ones ("$1").
	positional bool
}

var (
	Postgres = Dialect{Name: "postgres", LockClause: " FOR UPDATE"}
	SQLite   = Dialect{Name: "sqlite", positional: true}
)

var numbered = regexp.MustCompile(`\$\d+`)

// bind rewrites $N placeholders for dialects that only take "?". Queries
// in this file use every $N once and in ascending order.
func (d Dialect) bind(query string) string {
	if !d.positional {
		return query
	}
	return numbered.ReplaceAllString(query, "?")
}

const taskColumns = `id, title, description, color, is_favorite, created_at, updated_at`

// SQLRepository stores tasks in a relational database through database/sql.
type SQLRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLRepository(db *sql.DB, dialect Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var (
		t         Task
		desc      sql.NullString
		color     string
		createdAt dbTime
		updatedAt dbTime
	)
	if err := row.Scan(&t.ID, &t.Title, &desc, &color, &t.IsFavorite, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	t.Color = models.Color(color)
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}

func (r *SQLRepository) List(ctx context.Context, search string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var args []any
	if search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query += ` WHERE LOWER(title) LIKE $1 ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE $2 ESCAPE '\'`
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, r.dialect.bind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := []*Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*Task, error) {
	return r.get(ctx, r.db, id, "")
}

func (r *SQLRepository) get(ctx context.Context, db dbx.DBTX, id int64, suffix string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1` + suffix
	t, err := scanTask(db.QueryRowContext(ctx, r.dialect.bind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select task: %w", err)
	}
	return t, nil
}

func (r *SQLRepository) Create(ctx context.Context, task *Task) (*Task, error) {
	query := `INSERT INTO tasks (title, description, color, is_favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, r.dialect.bind(query),
		task.Title, nullable(task.Description), string(task.Color), task.IsFavorite, task.CreatedAt, task.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	return t, nil
}

// Update reads the row under lock, merges the patch and writes it back in
// one transaction.
func (r *SQLRepository) Update(ctx context.Context, id int64, patch models.TaskPatch, now time.Time) (*Task, error) {
	var updated *Task
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		t, err := r.get(ctx, tx, id, r.dialect.LockClause)
		if err != nil {
			return err
		}
		t.apply(patch, now)

		query := `UPDATE tasks SET title = $1, description = $2, color = $3, is_favorite = $4, updated_at = $5 WHERE id = $6`
		if _, err := tx.ExecContext(ctx, r.dialect.bind(query),
			t.Title, nullable(t.Description), string(t.Color), t.IsFavorite, t.UpdatedAt, t.ID); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.bind(`DELETE FROM tasks WHERE id = $1`), id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// dbTime scans timestamps from drivers that return time.Time as well as
// from those that hand back text.
type dbTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (t *dbTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format %q", s)
}
