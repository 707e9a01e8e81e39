package tasks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/corenotes/internal/models"
)

// Repository persists tasks. Missing ids are reported as common.ErrNotFound.
//
// List returns newest first. A non-empty search keeps tasks whose title or
// description contains it, ignoring case.
type Repository interface {
	List(ctx context.Context, search string) ([]*Task, error)
	Get(ctx context.Context, id int64) (*Task, error)
	Create(ctx context.Context, task *Task) (*Task, error)
	Update(ctx context.Context, id int64, patch models.TaskPatch, now time.Time) (*Task, error)
	Delete(ctx context.Context, id int64) error
}
