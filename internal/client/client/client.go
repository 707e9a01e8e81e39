package client

import (
	"context"

	"github.com/dmitrijs2005/corenotes/internal/models"
)

// ListFilter narrows a List call. An empty Search lists everything.
type ListFilter struct {
	Search string
}

// Client is the only way the rest of the client talks to the task store.
type Client interface {
	List(ctx context.Context, filter ListFilter) ([]models.Task, error)
	Get(ctx context.Context, id int64) (models.Task, error)
	Create(ctx context.Context, input models.TaskInput) (models.Task, error)
	Update(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, id int64) error
}
