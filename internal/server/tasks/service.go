package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/corenotes/internal/common"
	"github.com/dmitrijs2005/corenotes/internal/models"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) List(ctx context.Context, search string) ([]*Task, error) {
	items, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting task %d: %w", id, err)
	}
	return t, nil
}

// Create validates the input and stores a new task. The title is required,
// the color defaults to yellow and a blank description is dropped.
func (s *Service) Create(ctx context.Context, in models.TaskInput) (*Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.ErrTitleRequired
	}

	color := in.Color.OrDefault()
	if !color.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidColor, in.Color)
	}

	now := s.now()
	task := &Task{
		Title:     title,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			task.Description = &d
		}
	}
	if in.IsFavorite != nil {
		task.IsFavorite = *in.IsFavorite
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return created, nil
}

// Update applies a partial change. A title, when present, must not be blank
// and a color must be one of the palette.
func (s *Service) Update(ctx context.Context, id int64, patch models.TaskPatch) (*Task, error) {
	if patch.IsEmpty() {
		return nil, common.ErrEmptyPatch
	}
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, common.ErrTitleRequired
		}
		patch.Title = &t
	}
	if patch.Description != nil {
		d := strings.TrimSpace(*patch.Description)
		patch.Description = &d
	}
	if patch.Color != nil && !patch.Color.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidColor, *patch.Color)
	}

	updated, err := s.repo.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("error updating task %d: %w", id, err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting task %d: %w", id, err)
	}
	return nil
}
