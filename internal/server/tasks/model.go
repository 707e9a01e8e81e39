// Package tasks is the task store's domain: the stored Task, the Repository
// contract with in-memory and SQL implementations, and the Service that
// validates requests before they reach a repository.
package tasks

import (
	"time"

	"github.com/dmitrijs2005/corenotes/internal/models"
)

// Task is a stored row.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Color       models.Color
	IsFavorite  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) clone() *Task {
	out := *t
	if t.Description != nil {
		d := *t.Description
		out.Description = &d
	}
	return &out
}

// apply merges a validated patch into t and stamps UpdatedAt.
func (t *Task) apply(p models.TaskPatch, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		if *p.Description == "" {
			t.Description = nil
		} else {
			d := *p.Description
			t.Description = &d
		}
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.IsFavorite != nil {
		t.IsFavorite = *p.IsFavorite
	}
	t.UpdatedAt = now
}

// matches reports whether the lowercased term occurs in the title or the
// description.
func (t *Task) matches(term string) bool {
	if term == "" {
		return true
	}
	if containsFold(t.Title, term) {
		return true
	}
	return t.Description != nil && containsFold(*t.Description, term)
}
