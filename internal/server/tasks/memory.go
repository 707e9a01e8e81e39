package tasks

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/corenotes/internal/common"
	"github.com/dmitrijs2005/corenotes/internal/models"
)

// MemoryRepository keeps tasks in process memory. It is the default store
// when no database is configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	tasks  map[int64]*Task
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tasks: map[int64]*Task{}}
}

func (r *MemoryRepository) List(ctx context.Context, search string) ([]*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(search)
	out := make([]*Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if t.matches(term) {
			out = append(out, t.clone())
		}
	}
	slices.SortFunc(out, func(a, b *Task) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return t.clone(), nil
}

func (r *MemoryRepository) Create(ctx context.Context, task *Task) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := task.clone()
	stored.ID = r.nextID
	r.tasks[stored.ID] = stored
	return stored.clone(), nil
}

func (r *MemoryRepository) Update(ctx context.Context, id int64, patch models.TaskPatch, now time.Time) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	t.apply(patch, now)
	return t.clone(), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
