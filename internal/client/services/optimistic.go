package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/corenotes/internal/models"
)

// mutation describes one optimistic change to a single note.
//
// apply runs under the lock before the remote call. call runs without the
// lock. On success commit folds the authoritative result in; on failure
// revert undoes apply, given the list as it was before apply.
type mutation struct {
	action string
	id     int64
	apply  func(notes []models.Task) []models.Task
	call   func(ctx context.Context) (*models.Task, error)
	commit func(notes []models.Task, result models.Task) []models.Task
	revert func(notes, snapshot []models.Task) []models.Task
}

// stamp issues the next sequence number for a note. Callers hold the lock.
func (l *TaskList) stamp(id int64) uint64 {
	l.seq[id]++
	return l.seq[id]
}

// latest reports whether seq is still the newest intent for the note.
// Callers hold the lock.
func (l *TaskList) latest(id int64, seq uint64) bool {
	return l.seq[id] == seq
}

// run executes m as snapshot, apply, remote call, then commit or revert.
//
// Only the newest intent for a note may reconcile it. A response for an
// older intent is dropped on success; on failure its error is still
// reported but nothing is rolled back, since a newer intent owns the note.
func (l *TaskList) run(ctx context.Context, m mutation) {
	l.mu.Lock()
	snapshot := cloneTasks(l.notes)
	l.lastError = ""
	seq := l.stamp(m.id)
	l.notes = m.apply(l.notes)
	l.mu.Unlock()
	l.notify()

	result, err := m.call(ctx)

	l.mu.Lock()
	current := l.latest(m.id, seq)
	switch {
	case err != nil:
		l.lastError = failure(m.action, err)
		if current {
			l.notes = m.revert(l.notes, snapshot)
		}
	case current && result != nil && m.commit != nil:
		l.notes = m.commit(l.notes, *result)
	}
	l.mu.Unlock()

	if err != nil {
		l.logger.Warn(ctx, "optimistic change failed",
			"action", m.action,
			"id", m.id,
			"rolled_back", current,
			"error", err,
		)
	} else if !current {
		l.logger.Debug(ctx, "stale response dropped", "action", m.action, "id", m.id)
	}
	l.notify()
}

func failure(action string, err error) string {
	return fmt.Sprintf("%s failed: %v", action, err)
}

func cloneTasks(notes []models.Task) []models.Task {
	out := make([]models.Task, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

func indexOf(notes []models.Task, id int64) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// replaceSorted swaps in the authoritative record and re-sorts. A note that
// is no longer held is not re-added.
func replaceSorted(notes []models.Task, t models.Task) []models.Task {
	if i := indexOf(notes, t.ID); i >= 0 {
		notes[i] = t.Clone()
	}
	SortFavoritesFirst(notes)
	return notes
}

func restoreSnapshot(_, snapshot []models.Task) []models.Task {
	return snapshot
}
