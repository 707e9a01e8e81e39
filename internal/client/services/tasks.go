package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/corenotes/internal/client/client"
	"github.com/dmitrijs2005/corenotes/internal/logging"
	"github.com/dmitrijs2005/corenotes/internal/models"
)

const untitled = "Untitled"

type Option func(*TaskList)

// WithOnChange registers fn to be called with a fresh View after every
// state change. fn runs outside the controller lock.
func WithOnChange(fn func(View)) Option {
	return func(l *TaskList) {
		l.onChange = fn
	}
}

// TaskList owns the authoritative list of notes and mediates every change
// to it. Intents may be called from several goroutines; none of them holds
// the lock across a network call. Remote failures end up in the view's
// LastError and are never returned.
type TaskList struct {
	client   client.Client
	logger   logging.Logger
	onChange func(View)

	mu        sync.Mutex
	notes     []models.Task
	loading   bool
	lastError string
	search    string
	seq       map[int64]uint64
	loadSeq   uint64
}

func NewTaskList(c client.Client, logger logging.Logger, opts ...Option) *TaskList {
	l := &TaskList{
		client: c,
		logger: logger,
		notes:  []models.Task{},
		seq:    map[int64]uint64{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Reload replaces the list with the store's full list.
func (l *TaskList) Reload(ctx context.Context) {
	l.ReloadWithFilter(ctx, client.ListFilter{})
}

// ReloadWithFilter replaces the list with what the store returns for
// filter. On failure the previous list is kept. When reloads overlap only
// the last one started is applied.
func (l *TaskList) ReloadWithFilter(ctx context.Context, filter client.ListFilter) {
	l.mu.Lock()
	l.loadSeq++
	seq := l.loadSeq
	l.loading = true
	l.lastError = ""
	l.mu.Unlock()
	l.notify()

	notes, err := l.client.List(ctx, filter)

	l.mu.Lock()
	if seq == l.loadSeq {
		l.loading = false
		if err != nil {
			l.lastError = failure("load tasks", err)
		} else {
			if notes == nil {
				notes = []models.Task{}
			}
			SortFavoritesFirst(notes)
			l.notes = notes
		}
	}
	l.mu.Unlock()

	if err != nil {
		l.logger.Warn(ctx, "reload failed", "error", err)
	} else {
		l.logger.Debug(ctx, "reloaded", "count", len(notes))
	}
	l.notify()
}

// Create adds a note through the store. A title and description that are
// both blank make this a no-op. A blank title becomes "Untitled" and a
// blank color the default one.
func (l *TaskList) Create(ctx context.Context, in models.TaskInput) {
	title := strings.TrimSpace(in.Title)
	desc := ""
	if in.Description != nil {
		desc = strings.TrimSpace(*in.Description)
	}
	if title == "" && desc == "" {
		return
	}

	input := models.TaskInput{
		Title:      title,
		Color:      in.Color.OrDefault(),
		IsFavorite: in.IsFavorite,
	}
	if input.Title == "" {
		input.Title = untitled
	}
	if desc != "" {
		input.Description = &desc
	}

	l.mu.Lock()
	l.lastError = ""
	l.mu.Unlock()
	l.notify()

	created, err := l.client.Create(ctx, input)

	l.mu.Lock()
	if err != nil {
		l.lastError = failure("create task", err)
	} else if i := indexOf(l.notes, created.ID); i >= 0 {
		// A reload that finished meanwhile already brought the new note in.
		l.notes[i] = created
		SortFavoritesFirst(l.notes)
	} else {
		l.notes = slices.Insert(l.notes, 0, created)
		SortFavoritesFirst(l.notes)
	}
	l.mu.Unlock()

	if err != nil {
		l.logger.Warn(ctx, "create failed", "error", err)
	} else {
		l.logger.Info(ctx, "note created", "id", created.ID)
	}
	l.notify()
}

// ToggleFavorite flips the note's favorite flag right away and asks the
// store to do the same. On failure only that flag is put back.
func (l *TaskList) ToggleFavorite(ctx context.Context, note models.Task) {
	next := !note.IsFavorite
	var prev bool

	l.run(ctx, mutation{
		action: "toggle favorite",
		id:     note.ID,
		apply: func(notes []models.Task) []models.Task {
			if i := indexOf(notes, note.ID); i >= 0 {
				prev = notes[i].IsFavorite
				notes[i].IsFavorite = next
			} else {
				prev = note.IsFavorite
			}
			SortFavoritesFirst(notes)
			return notes
		},
		call: func(ctx context.Context) (*models.Task, error) {
			t, err := l.client.Update(ctx, note.ID, models.TaskPatch{IsFavorite: &next})
			return &t, err
		},
		commit: replaceSorted,
		revert: func(notes, _ []models.Task) []models.Task {
			if i := indexOf(notes, note.ID); i >= 0 {
				notes[i].IsFavorite = prev
			}
			SortFavoritesFirst(notes)
			return notes
		},
	})
}

// Save merges patch into the note right away and sends it to the store.
// On failure the whole list goes back to how it was before the call.
func (l *TaskList) Save(ctx context.Context, id int64, patch models.TaskPatch) {
	if patch.IsEmpty() {
		return
	}

	l.run(ctx, mutation{
		action: "save task",
		id:     id,
		apply: func(notes []models.Task) []models.Task {
			if i := indexOf(notes, id); i >= 0 {
				notes[i] = patch.Apply(notes[i])
			}
			return notes
		},
		call: func(ctx context.Context) (*models.Task, error) {
			t, err := l.client.Update(ctx, id, patch)
			return &t, err
		},
		commit: replaceSorted,
		revert: restoreSnapshot,
	})
}

// Delete drops the note right away and asks the store to remove it. On
// failure the whole list goes back to how it was before the call.
func (l *TaskList) Delete(ctx context.Context, id int64) {
	l.run(ctx, mutation{
		action: "delete task",
		id:     id,
		apply: func(notes []models.Task) []models.Task {
			return slices.DeleteFunc(notes, func(t models.Task) bool { return t.ID == id })
		},
		call: func(ctx context.Context) (*models.Task, error) {
			return nil, l.client.Delete(ctx, id)
		},
		revert: restoreSnapshot,
	})
}

// SetSearch changes the query the view is filtered by. No request is made.
func (l *TaskList) SetSearch(query string) {
	l.mu.Lock()
	l.search = query
	l.mu.Unlock()
	l.notify()
}

// View derives the current view from the state.
func (l *TaskList) View() View {
	l.mu.Lock()
	defer l.mu.Unlock()
	return buildView(l.notes, l.search, l.loading, l.lastError)
}

// Notes returns a copy of the authoritative list, favorites first.
func (l *TaskList) Notes() []models.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneTasks(l.notes)
}

// Note looks a note up by id.
func (l *TaskList) Note(id int64) (models.Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := indexOf(l.notes, id); i >= 0 {
		return l.notes[i].Clone(), true
	}
	return models.Task{}, false
}

func (l *TaskList) notify() {
	if l.onChange == nil {
		return
	}
	l.onChange(l.View())
}
