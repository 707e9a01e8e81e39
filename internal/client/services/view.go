package services

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/corenotes/internal/models"
)

// View is what the presentation layer renders. It is derived from the
// controller state on every call and never stored.
type View struct {
	Favorites   []models.Task
	Others      []models.Task
	Loading     bool
	LastError   string
	SearchQuery string
	// Empty is true when nothing is loading and no note matches the query.
	Empty bool
}

// Total is the number of notes in the view.
func (v View) Total() int {
	return len(v.Favorites) + len(v.Others)
}

// SortFavoritesFirst orders favorites before the rest, keeping the relative
// order of notes within each group.
func SortFavoritesFirst(notes []models.Task) {
	slices.SortStableFunc(notes, func(a, b models.Task) int {
		switch {
		case a.IsFavorite == b.IsFavorite:
			return 0
		case a.IsFavorite:
			return -1
		default:
			return 1
		}
	})
}

// Filter returns the notes whose title or description contains query,
// ignoring case and surrounding blanks. A blank query matches everything.
func Filter(notes []models.Task, query string) []models.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Task, 0, len(notes))
	for _, n := range notes {
		if q == "" ||
			strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.DescriptionText()), q) {
			out = append(out, n.Clone())
		}
	}
	return out
}

// Partition splits notes by the favorite flag, preserving order.
func Partition(notes []models.Task) (favorites, others []models.Task) {
	favorites = []models.Task{}
	others = []models.Task{}
	for _, n := range notes {
		if n.IsFavorite {
			favorites = append(favorites, n)
		} else {
			others = append(others, n)
		}
	}
	return favorites, others
}

func buildView(notes []models.Task, query string, loading bool, lastError string) View {
	filtered := Filter(notes, query)
	favorites, others := Partition(filtered)
	return View{
		Favorites:   favorites,
		Others:      others,
		Loading:     loading,
		LastError:   lastError,
		SearchQuery: query,
		Empty:       !loading && len(filtered) == 0,
	}
}
