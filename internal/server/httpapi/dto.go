package httpapi

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/corenotes/internal/models"
	"github.com/dmitrijs2005/corenotes/internal/server/tasks"
)

// optionalString tells an absent key apart from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// taskRequest is the body of POST /tasks and PATCH /tasks/:id. The favorite
// flag is accepted in both snake_case and camelCase.
type taskRequest struct {
	Title           *string        `json:"title"`
	Description     optionalString `json:"description"`
	Color           *string        `json:"color"`
	IsFavorite      *bool          `json:"is_favorite"`
	IsFavoriteCamel *bool          `json:"isFavorite"`
}

func (r taskRequest) favorite() *bool {
	if r.IsFavoriteCamel != nil {
		return r.IsFavoriteCamel
	}
	return r.IsFavorite
}

func (r taskRequest) color() *models.Color {
	if r.Color == nil {
		return nil
	}
	c := models.Color(*r.Color)
	return &c
}

func (r taskRequest) input() models.TaskInput {
	in := models.TaskInput{Description: r.Description.Value, IsFavorite: r.favorite()}
	if r.Title != nil {
		in.Title = *r.Title
	}
	if c := r.color(); c != nil {
		in.Color = *c
	}
	return in
}

// patch maps an explicit null description to "", which clears it.
func (r taskRequest) patch() models.TaskPatch {
	p := models.TaskPatch{Title: r.Title, Color: r.color(), IsFavorite: r.favorite()}
	if r.Description.Set {
		if r.Description.Value == nil {
			p.Description = models.Ptr("")
		} else {
			p.Description = r.Description.Value
		}
	}
	return p
}

type taskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
	IsFavorite  bool    `json:"is_favorite"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toResponse(t *tasks.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Color:       string(t.Color),
		IsFavorite:  t.IsFavorite,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toResponses(list []*tasks.Task) []taskResponse {
	out := make([]taskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toResponse(t))
	}
	return out
}
