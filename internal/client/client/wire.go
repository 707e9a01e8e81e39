package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/corenotes/internal/models"
)

// wireTask accepts both naming conventions the store is known to use.
// Camel-case wins when both are present.
type wireTask struct {
	ID              json.Number `json:"id"`
	Title           string      `json:"title"`
	Description     *string     `json:"description"`
	Color           string      `json:"color"`
	IsFavorite      *truthy     `json:"isFavorite"`
	IsFavoriteSnake *truthy     `json:"is_favorite"`
	CreatedAt       *opaque     `json:"createdAt"`
	CreatedAtSnake  *opaque     `json:"created_at"`
	UpdatedAt       *opaque     `json:"updatedAt"`
	UpdatedAtSnake  *opaque     `json:"updated_at"`
}

// truthy decodes booleans the lenient way stores tend to send them:
// true/false, 0/1, or strings such as "true" and "1".
type truthy bool

func (b *truthy) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case bool:
		*b = truthy(value)
	case float64:
		*b = value != 0
	case string:
		if parsed, err := strconv.ParseBool(value); err == nil {
			*b = truthy(parsed)
		} else {
			*b = value != ""
		}
	default:
		*b = false
	}
	return nil
}

// opaque keeps store-assigned values (timestamps) as text, whatever their
// JSON type.
type opaque string

func (o *opaque) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = opaque(s)
		return nil
	}
	*o = opaque(bytes.TrimSpace(data))
	return nil
}

func firstBool(values ...*truthy) bool {
	for _, v := range values {
		if v != nil {
			return bool(*v)
		}
	}
	return false
}

func firstText(values ...*opaque) string {
	for _, v := range values {
		if v != nil {
			return string(*v)
		}
	}
	return ""
}

// NormalizeTask turns one raw store record into a Task.
func NormalizeTask(raw json.RawMessage) (models.Task, error) {
	var w wireTask
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(w.ID.String()), 10, 64)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: bad id %q", ErrInvalidRecord, w.ID.String())
	}

	return models.Task{
		ID:          id,
		Title:       w.Title,
		Description: w.Description,
		Color:       models.Color(w.Color).OrDefault(),
		IsFavorite:  firstBool(w.IsFavorite, w.IsFavoriteSnake),
		CreatedAt:   firstText(w.CreatedAt, w.CreatedAtSnake),
		UpdatedAt:   firstText(w.UpdatedAt, w.UpdatedAtSnake),
	}, nil
}

// NormalizeList decodes a JSON array of records. A null body is an empty list.
func NormalizeList(raw json.RawMessage) ([]models.Task, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	out := make([]models.Task, 0, len(items))
	for _, item := range items {
		t, err := NormalizeTask(item)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// ToServerPayload renders a patch the way the store expects it: only the
// fields being changed, the favorite flag as is_favorite, and a cleared
// description as null.
func ToServerPayload(p models.TaskPatch) map[string]any {
	out := map[string]any{}
	if p.Title != nil {
		out["title"] = *p.Title
	}
	if p.Description != nil {
		if *p.Description == "" {
			out["description"] = nil
		} else {
			out["description"] = *p.Description
		}
	}
	if p.Color != nil {
		out["color"] = string(*p.Color)
	}
	if p.IsFavorite != nil {
		out["is_favorite"] = *p.IsFavorite
	}
	return out
}

// CreatePayload renders a creation request body.
func CreatePayload(in models.TaskInput) map[string]any {
	out := map[string]any{"title": in.Title}
	if in.Description != nil {
		out["description"] = *in.Description
	}
	if in.Color != "" {
		out["color"] = string(in.Color)
	}
	if in.IsFavorite != nil {
		out["is_favorite"] = *in.IsFavorite
	}
	return out
}
