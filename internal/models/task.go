// Package models holds the data shapes shared by the client and the task
// store: a persisted Task, the TaskInput used to create one, and the
// TaskPatch used for partial updates.
package models

import (
	"fmt"
	"strings"
)

// Color is the fixed palette a note can be tinted with.
type Color string

const (
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorPeach  Color = "peach"

	DefaultColor = ColorYellow
)

// Colors lists the palette in display order.
var Colors = []Color{ColorYellow, ColorBlue, ColorGreen, ColorPeach}

// Valid reports whether c is one of the palette colors.
func (c Color) Valid() bool {
	switch c {
	case ColorYellow, ColorBlue, ColorGreen, ColorPeach:
		return true
	}
	return false
}

// OrDefault maps the unspecified (empty) color to DefaultColor.
func (c Color) OrDefault() Color {
	if c == "" {
		return DefaultColor
	}
	return c
}

// ParseColor validates a user or wire supplied color name.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown color %q", s)
	}
	return c, nil
}

// Task is a persisted note. ID, CreatedAt and UpdatedAt are assigned by the
// task store and are never fabricated by the client.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Color       Color
	IsFavorite  bool
	CreatedAt   string
	UpdatedAt   string
}

// DescriptionText returns the description, treating an absent one as "".
func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	out := t
	if t.Description != nil {
		d := *t.Description
		out.Description = &d
	}
	return out
}

// TaskInput is the payload for creating a task.
type TaskInput struct {
	Title       string
	Description *string
	Color       Color
	IsFavorite  *bool
}

// TaskPatch is a partial update. Nil fields are left untouched. A non-nil
// Description pointing at "" clears the description.
type TaskPatch struct {
	Title       *string
	Description *string
	Color       *Color
	IsFavorite  *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Color == nil && p.IsFavorite == nil
}

// Apply merges the patch into a copy of t.
func (p TaskPatch) Apply(t Task) Task {
	out := t.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		if *p.Description == "" {
			out.Description = nil
		} else {
			d := *p.Description
			out.Description = &d
		}
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	if p.IsFavorite != nil {
		out.IsFavorite = *p.IsFavorite
	}
	return out
}

// Ptr returns a pointer to v. It keeps patch and input literals short.
func Ptr[T any](v T) *T {
	return &v
}
