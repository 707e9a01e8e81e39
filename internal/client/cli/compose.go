package cli

import (
	"strings"

	"github.com/dmitrijs2005/corenotes/internal/models"
)

// clearMarker typed as the new description removes it.
const clearMarker = "-"

// composeInput turns the add-form answers into a TaskInput. The controller
// applies the blank-title and blank-note rules.
func composeInput(title, description string, color models.Color, favorite bool) models.TaskInput {
	in := models.TaskInput{
		Title:      title,
		Color:      color.OrDefault(),
		IsFavorite: &favorite,
	}
	if d := strings.TrimSpace(description); d != "" {
		in.Description = &d
	}
	return in
}

// editPatch builds the patch for an edited card. The color is always sent,
// the title only when it is not blank, and the description when it is not
// blank or when the note had one (an empty value then clears it).
func editPatch(note models.Task, title, description string, color models.Color) models.TaskPatch {
	c := color.OrDefault()
	patch := models.TaskPatch{Color: &c}

	if t := strings.TrimSpace(title); t != "" {
		patch.Title = &t
	}
	if d := strings.TrimSpace(description); d != "" || note.Description != nil {
		patch.Description = &d
	}
	return patch
}

// editBuffer resolves what the user typed against the note's current
// values: an empty answer keeps the current value, clearMarker empties it.
func editBuffer(current, answer string) string {
	switch strings.TrimSpace(answer) {
	case "":
		return current
	case clearMarker:
		return ""
	}
	return answer
}
