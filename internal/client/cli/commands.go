package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/corenotes/internal/client/client"
	"github.com/dmitrijs2005/corenotes/internal/models"
)

func (a *App) List(ctx context.Context) error {
	a.render()
	return nil
}

func (a *App) Reload(ctx context.Context) error {
	a.tasks.Reload(ctx)
	a.render()
	return nil
}

// Add runs the composer: title, body, color and favorite flag.
func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Note", a.out)
	if err != nil {
		return err
	}
	color, err := a.askColor(models.DefaultColor)
	if err != nil {
		return err
	}
	favorite, err := GetYesNo(a.reader, "Favorite?", a.out)
	if err != nil {
		return err
	}

	a.tasks.Create(ctx, composeInput(title, description, color, favorite))
	a.render()
	return nil
}

// Edit opens the edit buffer for a note. Empty answers keep the current
// values and "-" clears the description.
func (a *App) Edit(ctx context.Context, id int64) error {
	note, ok := a.tasks.Note(id)
	if !ok {
		printlnFn(fmt.Sprintf("Note #%d not found", id))
		return client.ErrNotFound
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", note.Title), a.out)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, fmt.Sprintf("Note [%s] ('%s' clears)", note.DescriptionText(), clearMarker), a.out)
	if err != nil {
		return err
	}
	color, err := a.askColor(note.Color)
	if err != nil {
		return err
	}

	patch := editPatch(note,
		editBuffer(note.Title, title),
		editBuffer(note.DescriptionText(), description),
		color,
	)
	a.tasks.Save(ctx, id, patch)
	a.render()
	return nil
}

func (a *App) Favorite(ctx context.Context, id int64) error {
	note, ok := a.tasks.Note(id)
	if !ok {
		printlnFn(fmt.Sprintf("Note #%d not found", id))
		return client.ErrNotFound
	}
	a.tasks.ToggleFavorite(ctx, note)
	a.render()
	return nil
}

func (a *App) Delete(ctx context.Context, id int64) error {
	if _, ok := a.tasks.Note(id); !ok {
		printlnFn(fmt.Sprintf("Note #%d not found", id))
		return client.ErrNotFound
	}
	a.tasks.Delete(ctx, id)
	a.render()
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	a.tasks.SetSearch(query)
	a.render()
	return nil
}

// askColor prompts for a palette color. An empty answer keeps current.
func (a *App) askColor(current models.Color) (models.Color, error) {
	for {
		answer, err := GetSimpleText(a.reader, fmt.Sprintf("Color %v [%s]", models.Colors, current), a.out)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return current, nil
		}
		c, err := models.ParseColor(answer)
		if err == nil {
			return c, nil
		}
		printlnFn(err.Error())
	}
}
