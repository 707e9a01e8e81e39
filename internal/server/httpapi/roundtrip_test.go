package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/corenotes/internal/client/client"
	"github.com/dmitrijs2005/corenotes/internal/client/services"
	"github.com/dmitrijs2005/corenotes/internal/logging"
	"github.com/dmitrijs2005/corenotes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The notes client and the task store agree on the wire format.
func TestClientAgainstStore(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, nil))
	defer srv.Close()

	c, err := client.NewHTTPClient(srv.URL, 5*time.Second, logging.Discard())
	require.NoError(t, err)

	ctx := context.Background()
	list := services.NewTaskList(c, logging.Discard())

	list.Create(ctx, models.TaskInput{Title: "Buy milk", Description: models.Ptr("2 liters"), Color: models.ColorBlue})
	list.Create(ctx, models.TaskInput{Title: "Call mom"})
	require.Empty(t, list.View().LastError)

	list.Reload(ctx)
	v := list.View()
	require.Empty(t, v.LastError)
	require.Equal(t, 2, v.Total())

	milk, ok := findByTitle(list.Notes(), "Buy milk")
	require.True(t, ok)
	assert.Equal(t, models.ColorBlue, milk.Color)
	assert.Equal(t, "2 liters", milk.DescriptionText())

	list.ToggleFavorite(ctx, milk)
	list.Save(ctx, milk.ID, models.TaskPatch{Description: models.Ptr("")})
	require.Empty(t, list.View().LastError)

	stored, err := c.Get(ctx, milk.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsFavorite)
	assert.Nil(t, stored.Description)

	list.Reload(ctx)
	v = list.View()
	require.Len(t, v.Favorites, 1)
	assert.Equal(t, milk.ID, v.Favorites[0].ID)

	list.Delete(ctx, milk.ID)
	require.Empty(t, list.View().LastError)
	_, err = c.Get(ctx, milk.ID)
	require.ErrorIs(t, err, client.ErrNotFound)

	// Deleting again is not an error for the client.
	require.NoError(t, c.Delete(ctx, milk.ID))
}

func findByTitle(notes []models.Task, title string) (models.Task, bool) {
	for _, n := range notes {
		if n.Title == title {
			return n, true
		}
	}
	return models.Task{}, false
}
