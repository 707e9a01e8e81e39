package client

import (
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/corenotes/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTask_NamingConventions(t *testing.T) {
	desc := "milk"
	want := models.Task{
		ID:          7,
		Title:       "Buy",
		Description: &desc,
		Color:       models.ColorBlue,
		IsFavorite:  true,
		CreatedAt:   "2024-01-01T00:00:00Z",
		UpdatedAt:   "2024-01-02T00:00:00Z",
	}

	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "camel",
			raw:  `{"id":7,"title":"Buy","description":"milk","color":"blue","isFavorite":true,"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-02T00:00:00Z"}`,
		},
		{
			name: "snake",
			raw:  `{"id":7,"title":"Buy","description":"milk","color":"blue","is_favorite":true,"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-02T00:00:00Z"}`,
		},
		{
			name: "string id and numeric flag",
			raw:  `{"id":"7","title":"Buy","description":"milk","color":"blue","is_favorite":1,"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-02T00:00:00Z"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTask(json.RawMessage(tt.raw))
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("task mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeTask_CamelWins(t *testing.T) {
	got, err := NormalizeTask(json.RawMessage(`{"id":1,"title":"x","isFavorite":false,"is_favorite":true,"createdAt":"a","created_at":"b"}`))
	require.NoError(t, err)
	assert.False(t, got.IsFavorite)
	assert.Equal(t, "a", got.CreatedAt)
}

func TestNormalizeTask_Defaults(t *testing.T) {
	got, err := NormalizeTask(json.RawMessage(`{"id":3,"title":"t","description":null}`))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultColor, got.Color)
	assert.Nil(t, got.Description)
	assert.False(t, got.IsFavorite)
	assert.Empty(t, got.CreatedAt)
}

func TestNormalizeTask_Truthiness(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`0`, false},
		{`1`, true},
		{`"true"`, true},
		{`"false"`, false},
		{`"1"`, true},
		{`""`, false},
		{`"yes"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizeTask(json.RawMessage(`{"id":1,"is_favorite":` + tt.raw + `}`))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.IsFavorite)
		})
	}
}

func TestNormalizeTask_NumericTimestamp(t *testing.T) {
	got, err := NormalizeTask(json.RawMessage(`{"id":1,"created_at":1700000000}`))
	require.NoError(t, err)
	assert.Equal(t, "1700000000", got.CreatedAt)
}

func TestNormalizeTask_BadRecords(t *testing.T) {
	for _, raw := range []string{`{"title":"no id"}`, `{"id":"abc"}`, `[1,2]`, `{"id":1.5}`} {
		_, err := NormalizeTask(json.RawMessage(raw))
		require.ErrorIs(t, err, ErrInvalidRecord, raw)
	}
}

func TestNormalizeList(t *testing.T) {
	got, err := NormalizeList(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = NormalizeList(json.RawMessage(`[{"id":1,"title":"a"},{"id":"2","title":"b"}]`))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[1].ID)

	_, err = NormalizeList(json.RawMessage(`{"id":1}`))
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestToServerPayload(t *testing.T) {
	blue := models.ColorBlue
	p := models.TaskPatch{
		Title:       models.Ptr("t"),
		Description: models.Ptr(""),
		Color:       &blue,
		IsFavorite:  models.Ptr(true),
	}
	want := map[string]any{
		"title":       "t",
		"description": nil,
		"color":       "blue",
		"is_favorite": true,
	}
	assert.Equal(t, want, ToServerPayload(p))

	assert.Equal(t, map[string]any{"is_favorite": false}, ToServerPayload(models.TaskPatch{IsFavorite: models.Ptr(false)}))
	assert.Empty(t, ToServerPayload(models.TaskPatch{}))
}

func TestCreatePayload(t *testing.T) {
	assert.Equal(t, map[string]any{"title": "x"}, CreatePayload(models.TaskInput{Title: "x"}))
	assert.Equal(t,
		map[string]any{"title": "x", "description": "d", "color": "green", "is_favorite": false},
		CreatePayload(models.TaskInput{Title: "x", Description: models.Ptr("d"), Color: models.ColorGreen, IsFavorite: models.Ptr(false)}),
	)
}

// Records written by ToServerPayload/CreatePayload must read back through
// NormalizeTask unchanged.
func TestPayloadRoundTrip(t *testing.T) {
	in := models.TaskInput{Title: "x", Description: models.Ptr("d"), Color: models.ColorPeach, IsFavorite: models.Ptr(true)}
	body := CreatePayload(in)
	body["id"] = 9

	b, err := json.Marshal(body)
	require.NoError(t, err)

	got, err := NormalizeTask(b)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, "x", got.Title)
	assert.Equal(t, "d", got.DescriptionText())
	assert.Equal(t, models.ColorPeach, got.Color)
	assert.True(t, got.IsFavorite)
}
