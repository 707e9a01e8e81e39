package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/corenotes/internal/common"
	"github.com/dmitrijs2005/corenotes/internal/logging"
	"github.com/dmitrijs2005/corenotes/internal/models"
	"github.com/dmitrijs2005/corenotes/internal/server/tasks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, repo tasks.Repository) *gin.Engine {
	t.Helper()
	if repo == nil {
		repo = tasks.NewMemoryRepository()
	}
	return NewRouter(tasks.NewService(repo), logging.Discard(), []string{"*"})
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestCreate_DefaultsAndSnakeCase(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/tasks", `{"title":"  Buy milk ","description":"","isFavorite":true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(common.RequestIDHeaderName))

	raw := decode[map[string]any](t, w)
	assert.Equal(t, "Buy milk", raw["title"])
	assert.Nil(t, raw["description"])
	assert.Equal(t, "yellow", raw["color"])
	assert.Equal(t, true, raw["is_favorite"])
	_, err := time.Parse(time.RFC3339, raw["created_at"].(string))
	require.NoError(t, err)
}

func TestCreate_Rejects(t *testing.T) {
	r := newTestRouter(t, nil)

	cases := map[string]string{
		"missing title": `{"description":"x"}`,
		"blank title":   `{"title":"   "}`,
		"bad color":     `{"title":"x","color":"purple"}`,
		"bad json":      `{"title":`,
		"bad favorite":  `{"title":"x","is_favorite":"maybe"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/tasks", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode[map[string]string](t, w), "error")
		})
	}
}

func TestListAndSearch(t *testing.T) {
	r := newTestRouter(t, nil)
	do(t, r, http.MethodPost, "/tasks", `{"title":"Buy milk"}`)
	do(t, r, http.MethodPost, "/tasks", `{"title":"Call mom","description":"about the BUYING trip"}`)
	do(t, r, http.MethodPost, "/tasks", `{"title":"Read"}`)

	w := do(t, r, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]taskResponse](t, w), 3)

	w = do(t, r, http.MethodGet, "/tasks?search=buy", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]taskResponse](t, w), 2)

	w = do(t, r, http.MethodGet, "/tasks?search=zzz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestUpdate_PartialAndNullDescription(t *testing.T) {
	r := newTestRouter(t, nil)
	created := decode[taskResponse](t, do(t, r, http.MethodPost, "/tasks", `{"title":"a","description":"keep me"}`))

	w := do(t, r, http.MethodPatch, "/tasks/1", `{"color":"green"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[taskResponse](t, w)
	assert.Equal(t, "green", got.Color)
	require.NotNil(t, got.Description)
	assert.Equal(t, "keep me", *got.Description)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)

	w = do(t, r, http.MethodPatch, "/tasks/1", `{"description":null,"is_favorite":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[taskResponse](t, w)
	assert.Nil(t, got.Description)
	assert.True(t, got.IsFavorite)

	w = do(t, r, http.MethodPut, "/tasks/1", `{"title":"renamed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "renamed", decode[taskResponse](t, w).Title)
}

func TestUpdate_Errors(t *testing.T) {
	r := newTestRouter(t, nil)
	do(t, r, http.MethodPost, "/tasks", `{"title":"a"}`)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPatch, "/tasks/1", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPatch, "/tasks/1", `{"title":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPatch, "/tasks/abc", `{"title":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPatch, "/tasks/99", `{"title":"x"}`).Code)
}

func TestGetAndDelete(t *testing.T) {
	r := newTestRouter(t, nil)
	do(t, r, http.MethodPost, "/tasks", `{"title":"a"}`)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/tasks/1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/tasks/0", "").Code)

	w := do(t, r, http.MethodDelete, "/tasks/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/tasks/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/tasks/1", "").Code)
}

type brokenRepo struct{ tasks.Repository }

func (brokenRepo) List(context.Context, string) ([]*tasks.Task, error) {
	return nil, errors.New("connection reset by peer")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	r := newTestRouter(t, brokenRepo{})

	w := do(t, r, http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, common.ErrInternal.Error(), decode[map[string]string](t, w)["error"])
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(common.RequestIDHeaderName, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(common.RequestIDHeaderName))
}

func TestCORS(t *testing.T) {
	preflight := func(r http.Handler, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/tasks/1", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	open := newTestRouter(t, nil)
	w := preflight(open, "http://localhost:5173")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	restricted := NewRouter(tasks.NewService(tasks.NewMemoryRepository()), logging.Discard(), []string{"http://notes.local"})
	w = preflight(restricted, "http://notes.local")
	assert.Equal(t, "http://notes.local", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(restricted, "http://evil.local")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskRequest_Patch(t *testing.T) {
	var req taskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &req))
	p := req.patch()
	assert.Nil(t, p.Description, "absent description is untouched")

	req = taskRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"description":null,"isFavorite":false,"is_favorite":true}`), &req))
	p = req.patch()
	require.NotNil(t, p.Description)
	assert.Equal(t, "", *p.Description)
	require.NotNil(t, p.IsFavorite)
	assert.False(t, *p.IsFavorite, "camelCase wins")
	assert.Equal(t, models.TaskPatch{Description: models.Ptr(""), IsFavorite: models.Ptr(false)}, p)
}
