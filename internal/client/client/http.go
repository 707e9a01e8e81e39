package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/corenotes/internal/common"
	"github.com/dmitrijs2005/corenotes/internal/logging"
	"github.com/dmitrijs2005/corenotes/internal/models"
	"github.com/google/uuid"
)

// DefaultServerURL is where the development task store listens.
const DefaultServerURL = "http://127.0.0.1:3333"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

var _ Client = (*HTTPClient)(nil)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient builds a client for the store at baseURL. A zero timeout
// leaves requests bounded only by their contexts.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultServerURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse server url: unsupported scheme %q", u.Scheme)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

func (c *HTTPClient) List(ctx context.Context, filter ListFilter) ([]models.Task, error) {
	q := url.Values{}
	if s := strings.TrimSpace(filter.Search); s != "" {
		q.Set("search", s)
	}

	raw, err := c.do(ctx, http.MethodGet, q, nil, common.TasksPath)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []models.Task{}, nil
	}
	return NormalizeList(raw)
}

func (c *HTTPClient) Get(ctx context.Context, id int64) (models.Task, error) {
	raw, err := c.do(ctx, http.MethodGet, nil, nil, common.TasksPath, strconv.FormatInt(id, 10))
	if err != nil {
		return models.Task{}, err
	}
	if raw == nil {
		return models.Task{}, ErrEmptyResponse
	}
	return NormalizeTask(raw)
}

func (c *HTTPClient) Create(ctx context.Context, input models.TaskInput) (models.Task, error) {
	raw, err := c.do(ctx, http.MethodPost, nil, CreatePayload(input), common.TasksPath)
	if err != nil {
		return models.Task{}, err
	}
	if raw == nil {
		return models.Task{}, ErrEmptyResponse
	}
	return NormalizeTask(raw)
}

// Update sends the patch and returns the stored record. Stores that answer
// 204 or an empty body are followed up with a Get.
func (c *HTTPClient) Update(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error) {
	raw, err := c.do(ctx, http.MethodPatch, nil, ToServerPayload(patch), common.TasksPath, strconv.FormatInt(id, 10))
	if err != nil {
		return models.Task{}, err
	}
	if raw == nil {
		return c.Get(ctx, id)
	}
	return NormalizeTask(raw)
}

// Delete removes a task. A task that is already gone counts as deleted.
func (c *HTTPClient) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, nil, nil, common.TasksPath, strconv.FormatInt(id, 10))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// do performs one round trip. It returns nil, nil for responses without a
// JSON body (204, empty, or non-JSON text).
func (c *HTTPClient) do(ctx context.Context, method string, query url.Values, body any, path ...string) (json.RawMessage, error) {
	u := c.baseURL.JoinPath(path...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	op := method + " " + u.Path

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "op", op, "request_id", requestID, "error", err)
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if len(data) > maxResponseBytes {
		return nil, fmt.Errorf("%s: %w", op, ErrResponseTooLarge)
	}

	c.logger.Debug(ctx, "request done",
		"op", op,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &StoreError{
			StatusCode: resp.StatusCode,
			Status:     reasonPhrase(resp),
			Body:       strings.TrimSpace(string(data)),
		}
	}

	data = bytes.TrimSpace(data)
	if resp.StatusCode == http.StatusNoContent || len(data) == 0 || !json.Valid(data) {
		return nil, nil
	}
	return data, nil
}

// reasonPhrase returns the status text the store sent, falling back to the
// standard one when the status line carries none.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		return http.StatusText(resp.StatusCode)
	}
	return reason
}
