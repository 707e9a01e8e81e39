package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/corenotes/internal/common"
)

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrNotFound         = common.ErrNotFound
	ErrEmptyResponse    = errors.New("empty response from task store")
	ErrInvalidRecord    = errors.New("invalid task record")
	ErrResponseTooLarge = errors.New("response from task store too large")
)

// TransportError means the request never got an HTTP response: the store
// is unreachable, the connection dropped, or the context expired.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	return target == ErrUnavailable
}

// StoreError is a response with a failure status (>= 400). Body carries the
// response text, if any.
type StoreError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("HTTP %d %s", e.StatusCode, e.Status)
	if e.Body != "" {
		msg += "\n" + e.Body
	}
	return msg
}

func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		return e.StatusCode == http.StatusBadGateway ||
			e.StatusCode == http.StatusServiceUnavailable ||
			e.StatusCode == http.StatusGatewayTimeout
	}
	return false
}
