// Package client is the remote access layer between the notes client and
// the task store.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) with the five
//     store operations: List, Get, Create, Update and Delete.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that tags every
//     request with an X-Request-ID, normalizes records that arrive in either
//     camelCase or snake_case, and falls back to a fresh Get when an update
//     comes back without a body.
//
// # Error Handling
//
// Callers match failures with errors.Is:
//   - ErrUnavailable: the store could not be reached (TransportError) or
//     answered with a gateway status.
//   - ErrNotFound: the store answered 404 (StoreError).
//   - ErrEmptyResponse: Create or Get got no usable body.
//   - ErrInvalidRecord: a record could not be normalized.
//
// A StoreError message has the form "HTTP <status> <text>" followed by the
// response body on the next line, when there is one.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call honors its context.
package client
