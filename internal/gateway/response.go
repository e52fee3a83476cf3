// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"errors"

	"github.com/tidwall/gjson"
)

// Reply status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// =============================================================================
// RESPONSE
// =============================================================================

// Response is a parsed reply from the endpoint.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the HTTP status was 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get looks up a gjson path in the body, e.g. "candidates.0.content.parts.0.text".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// Status returns the body's status field, or "" when absent.
func (r *Response) Status() string {
	return r.Get("status").String()
}

// Message returns the body's message field, or "" when absent.
func (r *Response) Message() string {
	return r.Get("message").String()
}

// =============================================================================
// ERRORS
// =============================================================================

// RemoteError is a failure reported by the backend: a non-2xx reply or a
// body with status "error".
type RemoteError struct {
	Message string
	Status  int
}

// Error implements the error interface. It returns the backend message as is
// because it is shown to the user verbatim.
func (e *RemoteError) Error() string {
	return e.Message
}

// IsRemoteError reports whether err is or wraps a *RemoteError.
func IsRemoteError(err error) bool {
	var rerr *RemoteError
	return errors.As(err, &rerr)
}
