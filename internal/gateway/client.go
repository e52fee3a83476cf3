// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the client for the logistics scripting endpoint.
//
// Every backend action (ticket submission, EZOI lookups, assistant replies,
// training data) goes through one POST to one URL. The client normalizes the
// success/error shape and keeps the most recent raw reply for the API log.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Configuration constants for the scripting endpoint.
const (
	// DefaultEndpoint is the production Apps Script deployment.
	DefaultEndpoint = "https://script.google.com/macros/s/AKfycbyYdNYHsrW4QIFzbRCtSp-ENPwJeUp-BmtUT2oQOMWttQli3v3Fd-jB7VZfk56iwpGF/exec"

	// ContentType is sent on every request; the body is still JSON.
	ContentType = "text/plain;charset=utf-8"

	// DefaultMaxResponseSize caps how much of a reply body is read.
	DefaultMaxResponseSize = 10 * 1024 * 1024
)

var (
	// ErrNoEndpoint indicates the client was built without an endpoint URL.
	ErrNoEndpoint = errors.New("gateway endpoint not configured")
)

// =============================================================================
// CLIENT
// =============================================================================

// Client sends action payloads to the scripting endpoint.
// Calls are never retried and carry no timeout of their own; cancel through
// the context if needed.
type Client struct {
	endpoint        string
	httpClient      *http.Client
	logger          *zap.Logger
	maxResponseSize int64

	mu   sync.RWMutex
	last json.RawMessage
}

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMaxResponseSize caps the number of reply bytes read.
func WithMaxResponseSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResponseSize = n
		}
	}
}

// New creates a client for endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid gateway endpoint %q", endpoint)
	}

	c := &Client{
		endpoint:        endpoint,
		httpClient:      &http.Client{},
		logger:          zap.NewNop(),
		maxResponseSize: DefaultMaxResponseSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Invoke posts payload as JSON and returns the parsed reply.
//
// The body is parsed as JSON whatever the HTTP status. A non-2xx status or a
// body whose status field is "error" yields a *RemoteError. Every reply that
// parses, success or failure, replaces the last-response slot.
func (c *Client) Invoke(ctx context.Context, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	action := gjson.GetBytes(body, "action").String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", ContentType)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("gateway request failed", zap.String("action", action), zap.Error(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := c.readResponse(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gateway reply",
		zap.String("action", action),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Duration("elapsed", time.Since(start)))

	if !gjson.ValidBytes(raw) {
		return nil, &RemoteError{
			Message: fmt.Sprintf("Invalid JSON in response (HTTP %d)", resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}

	c.setLast(raw)
	out := &Response{StatusCode: resp.StatusCode, Body: raw}

	if !out.OK() || out.Status() == StatusError {
		rerr := &RemoteError{Message: out.Message(), Status: resp.StatusCode}
		if rerr.Message == "" {
			rerr.Message = fmt.Sprintf("Request failed: %d", resp.StatusCode)
		}
		c.logger.Warn("gateway returned failure",
			zap.String("action", action),
			zap.Int("status", resp.StatusCode),
			zap.String("message", rerr.Message))
		return nil, rerr
	}

	return out, nil
}

// LastResponse returns a copy of the most recent parsed reply, or nil if no
// reply has been received yet.
func (c *Client) LastResponse() json.RawMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.last == nil {
		return nil
	}
	return bytes.Clone(c.last)
}

func (c *Client) setLast(raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = bytes.Clone(raw)
}

// readResponse reads the body with a size limit.
func (c *Client) readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, c.maxResponseSize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > c.maxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", c.maxResponseSize)
	}
	return body, nil
}
