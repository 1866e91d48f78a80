// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jeranaias/boardforge/internal/board"
)

// =============================================================================
// HTTP CLIENT
// =============================================================================

const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// defaultMaxRetries is the number of attempts for transient errors.
	defaultMaxRetries = 3

	// maxResponseSize is the maximum allowed response body size.
	maxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// sharedHTTPClient is a pooled client shared by all board service requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// Client talks to a remote board service over HTTP. It implements Service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a board service client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: sharedHTTPClient,
		maxRetries: defaultMaxRetries,
	}
}

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// apiError is the service's error body shape.
type apiError struct {
	Message string `json:"message"`
}

func (c *Client) Create(ctx context.Context, b *board.Board) (string, error) {
	body, err := b.Encode()
	if err != nil {
		return "", fmt.Errorf("encode board: %w", err)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/boards", body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (c *Client) Get(ctx context.Context, id string) (*board.Board, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/boards/"+id, nil, &raw); err != nil {
		return nil, err
	}
	b, err := board.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode board %s: %w", id, err)
	}
	return b, nil
}

func (c *Client) Update(ctx context.Context, id string, b *board.Board) error {
	body, err := b.Encode()
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	return c.do(ctx, http.MethodPut, "/boards/"+id, body, nil)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/boards/"+id, nil, nil)
}

func (c *Client) ListMeta(ctx context.Context) ([]BoardMeta, error) {
	var meta []BoardMeta
	if err := c.do(ctx, http.MethodGet, "/boards?view=meta", nil, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// do performs one API call with retry on transient failures, decoding a JSON
// response into out when out is non-nil. Retries use exponential backoff and
// stop early when the context is cancelled.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(1<<(attempt-1)) * time.Second):
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
		case resp.StatusCode == http.StatusConflict:
			return fmt.Errorf("%s %s: %w", method, path, ErrConflict)
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		case resp.StatusCode >= 400:
			var ae apiError
			if json.Unmarshal(data, &ae) == nil && ae.Message != "" {
				return fmt.Errorf("%s %s: %s", method, path, ae.Message)
			}
			return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}
