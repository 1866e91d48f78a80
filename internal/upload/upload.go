// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// UPLOAD CLIENT
// =============================================================================

const (
	// DefaultTimeout bounds a single upload request.
	DefaultTimeout = 60 * time.Second

	// uploadsPerSecond caps the outbound call rate; bursts of two cover the
	// common export-then-thumbnail pair.
	uploadsPerSecond = 1
	uploadBurst      = 2

	// maxPayloadSize caps the raw (pre-encoding) file size.
	maxPayloadSize = 50 * 1024 * 1024 // 50MB limit
)

// sharedUploadClient is a pooled client shared by all uploads.
var sharedUploadClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// Client posts exported archives to the storage endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates an upload client for the given endpoint.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: sharedUploadClient,
		limiter:    rate.NewLimiter(uploadsPerSecond, uploadBurst),
	}
}

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// uploadRequest is the collaborator's wire shape: base64 content plus a
// declared file-type label.
type uploadRequest struct {
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
	Content  string `json:"content"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends one file and returns the stored file's URL. It blocks on the
// rate limiter first, honoring context cancellation.
func (c *Client) Upload(ctx context.Context, filename, fileType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("upload %s: empty payload", filename)
	}
	if len(data) > maxPayloadSize {
		return "", fmt.Errorf("upload %s: payload exceeds %d byte limit", filename, maxPayloadSize)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}

	body, err := json.Marshal(uploadRequest{
		Filename: filename,
		FileType: fileType,
		Content:  base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return "", fmt.Errorf("encode upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("upload %s: status %d", filename, resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return out.URL, nil
}
