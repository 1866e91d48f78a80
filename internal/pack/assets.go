// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// =============================================================================
// ASSET FETCHING
// =============================================================================

const (
	// assetTimeout bounds a single asset download.
	assetTimeout = 15 * time.Second

	// maxAssetSize is the maximum allowed asset body size.
	maxAssetSize = 10 * 1024 * 1024 // 10MB limit
)

// sharedAssetClient is a pooled HTTP client shared by all asset fetches.
var sharedAssetClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: assetTimeout,
}

// AssetFetcher downloads binary assets (cover thumbnails) for embedding into
// archives. All failures are reported as *AssetError; the caller decides
// whether the asset was optional.
type AssetFetcher struct {
	client *http.Client
}

// NewAssetFetcher returns a fetcher backed by the shared pooled client.
func NewAssetFetcher() *AssetFetcher {
	return &AssetFetcher{client: sharedAssetClient}
}

// Fetch downloads one asset, enforcing the size cap.
func (f *AssetFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, &AssetError{URL: url, Err: fmt.Errorf("empty asset url")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &AssetError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &AssetError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &AssetError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, &AssetError{URL: url, Err: err}
	}
	if int64(len(data)) > maxAssetSize {
		return nil, &AssetError{URL: url, Err: fmt.Errorf("asset exceeds %d byte limit", maxAssetSize)}
	}
	return data, nil
}
