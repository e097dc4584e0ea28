// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tissueworks/tissuebox/lib/clock"
	"github.com/tissueworks/tissuebox/lib/netutil"
)

// githubAPIVersion pins the REST API version header so behavior stays
// stable as GitHub rolls the API forward.
const githubAPIVersion = "2022-11-28"

// defaultBaseURL is the public GitHub API root.
const defaultBaseURL = "https://api.github.com"

// Config parameterizes NewClient.
type Config struct {
	// BaseURL is the API root, "https://api.github.com" when empty.
	// HTTPS only; a GitHub Enterprise instance's /api/v3 root works
	// here too.
	BaseURL string

	// Token is a personal access token or fine-grained token.
	// Required.
	Token string

	// HTTPClient overrides http.DefaultClient, mainly so tests can
	// supply an httptest server's client.
	HTTPClient *http.Client

	// Clock supplies time; clock.Real() when nil. Tests inject
	// clock.Fake() to drive the backoff sleeps.
	Clock clock.Clock

	// Logger receives backoff notices. slog.Default() when nil.
	Logger *slog.Logger
}

// Client is a typed client for the GitHub REST API. It waits out
// exhausted rate limit windows, follows Link-header pagination,
// serves conditional GETs from an ETag cache, and turns error bodies
// into *APIError values.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authHeader string
	limits     *rateGate
	cache      *responseCache
	clock      clock.Clock
	logger     *slog.Logger
}

// NewClient builds a Client from config. The token is mandatory and
// the base URL has to be HTTPS; anything else is an error.
func NewClient(config Config) (*Client, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("github: no token configured")
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("github: base URL %q requires HTTPS", baseURL)
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: config.HTTPClient,
		authHeader: "Bearer " + config.Token,
		clock:      config.Clock,
		logger:     config.Logger,
	}
	if client.httpClient == nil {
		client.httpClient = http.DefaultClient
	}
	if client.clock == nil {
		client.clock = clock.Real()
	}
	if client.logger == nil {
		client.logger = slog.Default()
	}
	client.limits = newRateGate(client.clock)
	client.cache = newResponseCache()
	return client, nil
}

// do runs one API call against a path relative to the base URL and
// returns the response body. When the call comes back rate limited
// with a usable backoff hint, do sleeps and tries a second time; a
// limit that never clears surfaces as the second attempt's error
// rather than a retry loop. Non-2xx responses come back as *APIError.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	url := client.baseURL + path

	payload, backoff, err := client.exchange(ctx, method, url, requestBody)
	if err == nil || backoff <= 0 {
		return payload, err
	}

	client.logger.Info("rate limited, backing off",
		"duration", backoff,
		"method", method,
		"path", path,
	)
	select {
	case <-client.clock.After(backoff):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	payload, _, err = client.exchange(ctx, method, url, requestBody)
	return payload, err
}

// exchange performs a single request/response cycle. A 304 answer is
// satisfied from the ETag cache. For rate limited responses the
// returned duration carries the server's backoff hint so do can
// decide whether to retry; it is zero in every other case.
func (client *Client) exchange(ctx context.Context, method, url string, requestBody any) ([]byte, time.Duration, error) {
	response, err := client.roundTrip(ctx, method, url, requestBody)
	if err != nil {
		return nil, 0, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotModified {
		if cached := client.cache.payload(url); cached != nil {
			return cached, 0, nil
		}
		// A 304 with nothing cached falls through and surfaces as an
		// API error below rather than silently returning no body.
	}

	payload, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("github: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		apiErr := decodeAPIError(response.StatusCode, payload)
		var backoff time.Duration
		if response.StatusCode == 429 ||
			(response.StatusCode == 403 && isRateLimitMessage(apiErr.Message)) {
			backoff = client.limits.backoff(response.Header)
		}
		return nil, backoff, apiErr
	}

	if method == http.MethodGet {
		if etag := response.Header.Get("ETag"); etag != "" {
			client.cache.store(url, etag, payload)
		}
	}
	return payload, 0, nil
}

// roundTrip sends one authenticated HTTP request and hands back the
// raw response; the caller owns the body. The URL is absolute here,
// not a path: PageIterator follows Link-header URLs directly and
// needs the headers before the body is parsed, which is why this
// layer exists separately from exchange.
//
// An exhausted rate limit window is waited out before sending, and
// every response feeds the quota tracker.
func (client *Client) roundTrip(ctx context.Context, method, url string, requestBody any) (*http.Response, error) {
	if err := client.limits.block(ctx); err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("github: marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("github: building request: %w", err)
	}
	request.Header.Set("Authorization", client.authHeader)
	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodGet {
		if etag := client.cache.tag(url); etag != "" {
			request.Header.Set("If-None-Match", etag)
		}
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("github: %s %s: %w", method, url, err)
	}
	client.limits.observe(response.Header)
	return response, nil
}

// get fetches a single JSON object into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	payload, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, result)
}

// post sends a JSON body and decodes the JSON answer into result,
// which may be nil when the caller does not care.
func (client *Client) post(ctx context.Context, path string, requestBody any, result any) error {
	payload, err := client.do(ctx, http.MethodPost, path, requestBody)
	if err != nil {
		return err
	}
	if result != nil {
		return json.Unmarshal(payload, result)
	}
	return nil
}
