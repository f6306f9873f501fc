// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/parley-im/parley/lib/netutil"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BackendURL is the base URL of the Parley backend
	// (e.g., "https://api.parley.im").
	BackendURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client is an unauthenticated Parley backend client.
// It holds the base URL and HTTP transport, shared across sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new unauthenticated backend client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BackendURL == "" {
		return nil, fmt.Errorf("messaging: BackendURL is required")
	}

	// Validate the URL structure. The string form (trailing slash
	// stripped) is stored and request URLs are built by concatenation,
	// avoiding url.URL re-encoding of already-escaped path segments.
	if _, err := url.Parse(config.BackendURL); err != nil {
		return nil, fmt.Errorf("messaging: invalid BackendURL %q: %w", config.BackendURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BackendURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's connection pool. Call this after a network disruption to
// force subsequent requests to establish fresh TCP connections instead
// of reusing a poisoned pooled connection.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Login authenticates with username and password, returning a DirectSession.
func (c *Client) Login(ctx context.Context, username, password string) (*DirectSession, error) {
	if username == "" {
		return nil, fmt.Errorf("messaging: username is required for login")
	}
	if password == "" {
		return nil, fmt.Errorf("messaging: password is required for login")
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/v1/login", "", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("messaging: login failed: %w", err)
	}

	var authResponse AuthResponse
	if err := json.Unmarshal(body, &authResponse); err != nil {
		return nil, fmt.Errorf("messaging: failed to parse login response: %w", err)
	}

	c.logger.Info("logged in to backend", "user_id", authResponse.UserID)

	return &DirectSession{
		client:      c,
		accessToken: authResponse.AccessToken,
		userID:      authResponse.UserID,
	}, nil
}

// SessionFromToken creates a DirectSession from a previously saved access
// token. This does NOT validate the token — call [DirectSession.Me] to
// verify it before relying on the session.
func (c *Client) SessionFromToken(userID, accessToken string) (*DirectSession, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("messaging: access token is required")
	}
	return &DirectSession{
		client:      c,
		accessToken: accessToken,
		userID:      userID,
	}, nil
}

// doRequest performs an HTTP request against the backend and returns the
// response body. On 2xx, returns the body. On 4xx/5xx, returns a
// *APIError. accessToken may be empty for unauthenticated endpoints.
// query may be nil for endpoints without query parameters.
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, requestBody any, query ...url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 && query[0] != nil {
		requestURL += "?" + query[0].Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("messaging: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("messaging: failed to create request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		request.Header.Set("Authorization", "Bearer "+accessToken)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("messaging: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("messaging: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	// All backend error responses use the same JSON shape.
	var apiErr APIError
	if jsonErr := json.Unmarshal(responseBody, &apiErr); jsonErr != nil || apiErr.Code == "" {
		// Server returned a non-JSON error. Fail loud with the raw body.
		return nil, fmt.Errorf("messaging: unexpected %d response from %s %s: %s",
			response.StatusCode, method, path, string(responseBody))
	}
	apiErr.StatusCode = response.StatusCode

	return responseBody, &apiErr
}
