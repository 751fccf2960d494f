// Package client talks to a running tagbridge server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xdg/tagbridge/internal/runner"
	"github.com/xdg/tagbridge/internal/token"
	"github.com/xdg/tagbridge/internal/version"
)

// HealthTimeout bounds a health probe, matching the extension popup.
const HealthTimeout = 3 * time.Second

// ErrUnauthorized is returned when the bridge rejects the bearer token.
var ErrUnauthorized = errors.New("unauthorized: check the bridge token")

// Client sends requests to a tagbridge server.
type Client struct {
	// BaseURL is the server root, e.g. "http://127.0.0.1:5000".
	BaseURL string

	// Token is sent as a bearer token when non-empty.
	Token string

	// HTTPClient defaults to http.DefaultClient. Runs have no client-side
	// timeout since the tool may legitimately take minutes.
	HTTPClient *http.Client
}

// New returns a client for the bridge listening on addr (host:port).
func New(addr, secret string) *Client {
	return &Client{
		BaseURL: "http://" + addr,
		Token:   secret,
	}
}

type runRequest struct {
	Steps string   `json:"steps"`
	Args  []string `json:"args,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health reports whether the bridge answers GET /health.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Run submits steps for execution. A nil args slice lets the server apply
// its default arguments. Execution failures come back in the Result, not as
// an error.
func (c *Client) Run(ctx context.Context, steps string, args []string) (runner.Result, error) {
	var result runner.Result
	if err := c.do(ctx, http.MethodPost, "/run", runRequest{Steps: steps, Args: args}, &result); err != nil {
		return runner.Result{}, fmt.Errorf("run: %w", err)
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", token.Header(c.Token))
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%s (status %d)", errResp.Error, resp.StatusCode)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
