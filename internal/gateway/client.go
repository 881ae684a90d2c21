// Package gateway is the typed HTTP client for the reTeach backend.
// It translates domain entities to and from the backend's wire format.
// Calls are single-attempt: no retry, no backoff, no batching. Errors
// carry the backend's structured detail when one is present, falling
// back to the HTTP status text.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/reteach/reteach-cli/internal/config"
)

// Client talks to one reTeach backend.
type Client struct {
	http         *http.Client
	baseURL      string
	teacherEmail string
	teacherName  string
	timeout      time.Duration
}

// New creates a Client from configuration. The configured timeout bounds
// each request through its context rather than http.Client.Timeout, so a
// caller that sets its own deadline overrides it.
func New(cfg config.Config) *Client {
	return &Client{
		http:         &http.Client{},
		baseURL:      strings.TrimRight(cfg.BackendURL, "/"),
		teacherEmail: cfg.TeacherEmail,
		teacherName:  cfg.TeacherName,
		timeout:      cfg.Timeout,
	}
}

// requestContext applies the configured timeout when the caller's context
// carries no deadline of its own.
func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FormURL derives the public student-facing URL for a form slug.
func (c *Client) FormURL(slug string) string {
	return c.baseURL + "/form/" + slug
}

// endpoint joins the base URL, a path, and optional query parameters.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (skipped when out is nil).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// doJSONRaw is doJSON returning the raw response body, for callers that
// validate the payload against a schema before decoding.
func (c *Client) doJSONRaw(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, method, path, nil, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
