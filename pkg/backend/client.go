// Package backend is the HTTP client for the blog REST service. Every call is
// attempted exactly once; failures come back as typed errors so the web layer
// can tell transport, authorization, validation and conflict failures apart.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const timeout = 10 * time.Second

type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// do issues a single JSON request. A non-empty token is attached as a bearer
// Authorization header. When out is non-nil the response body is decoded into
// it.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if err := responseErr(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
		}
	}

	return nil
}

// responseErr maps non-2xx statuses onto the client's error taxonomy.
func responseErr(resp *http.Response) error {
	if resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return &NotFoundError{msg: bodyText(resp)}
	case http.StatusConflict:
		return &ConflictError{msg: bodyText(resp)}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Message: bodyText(resp)}
	}

	return fmt.Errorf("backend returned status %d", resp.StatusCode)
}

func bodyText(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return resp.Status
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return resp.Status
	}
	return s
}
