// Package api is the transport layer to the marketplace agent backend.
// Both calls are stateless; failures surface as *TransportError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"jol/internal/logger"
	"jol/internal/models"
)

// ErrTransport matches every *TransportError via errors.Is.
var ErrTransport = errors.New("transport failure")

// TransportError reports a non-2xx status or an unreachable backend.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: HTTP error! status: %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

type Client struct {
	baseURL   string
	http      *http.Client
	sessionID string
}

type Option func(*Client)

// WithTimeout bounds each request. Zero leaves the environment default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithSessionID(id string) Option {
	return func(c *Client) { c.sessionID = id }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SessionID() string { return c.sessionID }

func (c *Client) BaseURL() string { return c.baseURL }

// SendMessage posts the current message together with the prior history.
func (c *Client) SendMessage(ctx context.Context, message string, history []models.ChatTurn) (*models.ChatResponse, error) {
	if history == nil {
		history = []models.ChatTurn{}
	}
	body, err := json.Marshal(models.ChatRequest{Message: message, History: history})
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	var resp models.ChatResponse
	if err := c.do(ctx, "chat", http.MethodPost, c.baseURL+"/chat", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchListings returns the full collection. sortBy and sortOrder are not
// validated here; the backend decides what it accepts.
func (c *Client) FetchListings(ctx context.Context, sortBy, sortOrder string) ([]models.Listing, error) {
	q := url.Values{}
	q.Set("sort_by", sortBy)
	q.Set("sort_order", sortOrder)

	var listings []models.Listing
	if err := c.do(ctx, "listings", http.MethodGet, c.baseURL+"/listings?"+q.Encode(), nil, &listings); err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}

type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, "health", http.MethodGet, c.baseURL+"/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) do(ctx context.Context, op, method, target string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &TransportError{Op: op, URL: target, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Session-ID", c.sessionID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("Backend request failed", "op", op, "url", target, "error", err)
		return &TransportError{Op: op, URL: target, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.Debug("Backend request completed",
		"op", op,
		"status_code", resp.StatusCode,
		"duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		logger.Error("Backend returned error status", "op", op, "status_code", resp.StatusCode)
		return &TransportError{
			Op:         op,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, URL: target, StatusCode: 0, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
