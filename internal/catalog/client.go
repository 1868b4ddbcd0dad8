package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Outcome labels reported to an Observer.
const (
	OutcomeOK          = "ok"
	OutcomeHTTPError   = "http_error"
	OutcomeUnavailable = "unavailable"
	OutcomeBadShape    = "bad_shape"
)

// Observer receives one notification per API call.
type Observer interface {
	ObserveCatalogCall(op, outcome string, elapsed time.Duration)
}

// Client wraps the catalog REST API bound to a single resource URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
	logger     *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero keeps transport defaults.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithObserver reports call outcomes, typically to metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New constructs a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog: base url %q must be http or https", baseURL)
	}
	c := &Client{
		baseURL:    u.String(),
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the bound resource URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches the product collection.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("list", OutcomeUnavailable, start)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe("list", OutcomeUnavailable, start)
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe("list", OutcomeHTTPError, start)
		return nil, newAPIError(resp.StatusCode, body)
	}

	products, err := DecodeCollection(body)
	if err != nil {
		c.observe("list", OutcomeBadShape, start)
		return nil, err
	}
	c.observe("list", OutcomeOK, start)
	return products, nil
}

// Create posts a draft and returns the response status. Any 2xx resolves
// without error; deciding which 2xx codes count as created is up to the caller.
func (c *Client) Create(ctx context.Context, draft Draft) (int, error) {
	start := time.Now()
	payload, err := json.Marshal(draft)
	if err != nil {
		return 0, fmt.Errorf("catalog: encode draft: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("catalog: build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("create", OutcomeUnavailable, start)
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		c.observe("create", OutcomeHTTPError, start)
		return resp.StatusCode, newAPIError(resp.StatusCode, body)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	c.observe("create", OutcomeOK, start)
	return resp.StatusCode, nil
}

func (c *Client) observe(op, outcome string, start time.Time) {
	if outcome != OutcomeOK {
		c.logger.Debug("catalog api call failed", slog.String("op", op), slog.String("outcome", outcome))
	}
	if c.observer != nil {
		c.observer.ObserveCatalogCall(op, outcome, time.Since(start))
	}
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg, ok := payload.Message.(string); ok {
			apiErr.Message = msg
		}
	}
	return apiErr
}
