package knowledge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"meal-plan-engine/internal/retry"
)

const defaultHTTPTimeout = 15 * time.Second

// Config captures the runtime settings required to talk to the knowledge
// service.
type Config struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

// Client is an HTTP implementation of Fetcher. Repeated upstream failures
// open a circuit breaker so a dead service fails fast instead of burning
// the caller's retry budget.
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*CuisineData]
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a knowledge client from the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	c := &Client{
		cfg: Config{
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			APIKey:         strings.TrimSpace(cfg.APIKey),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	c.breaker = gobreaker.NewCircuitBreaker[*CuisineData](gobreaker.Settings{
		Name:    "cultural-knowledge",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("knowledge request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// retryable reports whether the status suggests a transient condition.
func (e *statusError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Fetch retrieves the knowledge payload for one cuisine. Client-side errors
// (4xx other than 429) are marked permanent so the caller's retry policy
// fails fast on them.
func (c *Client) Fetch(ctx context.Context, cuisine string) (*CuisineData, error) {
	data, err := c.breaker.Execute(func() (*CuisineData, error) {
		return c.fetchOnce(ctx, cuisine)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("knowledge service circuit open: %w", err)
		}
		return nil, err
	}
	return data, nil
}

func (c *Client) fetchOnce(ctx context.Context, cuisine string) (*CuisineData, error) {
	endpoint := fmt.Sprintf("%s/cuisines/%s", c.cfg.BaseURL, url.PathEscape(cuisine))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cuisine %q: %w", cuisine, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		serr := &statusError{StatusCode: resp.StatusCode, Body: string(body)}
		if serr.retryable() {
			return nil, serr
		}
		return nil, retry.Permanent(serr)
	}

	var data CuisineData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode cuisine %q payload: %w", cuisine, err)
	}
	return &data, nil
}
