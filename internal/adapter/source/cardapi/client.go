package cardapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/cardgrid/internal/domain"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 2
	baseRetryDelay    = 500 * time.Millisecond

	cardsPath = "/api/cards"
)

// Client implements domain.CardSource for the card listing service
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithMaxRetries sets how many times a 5xx response is retried
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithRetryDelay sets the first backoff delay; later retries double it
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// NewClient creates a new listing service client
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		maxRetries: defaultMaxRetries,
		retryDelay: baseRetryDelay,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListCards fetches one page of cards and maps them to display form
func (c *Client) ListCards(ctx context.Context, q domain.CardQuery) ([]domain.Card, error) {
	body, err := c.doRequest(ctx, cardsPath, EncodeQuery(q))
	if err != nil {
		return nil, err
	}

	var wire []WireCard
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapCards(wire), nil
}

// EncodeQuery renders the query string in page, limit, search order
func EncodeQuery(q domain.CardQuery) string {
	return fmt.Sprintf("page=%d&limit=%d&search=%s", q.Page, q.Limit, url.QueryEscape(q.Search))
}

// doRequest performs a GET against the listing service.
// 5xx responses are retried with exponential backoff.
func (c *Client) doRequest(ctx context.Context, path, rawQuery string) ([]byte, error) {
	reqURL := c.baseURL + path
	if rawQuery != "" {
		reqURL += "?" + rawQuery
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// Wait before retry (exponential backoff)
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1))
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "url", reqURL)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		c.logger.Debug("card api request", "url", reqURL, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// A cancelled request is superseded, not offline
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.Error("card api request failed", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrSourceOffline, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode >= 500 && resp.StatusCode < 600 {
			lastErr = fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
			c.logger.Warn("card api server error, will retry",
				"status", resp.StatusCode,
				"body", string(body),
				"attempt", attempt,
				"maxRetries", c.maxRetries,
				"query", rawQuery,
			)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			c.logger.Error("card api request error", "status", resp.StatusCode, "body", string(body))
			return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
		}

		return body, nil
	}

	c.logger.Error("card api request failed after retries",
		"error", lastErr,
		"url", reqURL,
	)
	return nil, lastErr
}
