package sync

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

	"github.com/tempo-cli/tempo/internal/config"
	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/logging"
)

// Client talks to the sync server with retry logic. All requests are
// context-aware so a user interrupt aborts the round-trip cleanly.
type Client struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	maxRetries  int
	retryDelays []time.Duration
}

// NewClient creates a sync client from the sync configuration.
func NewClient(cfg config.SyncConfig) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		maxRetries:  cfg.MaxRetries,
		retryDelays: cfg.RetryDelays,
	}
}

// PullSince fetches entries and tombstones modified since the given instant.
func (c *Client) PullSince(ctx context.Context, since time.Time) (*Batch, error) {
	endpoint := c.baseURL + "/entries"
	if !since.IsZero() {
		endpoint += "?since=" + url.QueryEscape(since.Format(time.RFC3339))
	}

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, errors.Wrap(errors.ErrSyncFailed, "cannot decode pull response")
	}

	logging.Debug("pulled remote batch",
		logging.KeyCount, len(batch.Entries),
		"tombstones", len(batch.Tombstones))
	return &batch, nil
}

// Push uploads local changes and returns per-entry acknowledgments.
func (c *Client) Push(ctx context.Context, batch Batch) ([]Ack, error) {
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode push batch")
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/entries", payload)
	if err != nil {
		return nil, err
	}

	var acks []Ack
	if err := json.Unmarshal(body, &acks); err != nil {
		return nil, errors.Wrap(errors.ErrSyncFailed, "cannot decode push response")
	}
	return acks, nil
}

// do sends one request with the retry schedule: 429 and 5xx responses are
// retried, 4xx responses are not.
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Wait before retry (except first attempt)
		if attempt > 0 && attempt < len(c.retryDelays) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelays[attempt]):
			}
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Api-Key", c.apiKey)
		req.Header.Set("User-Agent", "tempo/1.0")

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = errors.Wrap(errors.ErrSyncFailed, err.Error())
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}

		logging.Debug("sync request failed",
			logging.KeyStatus, resp.StatusCode,
			logging.KeyAttempt, attempt+1)

		// Rate limiting and server errors are retryable.
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = errors.Wrapf(errors.ErrSyncFailed, "server returned HTTP %d", resp.StatusCode)
			continue
		}

		// Client error: retrying won't help.
		return nil, errors.Wrapf(errors.ErrSyncFailed, "server rejected request (HTTP %d): %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: max retries exceeded", errors.ErrSyncFailed)
	}
	return nil, lastErr
}
