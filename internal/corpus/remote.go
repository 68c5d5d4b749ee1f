package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/resilience"
)

// RemoteSource fetches the corpus from a paginated HTTP API using
// skip/limit query parameters. Pages are fetched until the API returns an
// empty page. Each page request is retried with exponential backoff, and
// the remote host is protected by a circuit breaker so a flapping upstream
// does not stall rebuilds.
type RemoteSource struct {
	baseURL   string
	pageLimit int
	client    *http.Client
	breaker   *resilience.CircuitBreaker
	logger    *slog.Logger
}

// NewRemoteSource creates a RemoteSource from the corpus config.
func NewRemoteSource(cfg config.CorpusConfig) *RemoteSource {
	limit := cfg.PageLimit
	if limit <= 0 {
		limit = 1000
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RemoteSource{
		baseURL:   cfg.RemoteURL,
		pageLimit: limit,
		client:    &http.Client{Timeout: timeout},
		breaker:   resilience.NewCircuitBreaker("corpus-remote", resilience.CircuitBreakerConfig{}),
		logger:    slog.Default().With("component", "corpus-remote", "url", cfg.RemoteURL),
	}
}

type remotePage struct {
	Items []wireMessage `json:"items"`
}

// Messages fetches all pages and returns the sorted corpus. A page-level
// failure stops pagination; messages fetched so far are still returned as
// long as at least one page succeeded.
func (r *RemoteSource) Messages(ctx context.Context) ([]Message, error) {
	var items []wireMessage
	skip := 0
	for {
		page, err := r.fetchPage(ctx, skip)
		if err != nil {
			if len(items) == 0 {
				return nil, fmt.Errorf("fetching corpus: %w", err)
			}
			r.logger.Warn("pagination stopped early", "skip", skip, "error", err)
			break
		}
		if len(page) == 0 {
			break
		}
		items = append(items, page...)
		skip += r.pageLimit
	}
	msgs := convert(items)
	r.logger.Info("loaded corpus from remote API", "messages", len(msgs), "pages", (skip/r.pageLimit)+1)
	return msgs, nil
}

// fetchPage retrieves a single page, retrying transient failures with
// exponential backoff. Client errors (HTTP 4xx) are not retried.
func (r *RemoteSource) fetchPage(ctx context.Context, skip int) ([]wireMessage, error) {
	url := fmt.Sprintf("%s?skip=%d&limit=%d", r.baseURL, skip, r.pageLimit)

	var page remotePage
	operation := func() error {
		return r.breaker.Execute(func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return backoff.Permanent(err)
			}
			resp, err := r.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return fmt.Errorf("remote returned status %d", resp.StatusCode)
			}
			if resp.StatusCode >= 400 {
				return backoff.Permanent(fmt.Errorf("remote returned status %d", resp.StatusCode))
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(body, &page); err != nil {
				return backoff.Permanent(fmt.Errorf("decoding page at skip=%d: %w", skip, err))
			}
			return nil
		})
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 60 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return page.Items, nil
}
