package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/resilience"
)

// StoreSource loads the corpus from the messages table in Postgres.
type StoreSource struct {
	client *postgres.Client
	logger *slog.Logger
}

// NewStoreSource creates a StoreSource backed by the given Postgres client.
func NewStoreSource(client *postgres.Client) *StoreSource {
	return &StoreSource{
		client: client,
		logger: slog.Default().With("component", "corpus-store"),
	}
}

const selectMessages = `
SELECT user_name, message, created_at
FROM messages
ORDER BY created_at ASC, id ASC`

// Messages reads every message ordered by timestamp then insertion id, so
// the arrival-order tie-break is applied by the database itself. Rows with
// an empty speaker or body are skipped. Transient query failures are
// retried with backoff.
func (s *StoreSource) Messages(ctx context.Context) ([]Message, error) {
	var msgs []Message
	err := resilience.Retry(ctx, "postgres-load-messages", resilience.RetryConfig{}, func() error {
		loaded, err := s.load(ctx)
		if err != nil {
			return err
		}
		msgs = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("loaded corpus from postgres", "messages", len(msgs))
	return msgs, nil
}

func (s *StoreSource) load(ctx context.Context) ([]Message, error) {
	rows, err := s.client.DB.QueryContext(ctx, selectMessages)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	skipped := 0
	for rows.Next() {
		var speaker, text string
		var ts time.Time
		if err := rows.Scan(&speaker, &text, &ts); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		if speaker == "" || text == "" {
			skipped++
			continue
		}
		msgs = append(msgs, Message{Speaker: speaker, Text: text, Timestamp: ts})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}
	if skipped > 0 {
		s.logger.Warn("skipped malformed message rows", "skipped", skipped)
	}
	return msgs, nil
}
