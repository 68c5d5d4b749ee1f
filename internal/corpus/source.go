package corpus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/postgres"
)

// Source acquires the full message corpus. Implementations must return
// messages sorted ascending by timestamp, ties broken by arrival order.
type Source interface {
	Messages(ctx context.Context) ([]Message, error)
}

// Chain tries each source in order and returns the first non-empty result.
// A source that errors or returns no messages is skipped.
type Chain []Source

func (c Chain) Messages(ctx context.Context) ([]Message, error) {
	log := slog.Default().With("component", "corpus-chain")
	var lastErr error
	for _, src := range c {
		msgs, err := src.Messages(ctx)
		if err != nil {
			log.Warn("corpus source failed, trying next", "error", err)
			lastErr = err
			continue
		}
		if len(msgs) == 0 {
			log.Warn("corpus source returned no messages, trying next")
			continue
		}
		return msgs, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("all corpus sources failed: %w", lastErr)
	}
	return []Message{}, nil
}

// FromConfig builds the corpus source described by cfg. The Postgres client
// may be nil when the postgres source is not selected.
func FromConfig(cfg config.CorpusConfig, pg *postgres.Client) (Source, error) {
	switch cfg.Source {
	case "snapshot":
		return NewSnapshotSource(cfg.SnapshotPath), nil
	case "remote":
		if cfg.RemoteURL == "" {
			return nil, fmt.Errorf("corpus source %q requires remoteUrl", cfg.Source)
		}
		return NewRemoteSource(cfg), nil
	case "postgres":
		if pg == nil {
			return nil, fmt.Errorf("corpus source %q requires a postgres connection", cfg.Source)
		}
		return NewStoreSource(pg), nil
	case "auto", "":
		chain := Chain{NewSnapshotSource(cfg.SnapshotPath)}
		if cfg.RemoteURL != "" {
			chain = append(chain, NewRemoteSource(cfg))
		}
		if pg != nil {
			chain = append(chain, NewStoreSource(pg))
		}
		return chain, nil
	default:
		return nil, fmt.Errorf("unknown corpus source %q", cfg.Source)
	}
}
