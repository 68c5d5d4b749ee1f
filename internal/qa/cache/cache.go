// Package cache provides a Redis-backed answer cache with singleflight
// deduplication of concurrent identical questions.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/config"
	pkgredis "github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/redis"
)

const keyPrefix = "answer:"

// Entry is the cached representation of an answered question.
type Entry struct {
	Answer       string `json:"answer"`
	QuestionType string `json:"question_type"`
	Found        bool   `json:"found"`
	Outcome      string `json:"outcome"`
}

// cacheable reports whether the entry may be stored. Degraded answers are
// transient (the index may come back any moment) and must not stick for a
// full TTL.
func (e *Entry) cacheable() bool {
	return e.Outcome != "degraded"
}

type AnswerCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

func New(client *pkgredis.Client, cfg config.RedisConfig) *AnswerCache {
	return &AnswerCache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "answer-cache"),
	}
}

func (c *AnswerCache) Get(ctx context.Context, question string) (*Entry, bool) {
	key := c.buildKey(question)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if pkgredis.IsNilError(err) {
			c.misses.Add(1)
			return nil, false
		}
		c.logger.Error("cache get failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "question", question, "key", key)
	return &entry, true
}

func (c *AnswerCache) Set(ctx context.Context, question string, entry *Entry) {
	key := c.buildKey(question)
	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached entry for question, computing and storing
// it on a miss. Concurrent misses for the same question share one compute.
func (c *AnswerCache) GetOrCompute(
	ctx context.Context,
	question string,
	computeFn func() (*Entry, error),
) (*Entry, bool, error) {
	if entry, ok := c.Get(ctx, question); ok {
		return entry, true, nil
	}
	key := c.buildKey(question)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if entry, ok := c.Get(ctx, question); ok {
			return entry, nil
		}
		entry, err := computeFn()
		if err != nil {
			return nil, err
		}
		if entry.cacheable() {
			c.Set(ctx, question, entry)
		}
		return entry, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*Entry), false, nil
}

// Invalidate removes every cached answer. Called after an index rebuild so
// stale answers never outlive the corpus they came from.
func (c *AnswerCache) Invalidate(ctx context.Context) error {
	pattern := keyPrefix + "*"
	deleted, err := c.client.FlushByPattern(ctx, pattern)
	if err != nil {
		return fmt.Errorf("invalidating answer cache: %w", err)
	}
	c.logger.Info("cache invalidate", "keys_deleted", deleted)
	return nil
}

func (c *AnswerCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// buildKey hashes the trimmed question verbatim. Capitalisation is
// significant to the pipeline (person extraction keys on it), so no case
// folding happens here.
func (c *AnswerCache) buildKey(question string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(question)))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
