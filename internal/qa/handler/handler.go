package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/analytics"
	apperrors "github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa/cache"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/middleware"
)

// Answerer is the engine surface the handler depends on.
type Answerer interface {
	Answer(ctx context.Context, question string) qa.Result
	Rebuild(ctx context.Context) error
	CorpusSize() int
}

// AskResponse is the JSON body returned by the ask endpoint. Answer always
// holds either the extracted answer or the not-found sentinel.
type AskResponse struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	QuestionType string `json:"question_type"`
	Found        bool   `json:"found"`
}

type Handler struct {
	engine    Answerer
	cache     *cache.AnswerCache
	collector *analytics.Collector
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func New(engine Answerer, answerCache *cache.AnswerCache, collector *analytics.Collector, m *metrics.Metrics) *Handler {
	return &Handler{
		engine:    engine,
		cache:     answerCache,
		collector: collector,
		metrics:   m,
		logger:    slog.Default().With("component", "qa-handler"),
	}
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	question := r.URL.Query().Get("q")
	if question == "" {
		h.writeError(w, apperrors.New(apperrors.ErrEmptyQuestion, http.StatusBadRequest, "query parameter 'q' is required"))
		return
	}

	var entry *cache.Entry
	cacheHit := false
	if h.cache != nil {
		var err error
		entry, cacheHit, err = h.cache.GetOrCompute(ctx, question, func() (*cache.Entry, error) {
			return h.answerEntry(ctx, question), nil
		})
		if err != nil {
			// GetOrCompute only fails when computeFn does, and ours cannot.
			log.Error("answer computation failed", "question", question, "error", err)
			h.writeError(w, fmt.Errorf("%w: answering failed", apperrors.ErrInternal))
			return
		}
	} else {
		entry = h.answerEntry(ctx, question)
	}

	latency := time.Since(start)
	latencyMs := latency.Milliseconds()

	log.Info("question answered",
		"question", question,
		"question_type", entry.QuestionType,
		"found", entry.Found,
		"cache_hit", cacheHit,
		"latency_ms", latencyMs,
	)
	if h.metrics != nil {
		cacheStatus := "miss"
		if cacheHit {
			cacheStatus = "hit"
		}
		h.metrics.AnswerLatency.WithLabelValues(cacheStatus).Observe(latency.Seconds())
		if cacheHit {
			h.metrics.CacheHitsTotal.Inc()
		} else {
			h.metrics.CacheMissesTotal.Inc()
		}
	}
	if h.collector != nil {
		eventType := analytics.EventCacheMiss
		if cacheHit {
			eventType = analytics.EventCacheHit
		}
		outcome := entry.Outcome
		if outcome == "" {
			// Entries cached before the outcome field existed.
			outcome = "no_match"
			if entry.Found {
				outcome = "answered"
			}
		}
		h.collector.Track(analytics.QuestionEvent{
			Type:         eventType,
			Question:     question,
			QuestionType: entry.QuestionType,
			Outcome:      outcome,
			AnswerLength: len(entry.Answer),
			LatencyMs:    latencyMs,
			CacheHit:     cacheHit,
			Timestamp:    time.Now().UTC(),
			RequestID:    middleware.GetRequestID(ctx),
		})
	}

	h.writeJSON(w, http.StatusOK, AskResponse{
		Question:     question,
		Answer:       entry.Answer,
		QuestionType: entry.QuestionType,
		Found:        entry.Found,
	})
}

// answerEntry runs the engine and records per-type outcome metrics. The
// cache entry keeps Found so a cached not-found still reports correctly.
func (h *Handler) answerEntry(ctx context.Context, question string) *cache.Entry {
	result := h.engine.Answer(ctx, question)
	if h.metrics != nil {
		h.metrics.QuestionsTotal.WithLabelValues(result.Type.String(), result.Outcome.String()).Inc()
	}
	return &cache.Entry{
		Answer:       result.Answer,
		QuestionType: result.Type.String(),
		Found:        result.Outcome == qa.OutcomeAnswered,
		Outcome:      result.Outcome.String(),
	}
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	start := time.Now()

	if err := h.engine.Rebuild(ctx); err != nil {
		log.Error("index rebuild failed", "error", err)
		if h.collector != nil {
			h.collector.Track(analytics.RebuildEvent{
				Type:       analytics.EventRebuild,
				Status:     "error",
				DurationMs: time.Since(start).Milliseconds(),
				Timestamp:  time.Now().UTC(),
			})
		}
		h.writeError(w, apperrors.New(apperrors.ErrIndexUnavailable, http.StatusServiceUnavailable, "index rebuild failed"))
		return
	}
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			log.Error("cache invalidation after rebuild failed", "error", err)
		}
	}
	if h.collector != nil {
		h.collector.Track(analytics.RebuildEvent{
			Type:       analytics.EventRebuild,
			Messages:   h.engine.CorpusSize(),
			Status:     "ok",
			DurationMs: time.Since(start).Milliseconds(),
			Timestamp:  time.Now().UTC(),
		})
	}
	log.Info("index rebuilt", "messages", h.engine.CorpusSize())
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "refreshed",
		"messages": h.engine.CorpusSize(),
	})
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, apperrors.New(apperrors.ErrInternal, http.StatusServiceUnavailable, "caching is disabled"))
		return
	}

	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, fmt.Errorf("%w: cache invalidation failed", apperrors.ErrInternal))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// writeError maps the error to its HTTP status. AppErrors respond with
// their message; bare sentinels respond with their error text.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	h.writeJSON(w, apperrors.HTTPStatusCode(err), map[string]string{"error": message})
}
