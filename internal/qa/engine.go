// Package qa wires the retrieval-and-answer pipeline together: lexical
// ranking, context expansion, entity filtering, and per-type answer
// synthesis over one shared read-only corpus snapshot.
package qa

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa/answer"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa/entity"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa/expand"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa/filter"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa/index"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/metrics"
)

// NotFoundAnswer is the fixed sentinel returned when no structural match is
// located, and when the pipeline is degraded. The serving surface never
// distinguishes the two; Outcome exists so logs and metrics can.
const NotFoundAnswer = "This topic or answer does not exist in the conversation."

// Outcome classifies what happened to a question internally.
type Outcome int

const (
	OutcomeAnswered Outcome = iota
	OutcomeNoMatch
	OutcomeDegraded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAnswered:
		return "answered"
	case OutcomeNoMatch:
		return "no_match"
	default:
		return "degraded"
	}
}

// Result is the full outcome of answering one question. Answer is always a
// usable string; callers that only want the serving contract can ignore the
// rest.
type Result struct {
	Answer  string
	Type    entity.QuestionType
	Outcome Outcome
}

// snapshot is the immutable (corpus, document tokens, index) triple. The
// three are always built together; positions are valid across all of them.
type snapshot struct {
	msgs      []corpus.Message
	docTokens [][]string
	index     *index.BM25
}

// Engine owns the published snapshot and answers questions against it.
// Queries are shared-nothing apart from the snapshot pointer, so any number
// of them can run concurrently with each other and with a rebuild.
type Engine struct {
	source  corpus.Source
	cfg     config.QAConfig
	metrics *metrics.Metrics
	logger  *slog.Logger

	snap    atomic.Pointer[snapshot]
	buildMu sync.Mutex
}

// NewEngine creates an Engine over the given corpus source. The metrics
// argument may be nil. No corpus is loaded until Ensure, Rebuild, or the
// first Answer call.
func NewEngine(source corpus.Source, cfg config.QAConfig, m *metrics.Metrics) *Engine {
	if cfg.TopK <= 0 {
		cfg.TopK = 20
	}
	if cfg.ContextWindow < 0 {
		cfg.ContextWindow = 2
	}
	if cfg.LocationFilterMin <= 0 {
		cfg.LocationFilterMin = 5
	}
	return &Engine{
		source:  source,
		cfg:     cfg,
		metrics: m,
		logger:  slog.Default().With("component", "qa-engine"),
	}
}

// Ready reports whether a snapshot has been published.
func (e *Engine) Ready() bool {
	return e.snap.Load() != nil
}

// CorpusSize returns the number of messages in the published snapshot.
func (e *Engine) CorpusSize() int {
	if snap := e.snap.Load(); snap != nil {
		return len(snap.msgs)
	}
	return 0
}

// Ensure builds and publishes the snapshot if none exists yet. Concurrent
// callers serialise on the build; readers never observe a partial triple.
func (e *Engine) Ensure(ctx context.Context) error {
	if e.snap.Load() != nil {
		return nil
	}
	e.buildMu.Lock()
	defer e.buildMu.Unlock()
	if e.snap.Load() != nil {
		return nil
	}
	return e.rebuildLocked(ctx)
}

// Rebuild re-acquires the corpus and atomically replaces the whole
// snapshot. In-flight queries keep the triple they already loaded.
func (e *Engine) Rebuild(ctx context.Context) error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()
	return e.rebuildLocked(ctx)
}

func (e *Engine) rebuildLocked(ctx context.Context) error {
	start := time.Now()
	msgs, err := e.source.Messages(ctx)
	if err != nil {
		if e.metrics != nil {
			e.metrics.IndexRebuildsTotal.WithLabelValues("error").Inc()
		}
		return fmt.Errorf("acquiring corpus: %w", err)
	}

	docTokens := make([][]string, len(msgs))
	for i, m := range msgs {
		docTokens[i] = tokenizer.Tokenize(m.Document())
	}
	snap := &snapshot{
		msgs:      msgs,
		docTokens: docTokens,
		index:     index.Build(docTokens),
	}
	e.snap.Store(snap)

	elapsed := time.Since(start)
	if e.metrics != nil {
		e.metrics.IndexRebuildsTotal.WithLabelValues("ok").Inc()
		e.metrics.IndexBuildDuration.Observe(elapsed.Seconds())
		e.metrics.CorpusSize.Set(float64(len(msgs)))
	}
	e.logger.Info("index built", "messages", len(msgs), "duration", elapsed)
	return nil
}

// Answer runs the full pipeline for one question. It is total: every
// failure mode degrades to the sentinel rather than surfacing an error.
func (e *Engine) Answer(ctx context.Context, question string) Result {
	res := Result{
		Answer:  NotFoundAnswer,
		Type:    entity.Classify(question),
		Outcome: OutcomeDegraded,
	}

	if err := e.Ensure(ctx); err != nil {
		e.logger.Error("index unavailable", "error", err)
		return res
	}
	snap := e.snap.Load()

	qTokens := tokenizer.Tokenize(question)
	if len(qTokens) == 0 {
		res.Outcome = OutcomeNoMatch
		return res
	}

	scores := snap.index.Scores(qTokens)
	topIDs := index.TopK(scores, e.cfg.TopK)
	cands := expand.Window(topIDs, len(snap.msgs), e.cfg.ContextWindow)
	if len(cands) == 0 {
		res.Outcome = OutcomeNoMatch
		return res
	}

	persons := entity.Persons(question)
	locations := entity.Locations(question)
	cands = filter.Candidates(cands, snap.msgs, persons, locations, e.cfg.LocationFilterMin)
	if e.metrics != nil {
		e.metrics.CandidateCount.Observe(float64(len(cands)))
	}

	text, found := answer.Synthesize(answer.Request{
		Question:   question,
		Type:       res.Type,
		Persons:    persons,
		Locations:  locations,
		Candidates: cands,
		TopIDs:     topIDs,
		Messages:   snap.msgs,
	})
	if !found {
		res.Outcome = OutcomeNoMatch
		return res
	}
	res.Answer = text
	res.Outcome = OutcomeAnswered
	return res
}
