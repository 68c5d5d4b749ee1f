package analytics

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/kafka"
)

// AggregatedStats is the rolled-up view of question traffic served by the
// analytics endpoint.
type AggregatedStats struct {
	TotalQuestions     int64            `json:"total_questions"`
	TotalRebuilds      int64            `json:"total_rebuilds"`
	CacheHits          int64            `json:"cache_hits"`
	CacheMisses        int64            `json:"cache_misses"`
	NotFoundCount      int64            `json:"not_found_count"`
	DegradedCount      int64            `json:"degraded_count"`
	ByQuestionType     map[string]int64 `json:"by_question_type"`
	AvgLatencyMs       float64          `json:"avg_latency_ms"`
	P50LatencyMs       int64            `json:"p50_latency_ms"`
	P95LatencyMs       int64            `json:"p95_latency_ms"`
	P99LatencyMs       int64            `json:"p99_latency_ms"`
	TopQuestions       []QuestionCount  `json:"top_questions"`
	NotFoundQuestions  []QuestionCount  `json:"not_found_questions"`
	QuestionsPerMinute float64          `json:"questions_per_minute"`
}

type QuestionCount struct {
	Question string `json:"question"`
	Count    int64  `json:"count"`
}

// Aggregator consumes question events from Kafka and keeps rolling counts,
// latency percentiles, and the most frequent (and most frequently
// unanswerable) questions.
type Aggregator struct {
	mu                sync.RWMutex
	totalQuestions    atomic.Int64
	totalRebuilds     atomic.Int64
	cacheHits         atomic.Int64
	cacheMisses       atomic.Int64
	notFound          atomic.Int64
	degraded          atomic.Int64
	latencies         []int64
	questionCounts    map[string]int64
	notFoundQuestions map[string]int64
	typeCounts        map[string]int64
	startTime         time.Time

	consumer *kafka.Consumer
	logger   *slog.Logger
}

func NewAggregator(consumer *kafka.Consumer) *Aggregator {
	return &Aggregator{
		latencies:         make([]int64, 0, 10000),
		questionCounts:    make(map[string]int64),
		notFoundQuestions: make(map[string]int64),
		typeCounts:        make(map[string]int64),
		startTime:         time.Now(),
		consumer:          consumer,
		logger:            slog.Default().With("component", "analytics-aggregator"),
	}
}

// SetConsumer attaches the Kafka consumer feeding this aggregator. The
// consumer's handler needs the aggregator, so construction happens in two
// steps.
func (a *Aggregator) SetConsumer(consumer *kafka.Consumer) {
	a.consumer = consumer
}

func (a *Aggregator) Start(ctx context.Context) error {
	if a.consumer == nil {
		return nil
	}
	a.logger.Info("analytics aggregator starting")
	return a.consumer.Start(ctx)
}

// HandleEvent returns the Kafka message handler that feeds the aggregator.
func HandleEvent(agg *Aggregator) kafka.MessageHandler {
	return func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[QuestionEvent](value)
		if err == nil && event.Type != EventRebuild && event.Question != "" {
			agg.recordQuestionEvent(event)
			return nil
		}
		rebuild, rbErr := kafka.DecodeJSON[RebuildEvent](value)
		if rbErr != nil || rebuild.Type != EventRebuild {
			agg.logger.Error("failed to decode analytics event", "error", err)
			return nil
		}
		agg.recordRebuildEvent(rebuild)
		return nil
	}
}

func (a *Aggregator) recordQuestionEvent(event QuestionEvent) {
	a.totalQuestions.Add(1)

	if event.CacheHit {
		a.cacheHits.Add(1)
	} else {
		a.cacheMisses.Add(1)
	}
	switch event.Outcome {
	case "no_match":
		a.notFound.Add(1)
	case "degraded":
		a.degraded.Add(1)
	}

	a.mu.Lock()
	a.latencies = append(a.latencies, event.LatencyMs)
	a.questionCounts[event.Question]++
	a.typeCounts[event.QuestionType]++
	if event.Outcome == "no_match" {
		a.notFoundQuestions[event.Question]++
	}
	a.mu.Unlock()
}

func (a *Aggregator) recordRebuildEvent(event RebuildEvent) {
	a.totalRebuilds.Add(1)
}

func (a *Aggregator) Stats() AggregatedStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := AggregatedStats{
		TotalQuestions: a.totalQuestions.Load(),
		TotalRebuilds:  a.totalRebuilds.Load(),
		CacheHits:      a.cacheHits.Load(),
		CacheMisses:    a.cacheMisses.Load(),
		NotFoundCount:  a.notFound.Load(),
		DegradedCount:  a.degraded.Load(),
		ByQuestionType: make(map[string]int64, len(a.typeCounts)),
	}
	for qtype, count := range a.typeCounts {
		stats.ByQuestionType[qtype] = count
	}
	if len(a.latencies) > 0 {
		sorted := make([]int64, len(a.latencies))
		copy(sorted, a.latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum int64
		for _, l := range sorted {
			sum += l
		}
		stats.AvgLatencyMs = float64(sum) / float64(len(sorted))
		stats.P50LatencyMs = percentile(sorted, 50)
		stats.P95LatencyMs = percentile(sorted, 95)
		stats.P99LatencyMs = percentile(sorted, 99)
	}
	stats.TopQuestions = topN(a.questionCounts, 10)
	stats.NotFoundQuestions = topN(a.notFoundQuestions, 10)
	elapsed := time.Since(a.startTime).Minutes()
	if elapsed > 0 {
		stats.QuestionsPerMinute = float64(stats.TotalQuestions) / elapsed
	}

	return stats
}

func percentile(sorted []int64, pct int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (pct * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func topN(counts map[string]int64, n int) []QuestionCount {
	result := make([]QuestionCount, 0, len(counts))
	for question, count := range counts {
		result = append(result, QuestionCount{Question: question, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}
