package analytics

import "time"

type EventType string

const (
	EventQuestion  EventType = "question"
	EventCacheHit  EventType = "cache_hit"
	EventCacheMiss EventType = "cache_miss"
	EventRebuild   EventType = "index_rebuild"
)

// QuestionEvent is emitted for every answered question.
type QuestionEvent struct {
	Type         EventType `json:"type"`
	Question     string    `json:"question"`
	QuestionType string    `json:"question_type"`
	Outcome      string    `json:"outcome"`
	AnswerLength int       `json:"answer_length"`
	LatencyMs    int64     `json:"latency_ms"`
	CacheHit     bool      `json:"cache_hit"`
	Timestamp    time.Time `json:"timestamp"`
	RequestID    string    `json:"request_id"`
}

// RebuildEvent is emitted when the corpus index is rebuilt.
type RebuildEvent struct {
	Type       EventType `json:"type"`
	Messages   int       `json:"messages"`
	DurationMs int64     `json:"duration_ms"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}
