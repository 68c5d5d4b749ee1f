package qa

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/config"
)

// stubSource serves a fixed message slice, optionally failing first.
type stubSource struct {
	msgs  []corpus.Message
	err   error
	calls int
}

func (s *stubSource) Messages(_ context.Context) ([]corpus.Message, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.msgs, nil
}

func planningCorpus() []corpus.Message {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []corpus.Message{
		{Speaker: "Alice", Text: "Meeting in Paris on Monday", Timestamp: base},
		{Speaker: "Bob", Text: "because the venue changed", Timestamp: base.Add(time.Minute)},
	}
}

func newTestEngine(msgs []corpus.Message) *Engine {
	return NewEngine(&stubSource{msgs: msgs}, config.QAConfig{
		TopK:              20,
		ContextWindow:     2,
		LocationFilterMin: 5,
	}, nil)
}

func TestEngineAnswerPipeline(t *testing.T) {
	e := newTestEngine(planningCorpus())
	ctx := context.Background()

	tests := []struct {
		question string
		want     string
		qtype    string
	}{
		{"Why was the venue changed?", "because the venue changed", "WHY"},
		{"Where is the meeting?", "Paris", "WHERE"},
		{"Who is going to Paris?", "Alice", "WHO"},
		{"When is the meeting?", "Meeting in Paris on Monday", "WHEN"},
	}
	for _, tt := range tests {
		t.Run(tt.qtype, func(t *testing.T) {
			res := e.Answer(ctx, tt.question)
			assert.Equal(t, tt.want, res.Answer)
			assert.Equal(t, tt.qtype, res.Type.String())
			assert.Equal(t, OutcomeAnswered, res.Outcome)
		})
	}
}

func TestEngineAnswerDeterministic(t *testing.T) {
	e := newTestEngine(planningCorpus())
	ctx := context.Background()

	first := e.Answer(ctx, "Where is the meeting?")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Answer(ctx, "Where is the meeting?"))
	}
}

func TestEngineAnswerEmptyQuestion(t *testing.T) {
	e := newTestEngine(planningCorpus())

	for _, q := range []string{"", "   ", "?!."} {
		res := e.Answer(context.Background(), q)
		assert.Equal(t, NotFoundAnswer, res.Answer, "question %q", q)
		assert.Equal(t, OutcomeNoMatch, res.Outcome)
	}
}

func TestEngineAnswerEmptyCorpus(t *testing.T) {
	e := newTestEngine(nil)

	res := e.Answer(context.Background(), "Where is the meeting?")
	assert.Equal(t, NotFoundAnswer, res.Answer)
	assert.Equal(t, OutcomeNoMatch, res.Outcome)
}

func TestEngineDegradedOnSourceError(t *testing.T) {
	src := &stubSource{err: errors.New("upstream down")}
	e := NewEngine(src, config.QAConfig{}, nil)

	res := e.Answer(context.Background(), "Who is going?")
	assert.Equal(t, NotFoundAnswer, res.Answer)
	assert.Equal(t, OutcomeDegraded, res.Outcome)
	assert.False(t, e.Ready())

	// Once the source recovers, the next question lazily builds the index.
	src.err = nil
	src.msgs = planningCorpus()
	res = e.Answer(context.Background(), "Who is going to Paris?")
	assert.Equal(t, "Alice", res.Answer)
	assert.True(t, e.Ready())
}

func TestEngineEnsureBuildsOnce(t *testing.T) {
	src := &stubSource{msgs: planningCorpus()}
	e := NewEngine(src, config.QAConfig{}, nil)
	ctx := context.Background()

	require.NoError(t, e.Ensure(ctx))
	require.NoError(t, e.Ensure(ctx))
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, 2, e.CorpusSize())
}

func TestEngineRebuildReplacesSnapshot(t *testing.T) {
	src := &stubSource{msgs: planningCorpus()}
	e := NewEngine(src, config.QAConfig{}, nil)
	ctx := context.Background()

	require.NoError(t, e.Ensure(ctx))
	assert.Equal(t, "Alice", e.Answer(ctx, "Who is going to Paris?").Answer)

	src.msgs = []corpus.Message{
		{Speaker: "Carol", Text: "Paris is off, we meet in Lyon", Timestamp: time.Now()},
	}
	require.NoError(t, e.Rebuild(ctx))
	assert.Equal(t, 1, e.CorpusSize())
	assert.Equal(t, "Carol", e.Answer(ctx, "Who is going to Paris?").Answer)
}

func TestEngineRebuildFailureKeepsOldSnapshot(t *testing.T) {
	src := &stubSource{msgs: planningCorpus()}
	e := NewEngine(src, config.QAConfig{}, nil)
	ctx := context.Background()

	require.NoError(t, e.Ensure(ctx))
	src.err = errors.New("upstream down")
	require.Error(t, e.Rebuild(ctx))

	// Old snapshot keeps serving.
	assert.Equal(t, 2, e.CorpusSize())
	assert.Equal(t, "Alice", e.Answer(ctx, "Who is going to Paris?").Answer)
}
