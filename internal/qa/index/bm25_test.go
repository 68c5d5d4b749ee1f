package index

import (
	"reflect"
	"testing"
)

func buildTestIndex() *BM25 {
	return Build([][]string{
		{"alice", "meeting", "in", "paris", "on", "monday"},
		{"bob", "because", "the", "venue", "changed"},
		{"carol", "booking", "flights", "to", "tokyo"},
	})
}

func TestScoresRewardMatchingTerms(t *testing.T) {
	idx := buildTestIndex()
	scores := idx.Scores([]string{"paris"})

	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if scores[0] <= 0 {
		t.Errorf("document containing the term should score positive, got %f", scores[0])
	}
	if scores[1] != 0 || scores[2] != 0 {
		t.Errorf("documents without the term should score zero, got %f and %f", scores[1], scores[2])
	}
}

func TestScoresUnknownTerm(t *testing.T) {
	idx := buildTestIndex()
	scores := idx.Scores([]string{"zanzibar"})
	for i, s := range scores {
		if s != 0 {
			t.Errorf("doc %d: expected zero score for unknown term, got %f", i, s)
		}
	}
}

func TestScoresAreDeterministic(t *testing.T) {
	idx := buildTestIndex()
	query := []string{"venue", "paris", "tokyo"}
	first := idx.Scores(query)
	second := idx.Scores(query)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("scoring is not deterministic: %v vs %v", first, second)
	}
}

func TestEmptyCorpus(t *testing.T) {
	idx := Build(nil)
	if idx.DocCount() != 0 {
		t.Fatalf("expected zero docs, got %d", idx.DocCount())
	}
	scores := idx.Scores([]string{"anything"})
	if len(scores) != 0 {
		t.Errorf("expected no scores for empty corpus, got %v", scores)
	}
	if got := TopK(scores, 20); len(got) != 0 {
		t.Errorf("expected no top hits for empty corpus, got %v", got)
	}
}

func TestTopKOrdering(t *testing.T) {
	scores := []float64{0.5, 2.0, 1.0, 2.0}
	got := TopK(scores, 3)
	// Equal scores break ties toward the lower document position.
	want := []int{1, 3, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopK = %v, want %v", got, want)
	}
}

func TestTopKAllZeroScores(t *testing.T) {
	scores := []float64{0, 0, 0, 0}
	got := TopK(scores, 2)
	want := []int{0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopK = %v, want %v", got, want)
	}
}

func TestTopKLimitLargerThanCorpus(t *testing.T) {
	scores := []float64{1.0, 0.5}
	got := TopK(scores, 20)
	want := []int{0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopK = %v, want %v", got, want)
	}
}

func TestLengthNormalization(t *testing.T) {
	// Same term frequency; the shorter document should score higher.
	idx := Build([][]string{
		{"venue", "a", "b", "c", "d", "e", "f", "g", "h", "i"},
		{"venue", "a"},
	})
	scores := idx.Scores([]string{"venue"})
	if scores[1] <= scores[0] {
		t.Errorf("shorter document should outscore longer one: %f vs %f", scores[1], scores[0])
	}
}
