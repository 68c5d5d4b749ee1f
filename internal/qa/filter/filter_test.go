package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/corpus"
)

func msgsFromPairs(pairs ...[2]string) []corpus.Message {
	out := make([]corpus.Message, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, corpus.Message{Speaker: p[0], Text: p[1], Timestamp: time.Now()})
	}
	return out
}

func TestCandidatesPersonFilter(t *testing.T) {
	msgs := msgsFromPairs(
		[2]string{"Alice", "see you at noon"},
		[2]string{"Bob", "works for me"},
		[2]string{"Alice Cooper", "bringing the slides"},
		[2]string{"Carol", "running late"},
	)

	got := Candidates([]int{0, 1, 2, 3}, msgs, []string{"Alice"}, nil, 5)
	want := []int{0, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("person filter = %v, want %v", got, want)
	}
}

func TestCandidatesPersonFilterCaseInsensitive(t *testing.T) {
	msgs := msgsFromPairs(
		[2]string{"alice", "hello"},
		[2]string{"Bob", "hi"},
	)

	got := Candidates([]int{0, 1}, msgs, []string{"Alice"}, nil, 5)
	want := []int{0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCandidatesPersonFilterNeverEmpties(t *testing.T) {
	msgs := msgsFromPairs(
		[2]string{"Bob", "hello"},
		[2]string{"Carol", "hi"},
	)

	got := Candidates([]int{0, 1}, msgs, []string{"Zed"}, nil, 5)
	want := []int{0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("empty person match should keep original set, got %v", got)
	}
}

func TestCandidatesLocationGate(t *testing.T) {
	msgs := msgsFromPairs(
		[2]string{"Alice", "flying to Paris"},
		[2]string{"Bob", "staying home"},
		[2]string{"Carol", "me too"},
		[2]string{"Dave", "safe travels"},
		[2]string{"Eve", "Paris again?"},
		[2]string{"Frank", "every year"},
	)

	// Six candidates, above the gate: location filter applies.
	got := Candidates([]int{0, 1, 2, 3, 4, 5}, msgs, nil, []string{"Paris"}, 5)
	want := []int{0, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("above gate = %v, want %v", got, want)
	}

	// Five candidates, at the gate: filter must not run.
	got = Candidates([]int{0, 1, 2, 3, 4}, msgs, nil, []string{"Paris"}, 5)
	want = []int{0, 1, 2, 3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("at gate = %v, want %v", got, want)
	}
}

func TestCandidatesLocationAfterPerson(t *testing.T) {
	msgs := msgsFromPairs(
		[2]string{"Alice", "flying to Paris"},
		[2]string{"Alice", "back Tuesday"},
		[2]string{"Alice", "then London"},
		[2]string{"Alice", "long trip"},
		[2]string{"Alice", "Paris first though"},
		[2]string{"Alice", "wish me luck"},
		[2]string{"Bob", "noted"},
	)

	// Person filter keeps 0-5 (six left, above the gate), then location
	// narrows within that survivor set.
	got := Candidates([]int{0, 1, 2, 3, 4, 5, 6}, msgs, []string{"Alice"}, []string{"Paris"}, 5)
	want := []int{0, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("chained filters = %v, want %v", got, want)
	}
}

func TestCandidatesNoEntities(t *testing.T) {
	msgs := msgsFromPairs(
		[2]string{"Alice", "hello"},
		[2]string{"Bob", "hi"},
	)

	in := []int{1, 0}
	got := Candidates(in, msgs, nil, nil, 5)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("no entities should pass through unchanged, got %v", got)
	}
}
