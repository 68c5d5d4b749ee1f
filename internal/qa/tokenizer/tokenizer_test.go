package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple sentence",
			text: "Meeting in Paris on Monday",
			want: []string{"meeting", "in", "paris", "on", "monday"},
		},
		{
			name: "punctuation is a separator",
			text: "Who mentioned Paris?",
			want: []string{"who", "mentioned", "paris"},
		},
		{
			name: "apostrophes split words",
			text: "don't",
			want: []string{"don", "t"},
		},
		{
			name: "digits and underscores are word characters",
			text: "room_42 costs 100",
			want: []string{"room_42", "costs", "100"},
		},
		{
			name: "mixed case is folded",
			text: "LONDON London london",
			want: []string{"london", "london", "london"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "only separators",
			text: "?!... ,;",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	text := "Dinner at The Marina at 8, then drinks?"
	first := Tokenize(text)
	second := Tokenize(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Tokenize is not deterministic: %v vs %v", first, second)
	}
}
