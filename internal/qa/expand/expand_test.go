package expand

import (
	"reflect"
	"testing"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		topIDs    []int
		corpusLen int
		window    int
		want      []int
	}{
		{
			name:      "middle of corpus",
			topIDs:    []int{5},
			corpusLen: 10,
			window:    2,
			want:      []int{3, 4, 5, 6, 7},
		},
		{
			name:      "clamped at start",
			topIDs:    []int{0},
			corpusLen: 10,
			window:    2,
			want:      []int{0, 1, 2},
		},
		{
			name:      "clamped at end",
			topIDs:    []int{9},
			corpusLen: 10,
			window:    2,
			want:      []int{7, 8, 9},
		},
		{
			name:      "zero window keeps only the hits",
			topIDs:    []int{4, 1},
			corpusLen: 10,
			window:    0,
			want:      []int{4, 1},
		},
		{
			name:      "overlapping windows dedup in first-emission order",
			topIDs:    []int{3, 4},
			corpusLen: 10,
			window:    2,
			want:      []int{1, 2, 3, 4, 5, 6},
		},
		{
			name:      "empty corpus",
			topIDs:    []int{0},
			corpusLen: 0,
			window:    2,
			want:      nil,
		},
		{
			name:      "no hits",
			topIDs:    nil,
			corpusLen: 10,
			window:    2,
			want:      []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(tt.topIDs, tt.corpusLen, tt.window)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Window(%v, %d, %d) = %v, want %v",
					tt.topIDs, tt.corpusLen, tt.window, got, tt.want)
			}
		})
	}
}

func TestWindowContainsHitAndStaysInBounds(t *testing.T) {
	for window := 0; window <= 4; window++ {
		got := Window([]int{0, 3, 7}, 8, window)
		seen := make(map[int]bool, len(got))
		for _, idx := range got {
			if idx < 0 || idx >= 8 {
				t.Fatalf("window=%d: index %d out of bounds", window, idx)
			}
			if seen[idx] {
				t.Fatalf("window=%d: duplicate index %d", window, idx)
			}
			seen[idx] = true
		}
		for _, hit := range []int{0, 3, 7} {
			if !seen[hit] {
				t.Errorf("window=%d: original hit %d missing from expansion", window, hit)
			}
		}
	}
}
