package nlu

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"hilsa", "hilsa", 1, 1},
		{"", "", 1, 1},
		{"hilsa", "", 0, 0},
		{"", "monsoon", 0, 0},
		{"hilsha", "hilsa", 0.90, 0.92}, // common "hils" + "a"
		{"abc", "xyz", 0, 0},
		{"monsoon", "monsun", 0.76, 0.78}, // common "mons" + "n"
	}
	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if got < tt.min || got > tt.max {
			t.Errorf("Similarity(%q, %q) = %v, want in [%v, %v]", tt.a, tt.b, got, tt.min, tt.max)
		}
	}
}

func TestSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"hilsa", "catfish"}, {"when", "clean"}, {"net", "tide"}, {"a", "b"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0, 1]", p[0], p[1], got)
		}
	}
}
