package processors

import (
	"math"
	"strings"
	"testing"
)

func testSelector() WindowSelector {
	return WindowSelector{WordsPerSecond: 2.5, PreviewWords: 900}
}

func repeatWords(word string, n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = word
	}
	return strings.Join(words, " ")
}

func TestSelectDefaultPreviewWindow(t *testing.T) {
	selector := testSelector()
	text := repeatWords("w", 2000)

	for _, watched := range []float64{0, -5} {
		got := selector.Select(text, watched)
		if n := len(strings.Fields(got)); n != 900 {
			t.Errorf("watched=%v: expected 900-word preview, got %d words", watched, n)
		}
	}
}

func TestSelectWordRateCap(t *testing.T) {
	selector := testSelector()
	text := repeatWords("w", 2000)

	cases := []struct {
		watched float64
		want    int
	}{
		{1, 2},    // floor(1 * 2.5)
		{10, 25},  // floor(10 * 2.5)
		{100, 250},
		{3.3, 8}, // floor(8.25)
	}
	for _, c := range cases {
		got := selector.Select(text, c.watched)
		if n := len(strings.Fields(got)); n != c.want {
			t.Errorf("watched=%v: expected %d words, got %d", c.watched, c.want, n)
		}
	}
}

func TestSelectIsWordPrefix(t *testing.T) {
	selector := testSelector()
	text := "alpha beta gamma delta epsilon zeta eta theta"

	got := selector.Select(text, 2) // 5 words
	want := "alpha beta gamma delta epsilon"
	if got != want {
		t.Errorf("Expected prefix %q, got %q", want, got)
	}

	// Deterministic for identical inputs.
	if again := selector.Select(text, 2); again != got {
		t.Errorf("Select is not deterministic: %q vs %q", got, again)
	}
}

func TestSelectHugeWatchedTime(t *testing.T) {
	selector := testSelector()
	text := "alpha beta gamma"

	// Watched times whose word product exceeds the int range must yield the
	// whole text, not a negative slice bound.
	for _, watched := range []float64{1e300, math.MaxFloat64} {
		if got := selector.Select(text, watched); got != text {
			t.Errorf("watched=%v: expected full text, got %q", watched, got)
		}
	}
}

func TestSelectShortAndEmptyInput(t *testing.T) {
	selector := testSelector()

	if got := selector.Select("", 100); got != "" {
		t.Errorf("Expected empty result for empty text, got %q", got)
	}
	if got := selector.Select("one two", 1000); got != "one two" {
		t.Errorf("Expected whole text when cap exceeds length, got %q", got)
	}
	if got := selector.Select("", 0); got != "" {
		t.Errorf("Expected empty preview for empty text, got %q", got)
	}
}
