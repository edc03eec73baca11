package processors

import (
	"strings"

	"lectureAssist/config"
)

// WindowSelector computes the transcript prefix a student has "seen" from
// their reported watched time. This is a fixed word-rate heuristic, not a
// lookup against the aligned timeline: it assumes an average lecture pace
// of WordsPerSecond and never cuts mid-word. An exact variant would slice
// by Segment boundaries instead.
type WindowSelector struct {
	WordsPerSecond float64
	PreviewWords   int
}

func NewWindowSelector(cfg *config.Config) WindowSelector {
	return WindowSelector{
		WordsPerSecond: cfg.WordsPerSecond,
		PreviewWords:   cfg.PreviewWords,
	}
}

// Select returns the first N words of fullText, where N is the preview cap
// when watchedSeconds is zero or negative, and floor(watchedSeconds *
// WordsPerSecond) otherwise. The result is always a word-boundary-safe
// prefix of fullText joined by single spaces.
func (s WindowSelector) Select(fullText string, watchedSeconds float64) string {
	words := strings.Fields(fullText)

	maxWords := s.PreviewWords
	if watchedSeconds > 0 {
		// Clamp in float space: the product can exceed the int range for
		// large client-supplied watched times, and converting such a value
		// yields a negative count.
		if limit := watchedSeconds * s.WordsPerSecond; limit < float64(len(words)) {
			maxWords = int(limit)
		} else {
			maxWords = len(words)
		}
	}

	if maxWords > len(words) {
		maxWords = len(words)
	}
	return strings.Join(words[:maxWords], " ")
}
