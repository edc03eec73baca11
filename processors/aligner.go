package processors

import (
	"regexp"
	"strings"

	"lectureAssist/core"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// collapseWhitespace flattens newlines and repeated spaces into single
// spaces and trims the ends.
func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// BuildTimeline reconciles the speech engine's segments with the caption
// provider's cues into one ordered timeline.
//
// With caption cues present, each cue keeps its own start/end (the caption
// source has the more precise timing) and collects the text of every speech
// segment whose interval overlaps it (the speech engine has the better
// wording). A cue no speech segment overlaps falls back to its own caption
// text. Without cues, the speech segments pass through with their native
// timing. Empty-text segments never reach the timeline.
func BuildTimeline(speech *core.TranscriptionResult, cues []core.CaptionCue) ([]core.Segment, string) {
	if len(cues) == 0 {
		return speechOnlyTimeline(speech.Segments), core.SourceSpeechOnly
	}
	return alignToCaptions(speech.Segments, cues), core.SourceHybrid
}

func speechOnlyTimeline(segments []core.Segment) []core.Segment {
	timeline := make([]core.Segment, 0, len(segments))
	for _, seg := range segments {
		text := collapseWhitespace(seg.Text)
		if text == "" {
			continue
		}
		timeline = append(timeline, core.Segment{
			Start: round2(seg.Start),
			End:   round2(seg.End),
			Text:  text,
		})
	}
	return timeline
}

func alignToCaptions(segments []core.Segment, cues []core.CaptionCue) []core.Segment {
	timeline := make([]core.Segment, 0, len(cues))

	for _, cue := range cues {
		matching := make([]string, 0, 2)
		for _, seg := range segments {
			// Interval overlap test; touching endpoints count.
			if seg.Start <= cue.End && seg.End >= cue.Start {
				matching = append(matching, strings.TrimSpace(seg.Text))
			}
		}

		combined := cue.Text
		if len(matching) > 0 {
			combined = strings.Join(matching, " ")
		}
		combined = collapseWhitespace(combined)
		if combined == "" {
			continue
		}

		timeline = append(timeline, core.Segment{
			Start: cue.Start,
			End:   cue.End,
			Text:  combined,
		})
	}

	return timeline
}
