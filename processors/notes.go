package processors

import (
	"fmt"
	"strings"
)

const (
	minNotesWords   = 80
	notesWordBudget = 1800

	// NotesUnavailable is the fixed soft result for too-short transcripts.
	NotesUnavailable = "Not enough content to generate notes."
	// NotesFailurePrefix marks an LLM failure surfaced as a string; callers
	// must not parse such a result as notes content.
	NotesFailurePrefix = "Notes generation failed: "
)

// NotesGenerator turns a transcript excerpt into Markdown study notes.
type NotesGenerator struct {
	llm TextCompleter
}

func NewNotesGenerator(llm TextCompleter) *NotesGenerator {
	return &NotesGenerator{llm: llm}
}

// Generate produces notes for transcript. mode selects the framing of the
// prompt ("watched" covers only what the student has seen, anything else
// covers the whole lecture); the output schema does not change with mode.
// Failures come back as a NotesFailurePrefix string, never an error.
func (g *NotesGenerator) Generate(transcript, title, mode string) string {
	words := strings.Fields(transcript)
	if len(words) < minNotesWords {
		return NotesUnavailable
	}

	// Keep the prompt inside the model's context budget.
	if len(words) > notesWordBudget {
		words = words[:notesWordBudget]
	}
	transcript = strings.Join(words, " ")

	scope := "the COMPLETE lecture content"
	if mode == "watched" {
		scope = "ONLY what the student has watched so far"
	}

	prompt := fmt.Sprintf(`You are a university professor creating EXAM-ORIENTED STUDY NOTES.

Rules:
- Simple English
- Beginner friendly
- Structured
- Easy to revise

Cover %s.

FORMAT STRICTLY IN MARKDOWN:

# %s

## What You Will Learn
- 3 to 5 clear learning points

## Concept Explanation
Explain the topic in simple language (5-6 lines).

## Important Terms
- **Term** - simple meaning

## Key Takeaways
- 3 short bullet points

LECTURE CONTENT:
%s`, scope, title, transcript)

	notes, err := g.llm.Complete(prompt, 0.5, 800)
	if err != nil {
		return NotesFailurePrefix + err.Error()
	}

	return notes
}
