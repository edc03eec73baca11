package processors

import (
	"strings"
	"testing"
)

const chatTranscript = "today we will study binary search trees and their balancing " +
	"properties including rotations insertions deletions and traversal orders " +
	"which matter for keeping lookup cost logarithmic in the number of stored keys " +
	"we also compare them against hash tables and sorted arrays for range queries"

func TestEnforceTranscriptScopeShortAnswer(t *testing.T) {
	if got := EnforceTranscriptScope("nope!", chatTranscript); got != NotCoveredAnswer {
		t.Errorf("Expected canonical not-covered sentence for short answer, got %q", got)
	}
}

func TestEnforceTranscriptScopeNormalizesRefusals(t *testing.T) {
	answer := "Unfortunately this is not mentioned in the transcript you provided."
	if got := EnforceTranscriptScope(answer, chatTranscript); got != NotCoveredAnswer {
		t.Errorf("Expected refusal normalized to canonical sentence, got %q", got)
	}
}

func TestEnforceTranscriptScopeHallucinationMarkers(t *testing.T) {
	answer := "Research shows that binary search trees and their balancing rotations are useful."
	if got := EnforceTranscriptScope(answer, chatTranscript); got != NotCoveredAnswer {
		t.Errorf("Expected hallucination marker rejection, got %q", got)
	}
}

func TestEnforceTranscriptScopeRunawayLength(t *testing.T) {
	answer := strings.Repeat("trees rotations balancing lookup ", 80) // > 250 words
	if got := EnforceTranscriptScope(answer, chatTranscript); got != NotCoveredAnswer {
		t.Errorf("Expected runaway-length rejection, got %q", got)
	}
}

func TestEnforceTranscriptScopeLowOverlapRejected(t *testing.T) {
	// Long answer sharing almost no vocabulary with the transcript.
	answer := strings.Repeat("cooking pasta requires salted boiling water and patience always ", 5)
	if got := EnforceTranscriptScope(answer, chatTranscript); got != NotCoveredAnswer {
		t.Errorf("Expected low-overlap rejection, got %q", got)
	}
}

func TestEnforceTranscriptScopeGroundedAnswerPasses(t *testing.T) {
	answer := "The lecture explains that binary search trees keep lookup cost logarithmic " +
		"through balancing rotations applied on insertions and deletions."
	if got := EnforceTranscriptScope(answer, chatTranscript); got != answer {
		t.Errorf("Expected grounded answer to pass unmodified, got %q", got)
	}
}

func TestAnswerInputValidation(t *testing.T) {
	answerer := NewChatAnswerer(&fakeCompleter{responses: []string{"irrelevant"}})

	if got := answerer.Answer("", "what is this?"); got != PromptToLoad {
		t.Errorf("Expected prompt-to-load message, got %q", got)
	}
	if got := answerer.Answer(chatTranscript, ""); got != PromptToLoad {
		t.Errorf("Expected prompt-to-load message, got %q", got)
	}
	if got := answerer.Answer("too few words here", "question?"); got != TranscriptTooShort {
		t.Errorf("Expected too-short message, got %q", got)
	}
}

func TestAnswerRoutesSummaryIntent(t *testing.T) {
	llm := &fakeCompleter{responses: []string{
		"- The lecture covers binary search trees\n- Balancing rotations keep lookup logarithmic\n- Hash tables are compared for range queries",
	}}
	answerer := NewChatAnswerer(llm)

	got := answerer.Answer(chatTranscript, "Can you summarize the key points?")
	if got == NotCoveredAnswer {
		t.Errorf("Expected summary answer to pass the filter, got %q", got)
	}
	if len(llm.prompts) != 1 || !strings.Contains(llm.prompts[0], "SUMMARY (5-7 bullet points") {
		t.Error("Expected the summary-style prompt for a summary question")
	}
}

func TestAnswerRoutesQAIntent(t *testing.T) {
	llm := &fakeCompleter{responses: []string{
		"The transcript says balancing rotations keep lookup cost logarithmic.",
	}}
	answerer := NewChatAnswerer(llm)

	got := answerer.Answer(chatTranscript, "Why do rotations matter?")
	if got == NotCoveredAnswer {
		t.Errorf("Expected grounded QA answer to pass, got %q", got)
	}
	if len(llm.prompts) != 1 || !strings.Contains(llm.prompts[0], "strict academic tutor") {
		t.Error("Expected the QA-style prompt for a direct question")
	}
}

func TestAnswerLLMFailure(t *testing.T) {
	answerer := NewChatAnswerer(&fakeCompleter{err: errFake})
	if got := answerer.Answer(chatTranscript, "Why do rotations matter?"); got != ChatErrorAnswer {
		t.Errorf("Expected canned error answer, got %q", got)
	}
}
