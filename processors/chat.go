package processors

import (
	"fmt"
	"log"
	"strings"
)

// Canonical soft responses for the chat answerer.
const (
	NotCoveredAnswer   = "This topic is not covered in the lecture."
	PromptToLoad       = "Please load a lecture and ask a question."
	TranscriptTooShort = "The transcript is too short to answer questions."
	ChatErrorAnswer    = "Sorry, I encountered an error processing your question."

	minChatTranscriptWords = 30
	maxAnswerWords         = 250
)

// summaryKeywords route a question to the summary-style prompt.
var summaryKeywords = []string{
	"summarize",
	"summary",
	"brief overview",
	"explain the video",
	"what is this lecture about",
	"give overview",
	"short notes",
	"main points",
	"key points",
}

// notCoveredPhrases are the model's many ways of saying the transcript has
// no answer; all collapse to the single canonical sentence.
var notCoveredPhrases = []string{
	"not covered in the lecture",
	"not mentioned in the transcript",
	"does not contain information",
	"not discussed in this lecture",
	"transcript does not include",
	"not addressed in the transcript",
	"not explicitly stated",
	"not found in the transcript",
}

// hallucinationPhrases signal world-knowledge answers rather than
// transcript-grounded ones and cause immediate rejection.
var hallucinationPhrases = []string{
	"as we all know",
	"it is widely known",
	"in the real world",
	"in practice",
	"typically in industry",
	"best practices suggest",
	"experts recommend",
	"research shows",
	"studies indicate",
	"it is common knowledge",
	"as everyone knows",
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "this": true, "that": true,
	"these": true, "those": true,
}

func isSummaryRequest(question string) bool {
	q := strings.ToLower(question)
	for _, keyword := range summaryKeywords {
		if strings.Contains(q, keyword) {
			return true
		}
	}
	return false
}

func buildQAPrompt(transcript, question string) string {
	return fmt.Sprintf(`You are a strict academic tutor. Your ONLY source of information is the lecture transcript below.

CRITICAL RULES:
1. Answer ONLY using exact information from the transcript
2. Quote or paraphrase DIRECTLY from the transcript
3. If the answer is NOT explicitly in the transcript, respond EXACTLY: "This topic is not covered in the lecture."
4. Do NOT add examples, explanations, or knowledge from outside the transcript
5. Do NOT make inferences or assumptions

LECTURE TRANSCRIPT:
%s

STUDENT QUESTION:
%s

ANSWER (using ONLY transcript information):`, transcript, question)
}

func buildSummaryPrompt(transcript string) string {
	return fmt.Sprintf(`You are summarizing a lecture transcript for a student.

STRICT RULES:
1. Create bullet points using ONLY information explicitly stated in the transcript
2. Do NOT add outside knowledge or interpretations
3. Each bullet point should directly reference something said in the transcript
4. Keep it to 5-7 clear, concise bullet points
5. Use the lecturer's own words and concepts

LECTURE TRANSCRIPT:
%s

SUMMARY (5-7 bullet points from transcript ONLY):`, transcript)
}

// contentWords lowercases, splits and drops stop words.
func contentWords(text string) map[string]bool {
	words := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if !stopWords[w] {
			words[w] = true
		}
	}
	return words
}

// EnforceTranscriptScope filters a raw model answer before it reaches the
// client. The checks run in order and short-circuit on first match: too
// short, already-refusing phrasing, hallucination markers, runaway length,
// and finally a lexical-overlap ratio against the transcript vocabulary.
// This is a heuristic firewall, not a guarantee; it can over-reject terse
// correct answers and under-reject fluent fabrications that happen to reuse
// transcript vocabulary.
func EnforceTranscriptScope(answer, transcript string) string {
	answer = strings.TrimSpace(answer)

	if len(answer) < 15 {
		return NotCoveredAnswer
	}

	answerLower := strings.ToLower(answer)
	for _, phrase := range notCoveredPhrases {
		if strings.Contains(answerLower, phrase) {
			return NotCoveredAnswer
		}
	}

	for _, phrase := range hallucinationPhrases {
		if strings.Contains(answerLower, phrase) {
			return NotCoveredAnswer
		}
	}

	wordCount := len(strings.Fields(answer))
	if wordCount > maxAnswerWords {
		return NotCoveredAnswer
	}

	transcriptWords := contentWords(transcript)
	answerWords := contentWords(answerLower)

	// Only meaningful on a substantial vocabulary and a non-trivial answer.
	if len(transcriptWords) > 20 && wordCount > 30 && len(answerWords) > 0 {
		overlap := 0
		for w := range answerWords {
			if transcriptWords[w] {
				overlap++
			}
		}
		denominator := len(answerWords)
		if denominator > 20 {
			denominator = 20
		}
		if float64(overlap)/float64(denominator) < 0.2 {
			return NotCoveredAnswer
		}
	}

	return answer
}

// ChatAnswerer answers free-form questions using only the transcript as
// ground truth.
type ChatAnswerer struct {
	llm TextCompleter
}

func NewChatAnswerer(llm TextCompleter) *ChatAnswerer {
	return &ChatAnswerer{llm: llm}
}

// Answer validates inputs, routes to a QA or summary prompt, and runs the
// safety filter over the model's reply. All failures surface as canned
// strings, never as errors.
func (a *ChatAnswerer) Answer(transcript, question string) string {
	transcript = strings.TrimSpace(transcript)
	question = strings.TrimSpace(question)

	if transcript == "" || question == "" {
		return PromptToLoad
	}
	if len(strings.Fields(transcript)) < minChatTranscriptWords {
		return TranscriptTooShort
	}

	var prompt string
	var maxTokens int
	if isSummaryRequest(question) {
		prompt = buildSummaryPrompt(transcript)
		maxTokens = 500
	} else {
		prompt = buildQAPrompt(transcript, question)
		maxTokens = 250
	}

	raw, err := a.llm.Complete(prompt, 0.1, maxTokens)
	if err != nil {
		log.Printf("Chat completion failed: %v", err)
		return ChatErrorAnswer
	}

	return EnforceTranscriptScope(raw, transcript)
}
