package processors

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"

	"lectureAssist/core"
	"lectureAssist/storage"
)

const (
	// minQuizWords is the smallest transcript excerpt worth quizzing on.
	minQuizWords = 80
	// chunkWords bounds each excerpt handed to the LLM; chunks at or below
	// chunkMinWords after splitting lack enough context and are discarded.
	chunkWords    = 140
	chunkMinWords = 45
	// dedupPrefixLen is how many normalized characters of two questions
	// must match for them to count as duplicates.
	dedupPrefixLen = 60

	defaultMaxQuestions = 6
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// normalizeQuestion lowercases and strips everything but letters and
// digits, so the duplicate check ignores punctuation and spacing.
func normalizeQuestion(text string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(text), "")
}

// isSimilarQuestion is a cheap prefix fingerprint, not semantic dedup. It
// misses paraphrases and can collide on long shared preambles.
func isSimilarQuestion(q1, q2 string) bool {
	n1 := normalizeQuestion(q1)
	n2 := normalizeQuestion(q2)
	if len(n1) > dedupPrefixLen {
		n1 = n1[:dedupPrefixLen]
	}
	if len(n2) > dedupPrefixLen {
		n2 = n2[:dedupPrefixLen]
	}
	return n1 == n2
}

// splitTranscript breaks the transcript into word-bounded chunks, dropping
// trailing chunks too short to carry context.
func splitTranscript(transcript string) []string {
	words := strings.Fields(transcript)
	chunks := make([]string, 0, len(words)/chunkWords+1)

	for i := 0; i < len(words); i += chunkWords {
		end := i + chunkWords
		if end > len(words) {
			end = len(words)
		}
		part := words[i:end]
		if len(part) > chunkMinWords {
			chunks = append(chunks, strings.Join(part, " "))
		}
	}

	return chunks
}

// basicStylePrompt is used for every chunk on a video's first attempt.
const basicStylePrompt = `Create 2 STANDARD MCQ questions:
- simple concept based
- beginner friendly
- avoid code output questions
- 4 options each`

// altStylePrompts add variety on repeat attempts; one is picked at random
// per chunk.
var altStylePrompts = []string{
	`Create 1 CONCEPT MCQ:
- definition / purpose based`,
	`Create 1 SCENARIO MCQ:
- real life usage`,
	`Create 1 OUTPUT MCQ:
- predict result`,
	`Create 1 TRUE/FALSE MCQ with options:
["True","False","Cannot determine","Partially true"]`,
}

func buildQuizPrompt(style, chunk string) string {
	return fmt.Sprintf(`%s

STRICT RULES:
- MUST be from TEXT only
- Do NOT repeat earlier questions
- Return ONLY JSON array

FORMAT:
[
  {
    "question": "...",
    "options": ["A","B","C","D"],
    "correct_index": 0
  }
]

TEXT:
%s`, style, chunk)
}

// cleanJSONArray strips markdown fences and any commentary the model wraps
// around the JSON array, keeping everything between the first '[' and the
// last ']'.
func cleanJSONArray(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start != -1 && end != -1 && end > start {
		text = text[start : end+1]
	}

	return text
}

// QuizGenerator produces bounded, deduplicated multiple-choice batches
// grounded in a transcript excerpt.
type QuizGenerator struct {
	llm      TextCompleter
	attempts storage.AttemptStore
}

func NewQuizGenerator(llm TextCompleter, attempts storage.AttemptStore) *QuizGenerator {
	return &QuizGenerator{llm: llm, attempts: attempts}
}

// Generate builds up to maxQuestions questions from transcript. Transcripts
// under 80 words yield an empty batch with no LLM call and no attempt
// counted; otherwise the attempt counter for videoID is bumped exactly once
// per call, whatever the yield. Chunk-level failures are logged and skipped,
// never fatal.
func (g *QuizGenerator) Generate(transcript, videoID string, maxQuestions int) []core.QuizQuestion {
	if maxQuestions <= 0 {
		maxQuestions = defaultMaxQuestions
	}
	if len(strings.Fields(transcript)) < minQuizWords {
		return []core.QuizQuestion{}
	}

	attempt, err := g.attempts.Get(videoID)
	if err != nil {
		log.Printf("Warning: failed to read attempt counter for %s: %v", videoID, err)
	}

	chunks := splitTranscript(transcript)
	rand.Shuffle(len(chunks), func(i, j int) { chunks[i], chunks[j] = chunks[j], chunks[i] })

	collected := make([]core.QuizQuestion, 0, maxQuestions)
	usedQuestions := make([]string, 0, maxQuestions)

	for _, chunk := range chunks {
		if len(collected) >= maxQuestions {
			break
		}

		style := basicStylePrompt
		if attempt > 0 {
			style = altStylePrompts[rand.Intn(len(altStylePrompts))]
		}

		raw, err := g.llm.Complete(buildQuizPrompt(style, chunk), 0.85, 650)
		if err != nil {
			log.Printf("Quiz chunk failed for %s: %v", videoID, err)
			continue
		}

		var questions []core.QuizQuestion
		if err := json.Unmarshal([]byte(cleanJSONArray(raw)), &questions); err != nil {
			log.Printf("Quiz chunk returned malformed JSON for %s: %v", videoID, err)
			continue
		}

		for _, q := range questions {
			if q.Question == "" || len(q.Options) != 4 {
				continue
			}

			duplicate := false
			for _, used := range usedQuestions {
				if isSimilarQuestion(q.Question, used) {
					duplicate = true
					break
				}
			}
			if !duplicate {
				collected = append(collected, q)
				usedQuestions = append(usedQuestions, q.Question)
			}

			if len(collected) >= maxQuestions {
				break
			}
		}
	}

	if err := g.attempts.Increment(videoID); err != nil {
		log.Printf("Warning: failed to increment attempt counter for %s: %v", videoID, err)
	}

	rand.Shuffle(len(collected), func(i, j int) { collected[i], collected[j] = collected[j], collected[i] })
	return collected
}
