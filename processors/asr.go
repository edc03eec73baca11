package processors

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"lectureAssist/config"
	"lectureAssist/core"
)

// minTranscribableBytes guards against feeding the speech engine an empty
// or truncated audio file.
const minTranscribableBytes = 10000

// SpeechTranscriber converts an audio file into full text plus timed
// segments with engine-native timestamps.
type SpeechTranscriber interface {
	Transcribe(audioPath string) (*core.TranscriptionResult, error)
}

// WhisperASR uses the OpenAI-compatible transcription endpoint. The
// verbose-JSON response format carries per-segment timing.
type WhisperASR struct {
	cli   *openai.Client
	model string
}

func NewWhisperASR(cfg *config.Config) WhisperASR {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return WhisperASR{
		cli:   openai.NewClientWithConfig(clientConfig),
		model: cfg.WhisperModel,
	}
}

func (w WhisperASR) Transcribe(audioPath string) (*core.TranscriptionResult, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("audio file not found")
	}
	if info.Size() < minTranscribableBytes {
		return nil, fmt.Errorf("audio file too small")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	resp, err := w.cli.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: "en",
	})
	if err != nil {
		return nil, fmt.Errorf("transcription API failed: %v", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, fmt.Errorf("no speech detected")
	}

	segments := make([]core.Segment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		segText := strings.TrimSpace(seg.Text)
		if segText == "" {
			continue
		}
		segments = append(segments, core.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  segText,
		})
	}

	// Some backends return only the flat text. One segment spanning the
	// whole clip is still a usable timeline; backends that also omit the
	// duration get an estimate at an average speaking pace so the segment
	// never collapses to [0,0].
	if len(segments) == 0 {
		end := resp.Duration
		if end <= 0 {
			end = float64(len(strings.Fields(text))) / 2.5
		}
		segments = append(segments, core.Segment{Start: 0, End: end, Text: text})
	}

	return &core.TranscriptionResult{FullText: text, Segments: segments}, nil
}

// MockASR produces a deterministic placeholder transcript sized to the
// audio file. It keeps the pipeline exercisable without any API key.
type MockASR struct {
	Calls int
}

func (m *MockASR) Transcribe(audioPath string) (*core.TranscriptionResult, error) {
	m.Calls++
	if _, err := os.Stat(audioPath); err != nil {
		return nil, fmt.Errorf("audio file not found")
	}

	segLen := 15.0
	segments := make([]core.Segment, 0, 4)
	parts := make([]string, 0, 4)
	for start := 0.0; start < 60.0; start += segLen {
		text := fmt.Sprintf("Placeholder transcript from %.0fs to %.0fs", start, start+segLen)
		segments = append(segments, core.Segment{Start: start, End: start + segLen, Text: text})
		parts = append(parts, text)
	}
	return &core.TranscriptionResult{FullText: strings.Join(parts, " "), Segments: segments}, nil
}

// PickTranscriber selects the speech engine from the ASR environment
// variable, falling back to the mock when no usable API config exists.
func PickTranscriber(cfg *config.Config) SpeechTranscriber {
	asr := strings.ToLower(strings.TrimSpace(os.Getenv("ASR")))

	if asr == "mock" {
		return &MockASR{}
	}

	if !cfg.HasValidAPI() {
		log.Println("Warning: API configuration not found, using mock transcriber")
		return &MockASR{}
	}

	return NewWhisperASR(cfg)
}
