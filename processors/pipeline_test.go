package processors

import (
	"fmt"
	"testing"

	"lectureAssist/core"
	"lectureAssist/storage"
)

type fakeCaptions struct {
	cues  []core.CaptionCue
	err   error
	calls int
}

func (f *fakeCaptions) Fetch(videoID string) ([]core.CaptionCue, error) {
	f.calls++
	return f.cues, f.err
}

func newTestTranscripts(t *testing.T) *storage.FileTranscriptStore {
	t.Helper()
	store, err := storage.NewFileTranscriptStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileTranscriptStore() failed: %v", err)
	}
	return store
}

func TestSubmitHybridFlow(t *testing.T) {
	transcripts := newTestTranscripts(t)
	captions := &fakeCaptions{cues: []core.CaptionCue{{Start: 0, End: 30, Text: "cap"}}}
	pipeline := NewPipeline(&MockDownloader{}, &MockASR{}, captions, transcripts)

	resp, err := pipeline.Submit("vid1", "https://youtu.be/vid1")
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if resp.Status != "success" || resp.Message != "Transcript generated" {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.Method != core.SourceHybrid {
		t.Errorf("Expected hybrid provenance, got %q", resp.Method)
	}

	record, err := transcripts.Load("vid1")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if record.Source != core.SourceHybrid {
		t.Errorf("Expected stored source hybrid, got %q", record.Source)
	}
	if record.FullText == "" || len(record.Timeline) == 0 {
		t.Error("Expected full text and timeline in stored record")
	}
}

func TestSubmitCaptionFailureFallsBackToSpeechTiming(t *testing.T) {
	transcripts := newTestTranscripts(t)
	captions := &fakeCaptions{err: fmt.Errorf("blocked")}
	pipeline := NewPipeline(&MockDownloader{}, &MockASR{}, captions, transcripts)

	resp, err := pipeline.Submit("vid1", "https://youtu.be/vid1")
	if err != nil {
		t.Fatalf("Submit() failed despite caption failure: %v", err)
	}
	if resp.Method != core.SourceSpeechOnly {
		t.Errorf("Expected speech_only provenance, got %q", resp.Method)
	}
	if len(resp.Warnings) == 0 {
		t.Error("Expected a caption-unavailable warning")
	}
}

func TestSubmitIsIdempotentPerVideo(t *testing.T) {
	transcripts := newTestTranscripts(t)
	downloader := &MockDownloader{}
	transcriber := &MockASR{}
	captions := &fakeCaptions{}
	pipeline := NewPipeline(downloader, transcriber, captions, transcripts)

	if _, err := pipeline.Submit("vid1", "https://youtu.be/vid1"); err != nil {
		t.Fatalf("first Submit() failed: %v", err)
	}

	resp, err := pipeline.Submit("vid1", "https://youtu.be/vid1")
	if err != nil {
		t.Fatalf("second Submit() failed: %v", err)
	}
	if resp.Message != "Transcript already exists" {
		t.Errorf("Expected short-circuit message, got %q", resp.Message)
	}
	if downloader.Calls != 1 {
		t.Errorf("Expected 1 download, got %d", downloader.Calls)
	}
	if transcriber.Calls != 1 {
		t.Errorf("Expected 1 transcription, got %d", transcriber.Calls)
	}
}

func TestSubmitDownloadFailure(t *testing.T) {
	transcripts := newTestTranscripts(t)
	pipeline := NewPipeline(failingDownloader{}, &MockASR{}, &fakeCaptions{}, transcripts)

	resp, err := pipeline.Submit("vid1", "https://youtu.be/vid1")
	if err == nil {
		t.Fatal("Expected error from failed download")
	}
	if len(resp.Steps) == 0 || resp.Steps[0].Status != "failed" {
		t.Errorf("Expected failed download step, got %+v", resp.Steps)
	}
	if transcripts.Exists("vid1") {
		t.Error("Expected no record saved after failed download")
	}
}

type failingDownloader struct{}

func (failingDownloader) Download(sourceURL string) (string, error) {
	return "", fmt.Errorf("yt-dlp failed: exit status 1")
}
