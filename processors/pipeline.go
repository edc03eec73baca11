package processors

import (
	"fmt"
	"log"
	"os"

	"lectureAssist/core"
	"lectureAssist/storage"
)

// Pipeline runs the submit flow: store check, audio download, speech
// transcription, caption fetch, alignment, persistence. Every collaborator
// is injected so the whole flow runs against mocks in tests.
type Pipeline struct {
	downloader  AudioDownloader
	transcriber SpeechTranscriber
	captions    CaptionProvider
	transcripts storage.TranscriptStore
}

func NewPipeline(downloader AudioDownloader, transcriber SpeechTranscriber, captions CaptionProvider, transcripts storage.TranscriptStore) *Pipeline {
	return &Pipeline{
		downloader:  downloader,
		transcriber: transcriber,
		captions:    captions,
		transcripts: transcripts,
	}
}

// Submit processes one video end to end. A video whose record already
// exists short-circuits before any external call. The returned response
// always carries the per-step status; err is non-nil only when the overall
// submission failed.
func (p *Pipeline) Submit(videoID, youtubeURL string) (*core.SubmitVideoResponse, error) {
	resp := &core.SubmitVideoResponse{
		VideoID: videoID,
		Steps:   make([]core.Step, 0, 4),
	}

	if p.transcripts.Exists(videoID) {
		resp.Status = "success"
		resp.Message = "Transcript already exists"
		return resp, nil
	}

	log.Printf("Processing: %s", youtubeURL)

	audioPath, err := p.downloader.Download(youtubeURL)
	if err != nil {
		resp.Steps = append(resp.Steps, core.Step{Name: "download", Status: "failed", Error: err.Error()})
		resp.Message = "Audio download failed"
		return resp, fmt.Errorf("download audio: %v", err)
	}
	resp.Steps = append(resp.Steps, core.Step{Name: "download", Status: "completed"})
	defer os.Remove(audioPath)

	speech, err := p.transcriber.Transcribe(audioPath)
	if err != nil {
		resp.Steps = append(resp.Steps, core.Step{Name: "transcribe", Status: "failed", Error: err.Error()})
		resp.Message = "Audio transcription failed"
		return resp, fmt.Errorf("transcribe audio: %v", err)
	}
	resp.Steps = append(resp.Steps, core.Step{Name: "transcribe", Status: "completed"})

	// Caption timing is an optional upgrade; unavailability is normal.
	cues, err := p.captions.Fetch(videoID)
	if err != nil {
		log.Printf("Caption timestamps unavailable for %s: %v", videoID, err)
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("Caption timestamps unavailable: %v", err))
		resp.Steps = append(resp.Steps, core.Step{Name: "captions", Status: "skipped", Error: err.Error()})
		cues = nil
	} else {
		resp.Steps = append(resp.Steps, core.Step{Name: "captions", Status: "completed"})
	}

	timeline, source := BuildTimeline(speech, cues)
	record := &core.TranscriptRecord{
		VideoID:  videoID,
		FullText: speech.FullText,
		Timeline: timeline,
		Source:   source,
	}
	if err := p.transcripts.Save(record); err != nil {
		resp.Steps = append(resp.Steps, core.Step{Name: "store", Status: "failed", Error: err.Error()})
		resp.Message = "Failed to save transcript"
		return resp, fmt.Errorf("save transcript: %v", err)
	}
	resp.Steps = append(resp.Steps, core.Step{Name: "store", Status: "completed"})

	log.Printf("Transcript generated for %s: method=%s segments=%d", videoID, source, len(timeline))

	resp.Status = "success"
	resp.Message = "Transcript generated"
	resp.Method = source
	return resp, nil
}
