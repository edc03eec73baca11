package core

// ========== Transcript data model ==========

// Segment is a single timed span of transcript text.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// CaptionCue is an independently timed caption entry from the caption
// provider. Text quality is usually worse than the speech engine's, the
// timing is usually better.
type CaptionCue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"caption_text"`
}

// TranscriptionResult is the raw output of the speech transcription engine.
type TranscriptionResult struct {
	FullText string    `json:"full_text"`
	Segments []Segment `json:"segments"`
}

// Timeline provenance values.
const (
	SourceHybrid     = "hybrid"
	SourceSpeechOnly = "speech_only"
)

// TranscriptRecord is the durable per-video record. Created once on first
// successful transcription and never rewritten.
type TranscriptRecord struct {
	VideoID  string    `json:"video_id"`
	FullText string    `json:"full_text"`
	Timeline []Segment `json:"timeline"`
	Source   string    `json:"source"`
}

// QuizQuestion is one generated multiple-choice question. Options always has
// exactly four entries and CorrectIndex points into it.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// ========== HTTP request / response types ==========

type SubmitVideoRequest struct {
	LectureID  string `json:"lecture_id"`
	YoutubeURL string `json:"youtube_url"`
}

type Step struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "completed", "failed", "skipped"
	Error  string `json:"error,omitempty"`
}

type SubmitVideoResponse struct {
	Status   string   `json:"status"`
	VideoID  string   `json:"video_id"`
	Message  string   `json:"message"`
	Method   string   `json:"method,omitempty"`
	Steps    []Step   `json:"steps,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type QuizRequest struct {
	VideoID        string  `json:"video_id"`
	WatchedSeconds float64 `json:"watched_seconds"`
}

type QuizResponse struct {
	Status string         `json:"status"`
	Quiz   []QuizQuestion `json:"quiz"`
}

type NotesRequest struct {
	VideoID        string  `json:"video_id"`
	WatchedSeconds float64 `json:"watched_seconds"`
	Mode           string  `json:"mode"` // "watched" or "full"
}

type NotesResponse struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
	Notes  string `json:"notes"`
}

type ChatRequest struct {
	VideoID  string `json:"video_id"`
	Question string `json:"question"`
}

type ChatResponse struct {
	Status string `json:"status"`
	Answer string `json:"answer"`
}
