package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"lectureAssist/config"
	"lectureAssist/core"
	"lectureAssist/processors"
	"lectureAssist/storage"
)

// Server wires the HTTP surface to the injected services. Every dependency
// is passed in at construction; nothing here reads globals.
type Server struct {
	cfg         *config.Config
	lectures    map[string]Lecture
	transcripts storage.TranscriptStore
	pipeline    *processors.Pipeline
	window      processors.WindowSelector
	quiz        *processors.QuizGenerator
	notes       *processors.NotesGenerator
	chat        *processors.ChatAnswerer
	startedAt   time.Time
	quizServed  atomic.Int64
}

func New(cfg *config.Config, lectures map[string]Lecture, transcripts storage.TranscriptStore,
	pipeline *processors.Pipeline, window processors.WindowSelector,
	quiz *processors.QuizGenerator, notes *processors.NotesGenerator, chat *processors.ChatAnswerer) *Server {
	return &Server{
		cfg:         cfg,
		lectures:    lectures,
		transcripts: transcripts,
		pipeline:    pipeline,
		window:      window,
		quiz:        quiz,
		notes:       notes,
		chat:        chat,
		startedAt:   time.Now(),
	}
}

// RegisterRoutes attaches all endpoints to mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/lectures", s.lecturesHandler)
	mux.HandleFunc("/submit-video", s.submitVideoHandler)
	mux.HandleFunc("/transcript/", s.transcriptHandler)
	mux.HandleFunc("/generate-quiz", s.quizHandler)
	mux.HandleFunc("/generate-notes", s.notesHandler)
	mux.HandleFunc("/chat", s.chatHandler)

	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/stats", s.statsHandler)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "write json error: %v", err)
	}
}

func (s *Server) lecturesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, s.lectures)
}

func (s *Server) submitVideoHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req core.SubmitVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	youtubeURL := req.YoutubeURL
	if req.LectureID != "" {
		lecture, ok := s.lectures[req.LectureID]
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid lecture_id"})
			return
		}
		youtubeURL = lecture.URL
	}
	if youtubeURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lecture_id or youtube_url required"})
		return
	}

	videoID := core.ExtractVideoID(youtubeURL)
	if videoID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not extract video id from url"})
		return
	}

	resp, err := s.pipeline.Submit(videoID, youtubeURL)
	if err != nil {
		log.Printf("Submit failed for %s: %v", videoID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) transcriptHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	videoID := strings.TrimPrefix(r.URL.Path, "/transcript/")
	if videoID == "" || strings.Contains(videoID, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "video_id required"})
		return
	}

	if !s.transcripts.Exists(videoID) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Transcript not found"})
		return
	}

	record, err := s.transcripts.Load(videoID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// loadFullText fetches the stored transcript text for videoID, writing the
// error response itself when the record is missing or unreadable.
func (s *Server) loadFullText(w http.ResponseWriter, videoID string) (string, bool) {
	if videoID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Video ID required"})
		return "", false
	}
	if !s.transcripts.Exists(videoID) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Transcript not found"})
		return "", false
	}
	record, err := s.transcripts.Load(videoID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return "", false
	}
	return record.FullText, true
}

func (s *Server) quizHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req core.QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	fullText, ok := s.loadFullText(w, req.VideoID)
	if !ok {
		return
	}

	partialText := s.window.Select(fullText, req.WatchedSeconds)
	quiz := s.quiz.Generate(partialText, req.VideoID, 0)

	if len(quiz) == 0 {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Quiz generation failed"})
		return
	}

	s.quizServed.Add(1)
	writeJSON(w, http.StatusOK, core.QuizResponse{Status: "success", Quiz: quiz})
}

func (s *Server) notesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req core.NotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Mode == "" {
		req.Mode = "watched"
	}

	fullText, ok := s.loadFullText(w, req.VideoID)
	if !ok {
		return
	}

	sourceText := fullText
	title := "Full Lecture Notes"
	if req.Mode == "watched" {
		sourceText = s.window.Select(fullText, req.WatchedSeconds)
		title = "Watched Notes"
	}

	notes := s.notes.Generate(sourceText, title, req.Mode)
	writeJSON(w, http.StatusOK, core.NotesResponse{Status: "success", Mode: req.Mode, Notes: notes})
}

func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req core.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.VideoID == "" || req.Question == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "video_id and question required"})
		return
	}

	if !s.transcripts.Exists(req.VideoID) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Transcript not found"})
		return
	}
	record, err := s.transcripts.Load(req.VideoID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	answer := s.chat.Answer(record.FullText, req.Question)
	writeJSON(w, http.StatusOK, core.ChatResponse{Status: "success", Answer: answer})
}
