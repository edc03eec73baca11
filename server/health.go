package server

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status    string `json:"status"`
	APIReady  bool   `json:"api_ready"`
	Timestamp string `json:"timestamp"`
}

type statsResponse struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	Transcripts   int     `json:"transcripts"`
	QuizzesServed int     `json:"quizzes_served"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		APIReady:  s.cfg.HasValidAPI(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
		Transcripts:   s.transcripts.Count(),
		QuizzesServed: int(s.quizServed.Load()),
	})
}
