package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"lectureAssist/config"
	"lectureAssist/processors"
	"lectureAssist/server"
	"lectureAssist/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("Warning: config validation: %v", err)
	}
	if !cfg.HasValidAPI() {
		log.Printf("Warning: no API key configured, LLM-backed features will fall back to mocks or fail")
	}

	transcripts, err := storage.NewFileTranscriptStore(cfg.TranscriptDir)
	if err != nil {
		log.Fatalf("transcript store init failed: %v", err)
	}

	attempts := pickAttemptStore(cfg)
	downloader := pickDownloader()
	transcriber := processors.PickTranscriber(cfg)
	captions := pickCaptionProvider()

	pipeline := processors.NewPipeline(downloader, transcriber, captions, transcripts)
	llm := processors.NewCompletionClient(cfg)

	srv := server.New(cfg, server.LoadLectures(), transcripts,
		pipeline,
		processors.NewWindowSelector(cfg),
		processors.NewQuizGenerator(llm, attempts),
		processors.NewNotesGenerator(llm),
		processors.NewChatAnswerer(llm),
	)

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Lecture assistant listening on :%s (transcripts in %s)", port, cfg.TranscriptDir)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// pickAttemptStore selects the quiz attempt counter backend. STORE=postgres
// uses the configured Postgres URL; anything else keeps counters in a JSON
// file next to the transcripts.
func pickAttemptStore(cfg *config.Config) storage.AttemptStore {
	if os.Getenv("STORE") == "postgres" && cfg.PostgresURL != "" {
		store, err := storage.NewPostgresAttemptStore(context.Background(), cfg.PostgresURL)
		if err != nil {
			log.Fatalf("postgres attempt store init failed: %v", err)
		}
		log.Printf("Using Postgres attempt store")
		return store
	}

	path := filepath.Join(filepath.Dir(cfg.TranscriptDir), "quiz_meta.json")
	store, err := storage.NewFileAttemptStore(path)
	if err != nil {
		log.Fatalf("attempt store init failed: %v", err)
	}
	return store
}

func pickDownloader() processors.AudioDownloader {
	if os.Getenv("DOWNLOADER") == "mock" {
		log.Printf("Using mock audio downloader")
		return &processors.MockDownloader{}
	}
	return processors.YtDlpDownloader{}
}

func pickCaptionProvider() processors.CaptionProvider {
	if os.Getenv("CAPTIONS") == "off" {
		log.Printf("Caption fetching disabled")
		return processors.NoCaptions{}
	}
	return processors.NewYouTubeCaptionProvider()
}
