package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds everything the service needs at startup. Values come from
// config.json in the working directory and can be overridden per-field with
// environment variables.
type Config struct {
	APIKey         string  `json:"api_key"`
	BaseURL        string  `json:"base_url"`
	ChatModel      string  `json:"chat_model"`
	WhisperModel   string  `json:"whisper_model"`
	PostgresURL    string  `json:"postgres_url"`
	TranscriptDir  string  `json:"transcript_dir"`
	WordsPerSecond float64 `json:"words_per_second"`
	PreviewWords   int     `json:"preview_words"`
}

// Load reads config.json if present, then applies environment overrides.
// When no config.json exists the environment alone is used with defaults.
func Load() (*Config, error) {
	config := &Config{
		BaseURL:        "https://api.groq.com/openai/v1",
		ChatModel:      "llama-3.1-8b-instant",
		WhisperModel:   "whisper-1",
		TranscriptDir:  "data/transcripts",
		WordsPerSecond: 2.5,
		PreviewWords:   900,
	}

	if data, err := os.ReadFile("config.json"); err == nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config.json: %v", err)
		}
	}

	applyEnvOverrides(config)

	if config.WordsPerSecond <= 0 {
		config.WordsPerSecond = 2.5
	}
	if config.PreviewWords <= 0 {
		config.PreviewWords = 900
	}
	if config.TranscriptDir == "" {
		config.TranscriptDir = "data/transcripts"
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if key := os.Getenv("API_KEY"); key != "" {
		config.APIKey = key
	}
	if url := os.Getenv("BASE_URL"); url != "" {
		config.BaseURL = url
	}
	if model := os.Getenv("CHAT_MODEL"); model != "" {
		config.ChatModel = model
	}
	if model := os.Getenv("WHISPER_MODEL"); model != "" {
		config.WhisperModel = model
	}
	if url := os.Getenv("POSTGRES_URL"); url != "" {
		config.PostgresURL = url
	}
	if dir := os.Getenv("TRANSCRIPT_DIR"); dir != "" {
		config.TranscriptDir = dir
	}
	if wps := os.Getenv("WORDS_PER_SECOND"); wps != "" {
		if v, err := strconv.ParseFloat(wps, 64); err == nil && v > 0 {
			config.WordsPerSecond = v
		}
	}
	if pw := os.Getenv("PREVIEW_WORDS"); pw != "" {
		if v, err := strconv.Atoi(pw); err == nil && v > 0 {
			config.PreviewWords = v
		}
	}
}

func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.APIKey) == "" {
		errors = append(errors, "API Key is required")
	}

	if strings.TrimSpace(c.BaseURL) == "" {
		errors = append(errors, "Base URL is required")
	}

	if strings.TrimSpace(c.ChatModel) == "" {
		errors = append(errors, "Chat model is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// HasValidAPI reports whether LLM-backed features can be used at all.
// Components fall back to their mock providers when this is false.
func (c *Config) HasValidAPI() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.BaseURL) != ""
}
