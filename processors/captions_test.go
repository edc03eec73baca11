package processors

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestYouTubeCaptionProviderParsesTimedText(t *testing.T) {
	payload := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.5" dur="2.25">hello &amp; welcome</text>
  <text start="2.75" dur="3">to the lecture</text>
  <text start="5.75" dur="1">   </text>
</transcript>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "vid1" {
			t.Errorf("Expected video id vid1, got %q", r.URL.Query().Get("v"))
		}
		w.Write([]byte(payload))
	}))
	defer server.Close()

	provider := NewYouTubeCaptionProvider()
	provider.baseURL = server.URL

	cues, err := provider.Fetch("vid1")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("Expected 2 cues (blank one dropped), got %d", len(cues))
	}
	if cues[0].Text != "hello & welcome" {
		t.Errorf("Expected entity-unescaped text, got %q", cues[0].Text)
	}
	if cues[0].Start != 0.5 || cues[0].End != 2.75 {
		t.Errorf("Expected cue [0.5,2.75], got [%v,%v]", cues[0].Start, cues[0].End)
	}
	if cues[1].Start != 2.75 || cues[1].End != 5.75 {
		t.Errorf("Expected cue [2.75,5.75], got [%v,%v]", cues[1].Start, cues[1].End)
	}
}

func TestYouTubeCaptionProviderEmptyTrack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// YouTube answers 200 with an empty body when no track exists.
	}))
	defer server.Close()

	provider := NewYouTubeCaptionProvider()
	provider.baseURL = server.URL

	if _, err := provider.Fetch("vid1"); err == nil {
		t.Error("Expected unavailable error for empty caption track")
	}
}
