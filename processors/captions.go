package processors

import (
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lectureAssist/core"
)

// CaptionProvider supplies independently timed caption cues for a video.
// Unavailability (no captions, blocked request, malformed payload) is a
// normal outcome and reported as an error the caller treats as non-fatal.
type CaptionProvider interface {
	Fetch(videoID string) ([]core.CaptionCue, error)
}

// captionLanguages is the preference order for caption tracks.
var captionLanguages = []string{"en", "en-US", "en-GB", "hi", "ta"}

// YouTubeCaptionProvider reads the public timedtext track for a video.
type YouTubeCaptionProvider struct {
	httpClient *http.Client
	baseURL    string
}

func NewYouTubeCaptionProvider() *YouTubeCaptionProvider {
	return &YouTubeCaptionProvider{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://video.google.com/timedtext",
	}
}

type timedTextDoc struct {
	XMLName xml.Name        `xml:"transcript"`
	Texts   []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (p *YouTubeCaptionProvider) Fetch(videoID string) ([]core.CaptionCue, error) {
	for _, lang := range captionLanguages {
		cues, err := p.fetchLanguage(videoID, lang)
		if err == nil && len(cues) > 0 {
			return cues, nil
		}
	}
	return nil, fmt.Errorf("no caption track available for %s", videoID)
}

func (p *YouTubeCaptionProvider) fetchLanguage(videoID, lang string) ([]core.CaptionCue, error) {
	endpoint := fmt.Sprintf("%s?lang=%s&v=%s", p.baseURL, url.QueryEscape(lang), url.QueryEscape(videoID))
	resp, err := p.httpClient.Get(endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty timedtext response")
	}

	var doc timedTextDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse timedtext: %v", err)
	}

	cues := make([]core.CaptionCue, 0, len(doc.Texts))
	for _, line := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(line.Body))
		if text == "" {
			continue
		}
		cues = append(cues, core.CaptionCue{
			Start: round2(line.Start),
			End:   round2(line.Start + line.Dur),
			Text:  text,
		})
	}
	return cues, nil
}

// NoCaptions disables the caption source entirely (CAPTIONS=off).
type NoCaptions struct{}

func (NoCaptions) Fetch(videoID string) ([]core.CaptionCue, error) {
	return nil, fmt.Errorf("caption source disabled")
}
