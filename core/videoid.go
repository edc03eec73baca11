package core

import "regexp"

// YouTube URL shapes we accept. Order matters: the short-link form is
// checked first so that query parameters on youtu.be links do not confuse
// the v= pattern.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtu\.be/([^?&]+)`),
	regexp.MustCompile(`v=([^?&]+)`),
	regexp.MustCompile(`embed/([^?&]+)`),
}

// ExtractVideoID pulls the video identifier out of a YouTube URL. Returns
// an empty string when the URL matches none of the known shapes.
func ExtractVideoID(url string) string {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}
