package server

import (
	"encoding/json"
	"os"
)

// Lecture is one entry of the curated catalog students pick from.
type Lecture struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// defaultLectures ships a small built-in catalog so the service works out
// of the box; lectures.json in the working directory replaces it entirely.
var defaultLectures = map[string]Lecture{
	"cs101-intro": {
		Title: "Introduction to Computer Science",
		URL:   "https://www.youtube.com/watch?v=zOjov-2OZ0E",
	},
	"python-basics": {
		Title: "Python for Beginners",
		URL:   "https://www.youtube.com/watch?v=kqtD5dpn9C8",
	},
	"dsa-trees": {
		Title: "Data Structures: Trees",
		URL:   "https://www.youtube.com/watch?v=oSWTXtMglKE",
	},
}

// LoadLectures returns the lecture catalog, preferring lectures.json when
// present and readable.
func LoadLectures() map[string]Lecture {
	data, err := os.ReadFile("lectures.json")
	if err != nil {
		return defaultLectures
	}
	var lectures map[string]Lecture
	if err := json.Unmarshal(data, &lectures); err != nil || len(lectures) == 0 {
		return defaultLectures
	}
	return lectures
}
