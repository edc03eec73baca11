package storage

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"lectureAssist/core"
)

// TranscriptStore persists one TranscriptRecord per video id.
type TranscriptStore interface {
	Exists(videoID string) bool
	Save(record *core.TranscriptRecord) error
	Load(videoID string) (*core.TranscriptRecord, error)
	Count() int
}

// stripeCount sizes the per-key lock table shared by the file stores.
const stripeCount = 16

type stripedLocks [stripeCount]sync.Mutex

func (s *stripedLocks) forKey(key string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(key))
	return &s[h.Sum32()%stripeCount]
}

// FileTranscriptStore keeps one JSON file per video under a flat directory.
// Writes for the same video id are serialized through a striped lock; the
// overall semantics stay last-write-wins with no retries.
type FileTranscriptStore struct {
	dir   string
	locks stripedLocks
}

func NewFileTranscriptStore(dir string) (*FileTranscriptStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %v", err)
	}
	return &FileTranscriptStore{dir: dir}, nil
}

func (s *FileTranscriptStore) path(videoID string) string {
	return filepath.Join(s.dir, videoID+".json")
}

func (s *FileTranscriptStore) Exists(videoID string) bool {
	_, err := os.Stat(s.path(videoID))
	return err == nil
}

func (s *FileTranscriptStore) Save(record *core.TranscriptRecord) error {
	mu := s.locks.forKey(record.VideoID)
	mu.Lock()
	defer mu.Unlock()

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript record: %v", err)
	}
	if err := os.WriteFile(s.path(record.VideoID), data, 0644); err != nil {
		return fmt.Errorf("write transcript record: %v", err)
	}
	return nil
}

// Load reads the record for videoID. Files holding bare text instead of a
// JSON record are tolerated and served as a record with only FullText set.
func (s *FileTranscriptStore) Load(videoID string) (*core.TranscriptRecord, error) {
	mu := s.locks.forKey(videoID)
	mu.Lock()
	defer mu.Unlock()

	data, err := os.ReadFile(s.path(videoID))
	if err != nil {
		return nil, fmt.Errorf("read transcript record: %v", err)
	}

	content := strings.TrimSpace(string(data))
	if strings.HasPrefix(content, "{") {
		var record core.TranscriptRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("parse transcript record: %v", err)
		}
		if record.VideoID == "" {
			record.VideoID = videoID
		}
		return &record, nil
	}

	return &core.TranscriptRecord{VideoID: videoID, FullText: content}, nil
}

func (s *FileTranscriptStore) Count() int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			count++
		}
	}
	return count
}
