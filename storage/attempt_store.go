package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttemptStore tracks how many quiz generations have run per video. The
// count only ever grows; it picks the question style for repeat attempts.
type AttemptStore interface {
	Get(videoID string) (int, error)
	Increment(videoID string) error
}

// ---------------- File implementation (default) ----------------

// FileAttemptStore keeps all counters in a single JSON map on disk. Each
// increment is a read-modify-write under a striped lock; concurrent
// increments for different stripes can still interleave on the shared file,
// which keeps the original best-effort, last-write-wins behavior.
type FileAttemptStore struct {
	path  string
	locks stripedLocks
}

func NewFileAttemptStore(path string) (*FileAttemptStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create attempt store dir: %v", err)
	}
	return &FileAttemptStore{path: path}, nil
}

// load reads the counter map, treating a missing or corrupt file as empty.
func (s *FileAttemptStore) load() map[string]int {
	meta := map[string]int{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return meta
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return map[string]int{}
	}
	return meta
}

func (s *FileAttemptStore) save(meta map[string]int) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *FileAttemptStore) Get(videoID string) (int, error) {
	mu := s.locks.forKey(videoID)
	mu.Lock()
	defer mu.Unlock()
	return s.load()[videoID], nil
}

func (s *FileAttemptStore) Increment(videoID string) error {
	mu := s.locks.forKey(videoID)
	mu.Lock()
	defer mu.Unlock()

	meta := s.load()
	meta[videoID]++
	if err := s.save(meta); err != nil {
		return fmt.Errorf("save attempt counter: %v", err)
	}
	return nil
}

// ---------------- Postgres implementation ----------------

// PostgresAttemptStore is the transactional alternative for deployments that
// care about lost increments under concurrency. Selected with STORE=postgres.
type PostgresAttemptStore struct {
	pool *pgxpool.Pool
}

func NewPostgresAttemptStore(ctx context.Context, url string) (*PostgresAttemptStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %v", err)
	}

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS quiz_attempts (
		video_id TEXT PRIMARY KEY,
		attempts INT NOT NULL DEFAULT 0
	)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create quiz_attempts table: %v", err)
	}

	return &PostgresAttemptStore{pool: pool}, nil
}

func (s *PostgresAttemptStore) Get(videoID string) (int, error) {
	var attempts int
	err := s.pool.QueryRow(context.Background(),
		`SELECT attempts FROM quiz_attempts WHERE video_id = $1`, videoID).Scan(&attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read attempt counter: %v", err)
	}
	return attempts, nil
}

func (s *PostgresAttemptStore) Increment(videoID string) error {
	_, err := s.pool.Exec(context.Background(),
		`INSERT INTO quiz_attempts (video_id, attempts) VALUES ($1, 1)
		 ON CONFLICT (video_id) DO UPDATE SET attempts = quiz_attempts.attempts + 1`, videoID)
	if err != nil {
		return fmt.Errorf("increment attempt counter: %v", err)
	}
	return nil
}

func (s *PostgresAttemptStore) Close() {
	s.pool.Close()
}
