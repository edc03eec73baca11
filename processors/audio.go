package processors

import (
	"crypto/rand"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// minAudioBytes is the smallest download we accept; anything below this is
// treated as a truncated or failed fetch.
const minAudioBytes = 20000

// AudioDownloader fetches a locally playable audio file for a source URL.
type AudioDownloader interface {
	Download(sourceURL string) (string, error)
}

// YtDlpDownloader shells out to yt-dlp to extract the audio track as mp3.
type YtDlpDownloader struct{}

func newDownloadID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%x", b)
}

func (d YtDlpDownloader) Download(sourceURL string) (string, error) {
	fileID := newDownloadID()
	outputTemplate := filepath.Join(os.TempDir(), fileID+".%(ext)s")
	finalPath := filepath.Join(os.TempDir(), fileID+".mp3")

	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192K",

		// YouTube intermittently returns 403 without these.
		"--user-agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
		"--referer", "https://www.youtube.com/",
		"--force-ipv4",
		"--no-playlist",

		"-o", outputTemplate,
		sourceURL,
	}

	cmd := exec.Command("yt-dlp", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %v", err)
	}

	info, err := os.Stat(finalPath)
	if err != nil || info.Size() < minAudioBytes {
		return "", fmt.Errorf("downloaded audio is invalid")
	}

	return finalPath, nil
}

// MockDownloader writes a fixed-size placeholder file. Used in tests and
// when running without external tools.
type MockDownloader struct {
	Calls int
}

func (d *MockDownloader) Download(sourceURL string) (string, error) {
	d.Calls++
	path := filepath.Join(os.TempDir(), newDownloadID()+".mp3")
	if err := os.WriteFile(path, make([]byte, minAudioBytes), 0644); err != nil {
		return "", err
	}
	return path, nil
}
