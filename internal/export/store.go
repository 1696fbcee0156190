package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileStore writes artifacts to a local directory. BaseURL, when set, is used
// to build the URL embedded in result records; otherwise the file path is
// returned.
type FileStore struct {
	Dir     string
	BaseURL string
}

// NewFileStore creates the output directory if needed.
func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileStore{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Put stores one artifact and returns its URL or path.
func (s *FileStore) Put(key string, data []byte, contentType string) (string, error) {
	key = sanitizeKey(key)
	path := filepath.Join(s.Dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", key, err)
	}
	slog.Debug("artifact stored", slog.String("key", key), slog.String("type", contentType), slog.Int("bytes", len(data)))

	if s.BaseURL != "" {
		return s.BaseURL + "/" + key, nil
	}
	return path, nil
}

// sanitizeKey keeps artifact names filesystem-safe.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
