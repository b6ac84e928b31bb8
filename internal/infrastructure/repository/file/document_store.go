package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pitchside/leaguedesk/internal/domain/document"
	"github.com/pitchside/leaguedesk/internal/platform/logging"
)

// DocumentStore persists each document as one JSON file under a data
// directory. A write lands in a temp file first and is renamed into place,
// so readers never observe a half-written document.
type DocumentStore struct {
	dir    string
	logger *logging.Logger

	mu sync.Mutex
}

func NewDocumentStore(dir string, logger *logging.Logger) (*DocumentStore, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}

	return &DocumentStore{dir: dir, logger: logger}, nil
}

func (s *DocumentStore) ReadDocument(ctx context.Context, name string) ([]byte, error) {
	if !document.KnownName(name) {
		return nil, fmt.Errorf("unknown document %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(name)
	payload, err := os.ReadFile(path)
	if err == nil {
		return payload, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read document %s: %w", name, err)
	}

	if err := s.replaceLocked(name, document.EmptyArray); err != nil {
		return nil, fmt.Errorf("initialize document %s: %w", name, err)
	}
	s.logger.InfoContext(ctx, "document initialized", "document", name, "path", path)

	return append([]byte(nil), document.EmptyArray...), nil
}

func (s *DocumentStore) WriteDocument(_ context.Context, name string, payload []byte) error {
	if !document.KnownName(name) {
		return fmt.Errorf("unknown document %q", name)
	}
	if len(payload) == 0 {
		return fmt.Errorf("document %q payload is empty", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.replaceLocked(name, payload); err != nil {
		return fmt.Errorf("write document %s: %w", name, err)
	}

	return nil
}

func (s *DocumentStore) replaceLocked(name string, payload []byte) error {
	path := s.path(name)

	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}

func (s *DocumentStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
