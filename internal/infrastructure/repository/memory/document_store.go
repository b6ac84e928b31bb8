package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitchside/leaguedesk/internal/domain/document"
)

// DocumentStore keeps the two documents in process memory. Used by tests and
// as a throwaway dev backend; a restart loses everything.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string][]byte)}
}

func (s *DocumentStore) ReadDocument(_ context.Context, name string) ([]byte, error) {
	if !document.KnownName(name) {
		return nil, fmt.Errorf("unknown document %q", name)
	}

	s.mu.RLock()
	payload, ok := s.docs[name]
	s.mu.RUnlock()
	if ok {
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if payload, ok := s.docs[name]; ok {
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	}
	s.docs[name] = append([]byte(nil), document.EmptyArray...)

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
	s.docs[name] = append([]byte(nil), payload...)
	s.mu.Unlock()

	return nil
}
