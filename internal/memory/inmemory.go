package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is a simple in-process turn log for local/dev use and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string][]TurnRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string][]TurnRecord)}
}

func (s *InMemoryStore) SaveTurn(_ context.Context, record TurnRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	s.records[record.SessionID] = append(s.records[record.SessionID], record)
	return nil
}

func (s *InMemoryStore) History(_ context.Context, sessionID string) ([]TurnRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	arr := s.records[sessionID]
	out := make([]TurnRecord, len(arr))
	copy(out, arr)
	return out, nil
}

func (s *InMemoryStore) RelevantHistory(_ context.Context, sessionID, message string, limit int) ([]TurnRecord, error) {
	token := RecallToken(message)
	if token == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultRecallLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	arr := s.records[sessionID]

	var out []TurnRecord
	for i := len(arr) - 1; i >= 0 && len(out) < limit; i-- {
		if strings.Contains(strings.ToLower(arr[i].Content), token) {
			out = append(out, arr[i])
		}
	}
	return out, nil
}

func (s *InMemoryStore) Close() error { return nil }
