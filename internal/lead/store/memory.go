// internal/lead/store/memory.go
package store

import (
	"context"
	"sync"

	"lead-assistant/internal/models"
)

// MemoryStore keeps records in process memory. Records are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*models.LeadData
	keys    *keyedMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*models.LeadData),
		keys:    newKeyedMutex(),
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.LeadData, error) {
	sessionID = normalizeSessionID(sessionID)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[sessionID].Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, sessionID string, fn UpdateFunc) (*models.LeadData, error) {
	sessionID = normalizeSessionID(sessionID)

	unlock := s.keys.lock(sessionID)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	current := s.records[sessionID].Clone()
	s.mu.RUnlock()

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if next == nil {
		next = &models.LeadData{}
	}

	s.mu.Lock()
	s.records[sessionID] = next.Clone()
	s.mu.Unlock()

	return next.Clone(), nil
}

func (s *MemoryStore) Reset(_ context.Context, sessionID string) error {
	sessionID = normalizeSessionID(sessionID)

	unlock := s.keys.lock(sessionID)
	defer unlock()

	s.mu.Lock()
	delete(s.records, sessionID)
	s.mu.Unlock()
	return nil
}

// Len reports how many sessions hold a record.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
