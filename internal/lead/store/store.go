// internal/lead/store/store.go
package store

import (
	"context"
	"errors"
	"sync"

	"lead-assistant/internal/models"
)

// DefaultSessionID is used when a caller does not identify its session, which
// keeps a single shared lead for simple deployments.
const DefaultSessionID = "current"

var (
	ErrStoreUnavailable = errors.New("LEAD_STORE_FAILED")
)

// UpdateFunc receives a private copy of the current record and returns the
// record to store. Returning an error leaves the stored record untouched.
type UpdateFunc func(current *models.LeadData) (*models.LeadData, error)

// Store keeps one lead record per session. Updates to the same session are
// serialized; different sessions never block each other.
type Store interface {
	// Get returns a copy of the session's record, or an empty record if the
	// session is unknown.
	Get(ctx context.Context, sessionID string) (*models.LeadData, error)
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (*models.LeadData, error)
	Reset(ctx context.Context, sessionID string) error
}

func normalizeSessionID(sessionID string) string {
	if sessionID == "" {
		return DefaultSessionID
	}
	return sessionID
}

// keyedMutex hands out one mutex per key and forgets it once nobody holds it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyLock)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
