package memory

import (
	"time"

	"edu-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionStateRepository keeps volatile per-session state (pagination
// cursor, rolling history, progress counters) in process memory.
type SessionStateRepository struct {
	cache *cache.Cache
}

func NewSessionStateRepository() *SessionStateRepository {
	// Default expiration of 1 hour, purge of expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionStateRepository{
		cache: c,
	}
}

func (r *SessionStateRepository) Save(state *store.SessionState) {
	r.cache.Set(state.ID, state, cache.DefaultExpiration)
}

func (r *SessionStateRepository) Get(sessionID string) (*store.SessionState, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.SessionState), true
	}
	return nil, false
}

// LoadOrCreate returns the existing state for the session or a fresh one.
func (r *SessionStateRepository) LoadOrCreate(sessionID string) *store.SessionState {
	if state, found := r.Get(sessionID); found {
		return state
	}
	state := &store.SessionState{ID: sessionID}
	r.Save(state)
	return state
}

func (r *SessionStateRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
