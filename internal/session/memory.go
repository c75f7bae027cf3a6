package session

import (
	"net/http"
	"sync"
	"time"

	"uiventures-tps/internal/models"
)

// sweepEvery bounds how often Save walks the whole map for expired entries.
const sweepEvery = time.Minute

type memoryEntry struct {
	user    models.User
	created time.Time
}

// MemoryStore keeps sessions in process memory. Sessions do not survive a
// restart and are not shared between instances. Entries older than maxAge
// are treated as absent and swept on a later Save.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	cookie    idCookie
	maxAge    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryStore(cookieName string, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:   make(map[string]memoryEntry),
		cookie:    idCookie{name: cookieName, maxAge: maxAge},
		maxAge:    maxAge,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (s *MemoryStore) Load(r *http.Request) (models.User, bool, error) {
	id := s.cookie.read(r)
	if id == "" {
		return models.User{}, false, nil
	}

	s.mu.RLock()
	e, ok := s.entries[id]
	expired := ok && s.expired(e, s.now())
	s.mu.RUnlock()
	if !ok || expired {
		return models.User{}, false, nil
	}
	return e.user, true, nil
}

func (s *MemoryStore) Save(w http.ResponseWriter, r *http.Request, user models.User) error {
	id, err := newSessionID()
	if err != nil {
		return err
	}

	s.mu.Lock()
	now := s.now()
	if old := s.cookie.read(r); old != "" {
		delete(s.entries, old)
	}
	s.sweep(now)
	s.entries[id] = memoryEntry{user: user, created: now}
	s.mu.Unlock()

	s.cookie.write(w, id)
	return nil
}

func (s *MemoryStore) Clear(w http.ResponseWriter, r *http.Request) error {
	if id := s.cookie.read(r); id != "" {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
	}
	s.cookie.expire(w)
	return nil
}

// Put stores user under a fixed id and returns the cookie that selects it.
func (s *MemoryStore) Put(id string, user models.User) *http.Cookie {
	s.mu.Lock()
	s.entries[id] = memoryEntry{user: user, created: s.now()}
	s.mu.Unlock()
	return &http.Cookie{Name: s.cookie.name, Value: id}
}

func (s *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return now.Sub(e.created) > s.maxAge
}

// sweep drops expired entries. Callers hold mu for writing.
func (s *MemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepEvery {
		return
	}
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
		}
	}
	s.lastSweep = now
}

func (s *MemoryStore) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
