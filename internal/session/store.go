package session

import "sync"

// Store maps session ids to sessions and serializes mutation per id.
// Sessions are created on first access and live for the process lifetime;
// there is no global lock, so turns on different sessions never contend.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	mu sync.Mutex
	s  *Session
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

// Do runs fn with the session for id while holding that session's lock.
// All reads and writes of session state happen inside fn, so a sequence
// like record-answers-then-begin-remediation is atomic with respect to
// other turns on the same session. fn must not call back into the Store.
func (st *Store) Do(id string, fn func(*Session) error) error {
	e := st.get(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) get(id string) *entry {
	st.mu.RLock()
	e, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return e
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if e, ok := st.sessions[id]; ok {
		return e
	}
	e = &entry{s: newSession(id)}
	st.sessions[id] = e
	return e
}
