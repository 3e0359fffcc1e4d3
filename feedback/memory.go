package feedback

import "sync"

// MemStore is an in-memory Store for tests and ephemeral runs.
type MemStore struct {
	mu    sync.Mutex
	state State
	set   bool
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load returns a copy of the stored state, or a fresh state when
// nothing has been saved yet.
func (m *MemStore) Load() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return NewState(), nil
	}
	return m.state.clone(), nil
}

// Save stores a copy of s.
func (m *MemStore) Save(s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s.clone()
	m.set = true
	return nil
}

// Reset discards any stored state.
func (m *MemStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{}
	m.set = false
}
