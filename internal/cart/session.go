package cart

import "sync"

// SessionStore keeps one active cart per owner. Carts are ephemeral and
// never persisted; a completed or abandoned checkout drops the entry.
type SessionStore struct {
	mu    sync.Mutex
	carts map[int]*Cart
}

func NewSessionStore() *SessionStore {
	return &SessionStore{carts: make(map[int]*Cart)}
}

// Get returns the owner's cart, creating one on first use.
func (s *SessionStore) Get(ownerID int, catalog Catalog) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[ownerID]
	if !ok {
		c = New(catalog)
		s.carts[ownerID] = c
	}
	return c
}

// Drop discards the owner's cart entirely.
func (s *SessionStore) Drop(ownerID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, ownerID)
}
