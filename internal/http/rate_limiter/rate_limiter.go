// Package rate_limiter throttles request bursts per client IP. Mobile
// clients retry aggressively on flaky connections, so the burst allowance
// is deliberately generous and the cleanup window short.
package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Store hands out one token-bucket limiter per client IP.
type Store struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
}

func NewStore(rps float64, burst int) *Store {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &Store{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

// Visitor returns the limiter for ip, creating one on first sight.
func (s *Store) Visitor(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[ip]
	if !ok {
		limiter := rate.NewLimiter(s.rps, s.burst)
		s.clients[ip] = &client{limiter, time.Now()}
		return limiter
	}

	c.lastSeen = time.Now()
	return c.limiter
}

// StartCleanupLoop drops limiters for clients idle longer than five
// minutes. Run it in its own goroutine.
func (s *Store) StartCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		s.mu.Lock()
		for ip, c := range s.clients {
			if time.Since(c.lastSeen) > 5*time.Minute {
				delete(s.clients, ip)
			}
		}
		s.mu.Unlock()
	}
}

// Reset discards every tracked client. Used between tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = make(map[string]*client)
}
