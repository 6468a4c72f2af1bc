package market

import (
	"net/http"
	"sync"
	"time"
)

// Session owns the pooled HTTP client shared by every command. The client is
// created on first use and released by Close; a later request opens a new one.
type Session struct {
	mu      sync.Mutex
	timeout time.Duration
	client  *http.Client
}

// NewSession returns a session whose client applies timeout to every request.
func NewSession(timeout time.Duration) *Session {
	return &Session{timeout: timeout}
}

// Ensure returns the pooled client, creating it on the first call.
func (s *Session) Ensure() *http.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		s.client = &http.Client{
			Timeout:   s.timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}
	return s.client
}

// Open reports whether a client currently exists.
func (s *Session) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}

// Close releases pooled connections. It is safe to call repeatedly or before
// the session was ever used.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return
	}
	s.client.CloseIdleConnections()
	s.client = nil
}

// Do sends req through the pooled client.
func (s *Session) Do(req *http.Request) (*http.Response, error) {
	return s.Ensure().Do(req)
}
