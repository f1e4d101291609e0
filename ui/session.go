package ui

import "sync"

// Session keys for once-per-run prompts
const (
	KeyFullscreenPrompt = "fullscreenPrompt"
	KeyHardwareAlert    = "hardwareAlertShown"
)

// Session remembers which one-shot prompts were already shown this run
type Session struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{seen: make(map[string]bool)}
}

// Once returns true the first time it is called for key
func (s *Session) Once(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	return true
}

// Seen reports whether key was marked
func (s *Session) Seen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[key]
}
