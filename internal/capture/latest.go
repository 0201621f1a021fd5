package capture

import "sync"

// LatestSlot holds the most recent assembled capture in memory.
// It is a single-value store with last-writer-wins semantics: the
// orchestrator replaces the value on every successful assembly, and
// readers only ever need the one most recent capture.
type LatestSlot struct {
	mu     sync.RWMutex
	latest *CapturedContext
}

// Set replaces the stored capture.
func (s *LatestSlot) Set(c *CapturedContext) {
	s.mu.Lock()
	s.latest = c
	s.mu.Unlock()
}

// Get returns the most recent capture, or nil if none was taken this run.
func (s *LatestSlot) Get() *CapturedContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
