package domain

import (
	"sync"
	"time"
)

// IDSource issues unique, monotonically increasing transaction identifiers.
//
// Identifiers are derived from the current time in milliseconds, matching
// the ids already present in stored ledgers, but are bumped past the last
// issued value so two creations within the same millisecond can never
// collide.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource creates an id source backed by the wall clock.
func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

// NewIDSourceAt creates an id source with a custom clock, for tests.
func NewIDSourceAt(now func() time.Time) *IDSource {
	return &IDSource{now: now}
}

// Next returns the next identifier.
func (s *IDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
