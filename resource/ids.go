package resource

import "sync/atomic"

// IDSource hands out raw handles that are unique for its lifetime.
// The first handle is 1.
type IDSource struct {
	last atomic.Uint64
}

// Next returns a fresh handle.
func (s *IDSource) Next() uintptr {
	return uintptr(s.last.Add(1))
}

// Last returns the most recently issued handle, or 0.
func (s *IDSource) Last() uintptr {
	return uintptr(s.last.Load())
}
