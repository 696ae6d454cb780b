package store

import "sync/atomic"

// Sequence hands out strictly increasing ids starting at 1. Ids are never
// reused, removing entities does not rewind it.
type Sequence struct {
	last atomic.Int64
}

func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

func (s *Sequence) Last() int64 {
	return s.last.Load()
}
