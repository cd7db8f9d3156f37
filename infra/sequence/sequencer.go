package sequence

import "sync/atomic"

// Sequencer generates strictly monotonic trade sequence numbers.
// It is deterministic and replay-safe: matching regenerates the same
// sequence on WAL replay as it produced live.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer starting from a given value.
// Fresh start: 0. After snapshot load or replay: the recovered value.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence number.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence number.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}

// Reset sets the sequencer to a specific value. Only used after
// snapshot load, before replay begins.
func (s *Sequencer) Reset(v uint64) {
	s.next.Store(v)
}
