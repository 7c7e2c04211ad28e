package browse

// Sequencer tags outgoing requests so that only the response to the most
// recently issued request is applied. It is owned by a single goroutine (the
// Bubble Tea update loop) and needs no locking.
type Sequencer struct {
	latest uint64
}

// Next issues a new sequence number, superseding every earlier one
func (s *Sequencer) Next() uint64 {
	s.latest++
	return s.latest
}

// IsLatest reports whether seq is the most recently issued number
func (s Sequencer) IsLatest(seq uint64) bool {
	return seq != 0 && seq == s.latest
}

// Latest returns the most recently issued number (0 before the first request)
func (s Sequencer) Latest() uint64 {
	return s.latest
}
