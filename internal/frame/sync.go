package frame

import (
	"io"

	"github.com/serlab/serlog/internal/domain"
)

// DefaultSentinel is the start-of-record marker emitted by the
// firmware: four bytes of 0xFF.
var DefaultSentinel = []byte{0xFF, 0xFF, 0xFF, 0xFF}

// Synchronizer scans a byte stream for a fixed sentinel sequence.
// The sentinel is copied at construction and never mutated, so one
// synchronizer may be reused across sessions.
type Synchronizer struct {
	sentinel []byte
}

// NewSynchronizer returns a Synchronizer for the given sentinel.
func NewSynchronizer(sentinel []byte) (*Synchronizer, error) {
	if len(sentinel) == 0 {
		return nil, domain.ErrEmptySentinel
	}
	s := make([]byte, len(sentinel))
	copy(s, sentinel)
	return &Synchronizer{sentinel: s}, nil
}

// Sync consumes bytes from r one at a time until the sentinel has
// been observed contiguously, leaving r positioned exactly after the
// last sentinel byte. A byte that breaks a partial match resets the
// scan and is discarded; it is not re-tested against the first
// sentinel byte, so a marker whose prefix reappears mid-match can
// cost one extra byte before resynchronization. No partial-match
// state survives across calls.
//
// Any error from r, including a read timeout, is returned as-is.
func (s *Synchronizer) Sync(r io.Reader) error {
	var buf [1]byte
	index := 0
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return err
		}
		if buf[0] != s.sentinel[index] {
			index = 0
			continue
		}
		index++
		if index == len(s.sentinel) {
			return nil
		}
	}
}
