package frame

import (
	"fmt"
	"io"

	"github.com/serlab/serlog/internal/domain"
)

// ReadRecord reads exactly the 8 payload bytes that follow a matched
// sentinel and decodes them into a Record. It must only be called
// after a successful Sync.
//
// A stream that errors or times out before all 8 bytes arrive yields
// ErrTruncatedRecord; the bytes already consumed are not replayed and
// no partial record is produced.
func ReadRecord(r io.Reader) (domain.Record, error) {
	var payload [domain.WireSize]byte
	if _, err := io.ReadFull(r, payload[:]); err != nil {
		return domain.Record{}, fmt.Errorf("%w: %v", domain.ErrTruncatedRecord, err)
	}
	return domain.DecodeRecord(payload), nil
}

// RecordStream produces one CSV line per wire frame: it synchronizes
// on the sentinel, then decodes the fixed-size payload.
type RecordStream struct {
	sync *Synchronizer
	r    io.Reader
}

// NewRecordStream returns a RecordStream reading frames from r.
func NewRecordStream(r io.Reader, sentinel []byte) (*RecordStream, error) {
	s, err := NewSynchronizer(sentinel)
	if err != nil {
		return nil, err
	}
	return &RecordStream{sync: s, r: r}, nil
}

// Next blocks until one full frame has been read and returns its CSV
// form. A timeout while hunting for the sentinel surfaces unchanged
// (the caller decides whether that ends the session cleanly); a
// timeout mid-payload surfaces as ErrTruncatedRecord.
func (s *RecordStream) Next() (string, error) {
	if err := s.sync.Sync(s.r); err != nil {
		return "", err
	}
	rec, err := ReadRecord(s.r)
	if err != nil {
		return "", err
	}
	return rec.CSV(), nil
}
