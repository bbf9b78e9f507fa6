package domain

import (
	"encoding/binary"
	"fmt"
)

// WireSize is the number of payload bytes that follow the sentinel
// on the serial link.
const WireSize = 8

// Record is one decoded telemetry sample. It is constructed once per
// successful decode, rendered to text and discarded; no relationship
// to prior or later records is tracked.
type Record struct {
	// Timestamp is the device clock in microseconds. It wraps at 2^32.
	Timestamp uint32

	// V1 and V2 are the two sampled channel values.
	V1 uint16
	V2 uint16
}

// DecodeRecord interprets an 8-byte little-endian payload as a Record.
// All bit patterns are valid; no range checking is performed.
func DecodeRecord(payload [WireSize]byte) Record {
	return Record{
		Timestamp: binary.LittleEndian.Uint32(payload[0:4]),
		V1:        binary.LittleEndian.Uint16(payload[4:6]),
		V2:        binary.LittleEndian.Uint16(payload[6:8]),
	}
}

// Wire returns the record in its on-wire form, little-endian.
func (r Record) Wire() [WireSize]byte {
	var b [WireSize]byte
	binary.LittleEndian.PutUint32(b[0:4], r.Timestamp)
	binary.LittleEndian.PutUint16(b[4:6], r.V1)
	binary.LittleEndian.PutUint16(b[6:8], r.V2)
	return b
}

// CSV renders the record as "timestamp,v1,v2" in decimal with no
// padding and no trailing characters.
func (r Record) CSV() string {
	return fmt.Sprintf("%d,%d,%d", r.Timestamp, r.V1, r.V2)
}
