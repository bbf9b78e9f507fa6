package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/serlab/serlog/internal/domain"
)

func TestReadRecord_Decodes(t *testing.T) {
	tests := []struct {
		name    string
		payload [8]byte
		want    domain.Record
	}{
		{
			name:    "zero",
			payload: [8]byte{},
			want:    domain.Record{},
		},
		{
			name:    "golden",
			payload: [8]byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x02, 0x00},
			want:    domain.Record{Timestamp: 0, V1: 1, V2: 2},
		},
		{
			name:    "little endian weights",
			payload: [8]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
			want: domain.Record{
				Timestamp: 0x01 + 0x02*256 + 0x03*65536 + 0x04*16777216,
				V1:        0x05 + 0x06*256,
				V2:        0x07 + 0x08*256,
			},
		},
		{
			name:    "all bits set",
			payload: [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			want:    domain.Record{Timestamp: 0xFFFFFFFF, V1: 0xFFFF, V2: 0xFFFF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadRecord(bytes.NewReader(tt.payload[:]))
			if err != nil {
				t.Fatalf("ReadRecord: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadRecord = %+v, want %+v", got, tt.want)
			}

			// Round trip: re-encoding recovers the wire bytes.
			if wire := got.Wire(); wire != tt.payload {
				t.Errorf("Wire() = %v, want %v", wire, tt.payload)
			}
		})
	}
}

func TestReadRecord_ShortPayload(t *testing.T) {
	for n := 0; n < domain.WireSize; n++ {
		payload := make([]byte, n)
		_, err := ReadRecord(bytes.NewReader(payload))
		if !errors.Is(err, domain.ErrTruncatedRecord) {
			t.Errorf("ReadRecord with %d bytes = %v, want ErrTruncatedRecord", n, err)
		}
	}
}

// A timeout mid-payload must not look like the clean end-of-session
// timeout; the session has to fail loudly instead of silently dropping
// a partial frame.
func TestReadRecord_TimeoutMidPayloadIsTruncation(t *testing.T) {
	r := io.MultiReader(bytes.NewReader([]byte{0x01, 0x02, 0x03}), timeoutReader{})
	_, err := ReadRecord(r)
	if !errors.Is(err, domain.ErrTruncatedRecord) {
		t.Fatalf("ReadRecord = %v, want ErrTruncatedRecord", err)
	}
	if errors.Is(err, domain.ErrReadTimeout) {
		t.Errorf("ReadRecord error should not unwrap to ErrReadTimeout: %v", err)
	}
}

func TestRecordStream_GoldenFrame(t *testing.T) {
	stream, err := NewRecordStream(bytes.NewReader([]byte{
		0xFF, 0xFF, 0xFF, 0xFF,
		0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x02, 0x00,
	}), DefaultSentinel)
	if err != nil {
		t.Fatalf("NewRecordStream: %v", err)
	}

	line, err := stream.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if line != "0,1,2" {
		t.Errorf("Next = %q, want %q", line, "0,1,2")
	}
}

func TestRecordStream_ConsecutiveFramesInOrder(t *testing.T) {
	var wire []byte
	records := []domain.Record{
		{Timestamp: 1000, V1: 10, V2: 20},
		{Timestamp: 2000, V1: 30, V2: 40},
	}
	for _, rec := range records {
		w := rec.Wire()
		wire = append(wire, DefaultSentinel...)
		wire = append(wire, w[:]...)
	}

	stream, err := NewRecordStream(bytes.NewReader(wire), DefaultSentinel)
	if err != nil {
		t.Fatalf("NewRecordStream: %v", err)
	}

	for i, rec := range records {
		line, err := stream.Next()
		if err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
		if line != rec.CSV() {
			t.Errorf("Next #%d = %q, want %q", i, line, rec.CSV())
		}
	}
	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next after last frame = %v, want io.EOF", err)
	}
}

func TestRecordStream_TimeoutWhileHunting(t *testing.T) {
	stream, err := NewRecordStream(timeoutReader{}, DefaultSentinel)
	if err != nil {
		t.Fatalf("NewRecordStream: %v", err)
	}
	if _, err := stream.Next(); !errors.Is(err, domain.ErrReadTimeout) {
		t.Errorf("Next = %v, want ErrReadTimeout", err)
	}
}

func TestRecordStream_PartialFrameProducesNothing(t *testing.T) {
	// Sentinel matched, then the link goes quiet after three payload
	// bytes: no line, truncation error.
	wire := append(append([]byte{}, DefaultSentinel...), 0x0A, 0x0B, 0x0C)
	stream, err := NewRecordStream(io.MultiReader(bytes.NewReader(wire), timeoutReader{}), DefaultSentinel)
	if err != nil {
		t.Fatalf("NewRecordStream: %v", err)
	}

	line, err := stream.Next()
	if !errors.Is(err, domain.ErrTruncatedRecord) {
		t.Fatalf("Next = (%q, %v), want ErrTruncatedRecord", line, err)
	}
	if line != "" {
		t.Errorf("Next line = %q, want empty", line)
	}
}

func TestRecordCSV(t *testing.T) {
	rec := domain.Record{Timestamp: 4294967295, V1: 65535, V2: 0}
	if got := rec.CSV(); got != "4294967295,65535,0" {
		t.Errorf("CSV = %q, want %q", got, "4294967295,65535,0")
	}
}
