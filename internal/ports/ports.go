package ports

import "io"

// ByteSource abstracts the serial link: blocking reads bounded by the
// port's configured read timeout. Implementations surface a timeout
// as domain.ErrReadTimeout.
type ByteSource interface {
	io.Reader
	io.Closer
}

// Producer yields one unit of output text per call. It returns
// domain.ErrReadTimeout (or io.EOF) when the stream has gone quiet,
// and any other error when the unit could not be produced.
type Producer interface {
	Next() (string, error)
}

// Sink is the output file: one line appended per call, closed exactly
// once at the end of the session.
type Sink interface {
	WriteLine(line string) error
	Close() error
}
