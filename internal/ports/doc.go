// Package ports defines the interfaces that connect the session
// driver to infrastructure adapters.
//
// # Port Interfaces
//
//   - [ByteSource]: Blocking byte reads from the serial link
//   - [Producer]: Produces one unit of output text per call
//   - [Sink]: Appends lines to the output file
//
// The session driver depends only on these interfaces; concrete
// implementations live under internal/adapters (serial port, log
// file) and internal/frame (record and line producers). This keeps
// the loop testable with in-memory sources and sinks.
package ports
