// Package domain contains the core entities and value objects for serlog.
//
// It has no dependencies on infrastructure concerns (serial ports, file
// system, logging) and contains only pure decode logic.
//
// # Entities
//
//   - [Record]: One decoded telemetry sample (timestamp, v1, v2)
//
// Records are immutable after construction and testable without mocks
// or external systems.
package domain
