// Package testing contains helpers for testing Ballista against real,
// localhost-based clusters.
package testing

import (
	"fmt"
	"sync"
)

// LogRecord is a single diagnostic record captured by a CaptureSink
type LogRecord struct {
	Level   int
	Source  string
	Message string
}

// CaptureSink is a logging.Sink which records diagnostics so tests can make
// assertions about them. Safe for concurrent use.
type CaptureSink struct {
	lock    sync.Mutex
	records []LogRecord
}

// CreateCaptureSink is a factory for CaptureSinks
func CreateCaptureSink() *CaptureSink {
	return &CaptureSink{records: make([]LogRecord, 0)}
}

// Log records a single diagnostic message
func (s *CaptureSink) Log(level int, source string, format string, args ...interface{}) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.records = append(s.records, LogRecord{
		Level:   level,
		Source:  source,
		Message: fmt.Sprintf(format, args...),
	})
}

// Records returns a copy of everything logged so far
func (s *CaptureSink) Records() []LogRecord {
	s.lock.Lock()
	defer s.lock.Unlock()
	records := make([]LogRecord, len(s.records))
	copy(records, s.records)
	return records
}
