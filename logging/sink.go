package logging

import (
	"fmt"
	"log"
)

// A Sink accepts diagnostic log records from plan nodes and cluster
// components. Sinks are injected rather than global, so tests can substitute
// a capturing implementation. A Sink must never fail the caller.
type Sink interface {
	Log(level int, source string, format string, args ...interface{})
}

type stdSink struct{}

// CreateStdSink returns a Sink which writes through the standard log package
func CreateStdSink() Sink {
	return &stdSink{}
}

// Log writes a single diagnostic record to the standard logger
func (s *stdSink) Log(level int, source string, format string, args ...interface{}) {
	log.Printf("%s: level [%s]: %s", source, LogLevelToString(level), fmt.Sprintf(format, args...))
}

type nullSink struct{}

// CreateNullSink returns a Sink which discards all records
func CreateNullSink() Sink {
	return &nullSink{}
}

// Log discards the given diagnostic record
func (s *nullSink) Log(level int, source string, format string, args ...interface{}) {}
