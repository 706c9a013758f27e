// Package cluster provides the gRPC transport of Ballista: executor nodes
// which serve materialized shuffle partitions, and the connection factory
// used by plan nodes to fetch them.
package cluster

import (
	"fmt"

	"github.com/rolveb/ballista/logging"
)

// ExecutorOptions are options for an Executor node
type ExecutorOptions struct {
	Port int          // port for this Executor to bind to
	Host string       // hostname for this Executor to bind to
	Log  logging.Sink // sink for diagnostic records
}

func ensureDefaultExecutorOptionsValues(opts *ExecutorOptions) {
	// default certain options if not supplied
	if opts.Port == 0 {
		opts.Port = 50051
	}
	if len(opts.Host) == 0 {
		opts.Host = "0.0.0.0"
	}
	if opts.Log == nil {
		opts.Log = logging.CreateStdSink()
	}
}

// connectionString returns the bind address for this node
func (o *ExecutorOptions) connectionString() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}
