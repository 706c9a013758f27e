package ballista

import "context"

// A Session is a live link to a single executor, exclusively owned by the
// call which opened it for the duration of that call.
type Session interface {
	// FetchPartition retrieves the complete materialized content of exactly
	// one shuffle partition from the remote executor. The supplied Schema is
	// used to decode the wire payload.
	FetchPartition(ctx context.Context, jobID string, stageID int, partitionID int, schema Schema) ([]RecordBatch, error)
	// Close releases the underlying connection
	Close() error
}

// A ConnectionFactory adapts a stateless executor address into a live Session.
// Pooling or reuse of connections, if any, belongs to implementations.
type ConnectionFactory interface {
	Connect(host string, port int) (Session, error)
}
