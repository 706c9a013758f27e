// Package plan contains Ballista's physical execution plan nodes.
package plan

import (
	"context"
	"fmt"

	"github.com/rolveb/ballista"
	"github.com/rolveb/ballista/batch"
	"github.com/rolveb/ballista/errors"
	"github.com/rolveb/ballista/logging"
)

const shuffleReaderSource = "ShuffleReader"

// shuffleReader is a leaf ExecutionPlan which reads shuffle partitions that
// have already been materialized by upstream executors. It holds one
// PartitionLocation per output partition, and adapts each Execute call into a
// single fetch against the executor named by that location.
type shuffleReader struct {
	locations   []ballista.PartitionLocation
	schema      ballista.Schema
	connections ballista.ConnectionFactory
	log         logging.Sink
}

// CreateShuffleReader constructs a ShuffleReader plan node from the partition
// locations produced by the scheduler for an upstream stage. Performs no I/O -
// the named executors are only contacted during Execute. A nil log sink
// defaults to the standard logger.
func CreateShuffleReader(locations []ballista.PartitionLocation, schema ballista.Schema, connections ballista.ConnectionFactory, log logging.Sink) (ballista.ExecutionPlan, error) {
	if schema == nil || schema.NumColumns() == 0 {
		return nil, fmt.Errorf("ShuffleReader requires a non-empty schema")
	}
	if connections == nil {
		return nil, fmt.Errorf("ShuffleReader requires a ConnectionFactory")
	}
	if log == nil {
		log = logging.CreateStdSink()
	}
	return &shuffleReader{
		locations:   locations,
		schema:      schema,
		connections: connections,
		log:         log,
	}, nil
}

// Schema returns the Schema of the batches this plan produces, independent of
// partition index
func (s *shuffleReader) Schema() ballista.Schema {
	return s.schema
}

// OutputPartitioning reports one output partition per known location. The
// scheme is opaque - the upstream stage decided how rows were divided.
func (s *shuffleReader) OutputPartitioning() ballista.Partitioning {
	return ballista.Partitioning{
		Scheme:        ballista.UnknownPartitioning,
		NumPartitions: len(s.locations),
	}
}

// Children returns no children - a ShuffleReader is always a leaf
func (s *shuffleReader) Children() []ballista.ExecutionPlan {
	return []ballista.ExecutionPlan{}
}

// WithNewChildren always fails - grafting children onto a leaf indicates a
// planner bug, and must surface immediately
func (s *shuffleReader) WithNewChildren(children []ballista.ExecutionPlan) (ballista.ExecutionPlan, error) {
	return nil, errors.UnsupportedOperationError{Operation: "WithNewChildren"}
}

// Execute fetches the materialized content of one shuffle partition from the
// executor which holds it, as a single-pass BatchIterator. Connection and
// fetch failures surface as ExecutionErrors; no retries are attempted here.
func (s *shuffleReader) Execute(ctx context.Context, partition int) (ballista.BatchIterator, error) {
	s.log.Log(logging.InfoLevel, shuffleReaderSource, "executing shuffle read for partition %d", partition)
	if partition < 0 || partition >= len(s.locations) {
		return nil, errors.PartitionOutOfRangeError{Partition: partition, NumPartitions: len(s.locations)}
	}
	location := s.locations[partition]
	session, err := s.connections.Connect(location.Executor.Host, location.Executor.Port)
	if err != nil {
		return nil, errors.ExecutionError{Source: shuffleReaderSource, Cause: err}
	}
	defer session.Close()
	batches, err := session.FetchPartition(ctx, location.Partition.JobID, location.Partition.StageID, partition, s.schema)
	if err != nil {
		return nil, errors.ExecutionError{Source: shuffleReaderSource, Cause: err}
	}
	return batch.CreateBatchIterator(batches, s.schema, 0), nil
}
