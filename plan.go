package ballista

import "context"

// PartitioningScheme identifies how the output rows of an ExecutionPlan are
// divided between its output partitions.
type PartitioningScheme int

const (
	// UnknownPartitioning indicates that rows are divided between partitions
	// in an unspecified way. Callers must not assume hash or range semantics.
	UnknownPartitioning PartitioningScheme = iota
	// HashPartitioning indicates that rows are assigned to partitions by key hash
	HashPartitioning
	// RoundRobinPartitioning indicates that rows are distributed evenly across partitions
	RoundRobinPartitioning
)

// Partitioning describes the output partitioning of an ExecutionPlan
type Partitioning struct {
	Scheme        PartitioningScheme
	NumPartitions int
}

// An ExecutionPlan is a composable node of a query's physical execution tree,
// exposing a uniform pull-based streaming contract. Plan nodes are immutable
// once constructed, and safe for unsynchronized concurrent reads - distinct
// partitions may be Executed concurrently from independent tasks.
type ExecutionPlan interface {
	// Schema returns the Schema of the batches this plan produces,
	// independent of partition index
	Schema() Schema
	// OutputPartitioning reports how this plan's output rows are divided
	// between its output partitions
	OutputPartitioning() Partitioning
	// Children returns the child plans of this plan, in order. Empty for leaves.
	Children() []ExecutionPlan
	// WithNewChildren returns a copy of this plan with its children replaced
	WithNewChildren(children []ExecutionPlan) (ExecutionPlan, error)
	// Execute produces the content of a single output partition as a
	// finite, single-pass BatchIterator
	Execute(ctx context.Context, partition int) (BatchIterator, error)
}
