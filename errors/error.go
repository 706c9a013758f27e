package errors

import (
	"fmt"
)

// UnsupportedOperationError occurs when an operation is invoked on a plan node
// which does not support it, indicating a planner bug
type UnsupportedOperationError struct{ Operation string }

// Error returns a textual representation of this UnsupportedOperationError
func (e UnsupportedOperationError) Error() string {
	return fmt.Sprintf("Operation %s is not supported by this plan node", e.Operation)
}

// PartitionOutOfRangeError occurs when Execute is called with a partition
// index outside the range declared by the plan node
type PartitionOutOfRangeError struct {
	Partition     int
	NumPartitions int
}

// Error returns a textual representation of this PartitionOutOfRangeError
func (e PartitionOutOfRangeError) Error() string {
	return fmt.Sprintf("Partition index %d is out of range for plan with %d output partitions", e.Partition, e.NumPartitions)
}

// ConnectError occurs when a Session to a remote executor cannot be established
type ConnectError struct {
	Address string
	Cause   error
}

// Error returns a textual representation of this ConnectError
func (e ConnectError) Error() string {
	return fmt.Sprintf("Unable to connect to executor at %s: %v", e.Address, e.Cause)
}

// Unwrap returns the underlying cause of this ConnectError
func (e ConnectError) Unwrap() error {
	return e.Cause
}

// FetchError occurs when a remote executor fails to supply a shuffle
// partition, including remote-reported execution failures
type FetchError struct {
	JobID       string
	StageID     int
	PartitionID int
	Cause       error
}

// Error returns a textual representation of this FetchError
func (e FetchError) Error() string {
	return fmt.Sprintf("Unable to fetch partition %s/%d/%d: %v", e.JobID, e.StageID, e.PartitionID, e.Cause)
}

// Unwrap returns the underlying cause of this FetchError
func (e FetchError) Unwrap() error {
	return e.Cause
}

// ChecksumError occurs when a transferred batch payload does not match its checksum
type ChecksumError struct {
	Expected uint64
	Actual   uint64
}

// Error returns a textual representation of this ChecksumError
func (e ChecksumError) Error() string {
	return fmt.Sprintf("Batch payload checksum %x does not match expected %x", e.Actual, e.Expected)
}

// ExecutionError is the uniform error surfaced by ExecutionPlan.Execute,
// wrapping any connection or fetch failure with the originating component
type ExecutionError struct {
	Source string
	Cause  error
}

// Error returns a textual representation of this ExecutionError
func (e ExecutionError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Source, e.Cause)
}

// Unwrap returns the underlying cause of this ExecutionError
func (e ExecutionError) Unwrap() error {
	return e.Cause
}

// NoMoreBatchesError occurs when there are no more batches in a BatchIterator
type NoMoreBatchesError struct{}

// Error returns a textual representation of this NoMoreBatchesError
func (e NoMoreBatchesError) Error() string {
	return "No more batches"
}
