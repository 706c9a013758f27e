package ballista

// BatchIterator is a finite, ordered, single-pass lazy sequence of
// RecordBatches, representing the full content of one partition. Ownership
// transfers to the caller on return - iterators are not safe for concurrent
// use, and cannot be restarted once exhausted.
type BatchIterator interface {
	HasNextBatch() bool
	NextBatch() (batch RecordBatch, err error)
	Schema() Schema
}
