package batch

import (
	"github.com/rolveb/ballista"
	"github.com/rolveb/ballista/errors"
)

type batchIterator struct {
	schema    ballista.Schema
	batches   []ballista.RecordBatch
	next      int
	remaining int
	capped    bool
}

// CreateBatchIterator wraps a finite collection of in-memory RecordBatches in
// a single-pass BatchIterator. A positive rowLimit caps the total number of
// rows yielded, truncating the final batch if necessary; a rowLimit of zero
// or less yields every row.
func CreateBatchIterator(batches []ballista.RecordBatch, schema ballista.Schema, rowLimit int) ballista.BatchIterator {
	return &batchIterator{
		schema:    schema,
		batches:   batches,
		remaining: rowLimit,
		capped:    rowLimit > 0,
	}
}

// HasNextBatch returns true iff this iterator can produce another RecordBatch
func (bi *batchIterator) HasNextBatch() bool {
	return bi.next < len(bi.batches) && (!bi.capped || bi.remaining > 0)
}

// NextBatch returns the next RecordBatch, or a NoMoreBatchesError if the
// iterator is exhausted
func (bi *batchIterator) NextBatch() (ballista.RecordBatch, error) {
	if !bi.HasNextBatch() {
		return nil, errors.NoMoreBatchesError{}
	}
	b := bi.batches[bi.next]
	bi.next++
	if bi.capped && b.NumRows() > bi.remaining {
		sliced, err := b.Slice(bi.remaining)
		if err != nil {
			return nil, err
		}
		b = sliced
	}
	if bi.capped {
		bi.remaining -= b.NumRows()
	}
	return b, nil
}

// Schema returns the Schema shared by all batches in this iterator
func (bi *batchIterator) Schema() ballista.Schema {
	return bi.schema
}
