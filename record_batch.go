package ballista

// A RecordBatch is an immutable, column-oriented chunk of rows conforming to a
// Schema. Batches are produced by executors and are never mutated locally -
// Slice returns a fresh batch sharing no mutable state with its source.
type RecordBatch interface {
	Schema() Schema                                 // Schema returns the Schema this batch conforms to
	NumRows() int                                   // NumRows retrieves the number of rows in this batch
	Slice(numRows int) (RecordBatch, error)         // Slice returns a new batch containing the first numRows rows of this one
	GetBoolColumn(colName string) ([]bool, error)   // GetBoolColumn retrieves the data for a bool column
	GetInt32Column(colName string) ([]int32, error) // GetInt32Column retrieves the data for an int32 column
	GetInt64Column(colName string) ([]int64, error) // GetInt64Column retrieves the data for an int64 column
	GetUint64Column(colName string) ([]uint64, error)
	GetFloat64Column(colName string) ([]float64, error)
	GetStringColumn(colName string) ([]string, error)
}

// A BuildableBatch is a RecordBatch under construction. Used in the
// implementation of executors and test fixtures. All columns in the Schema
// must be populated, with identical lengths, before the batch is used.
type BuildableBatch interface {
	RecordBatch
	SetBoolColumn(colName string, data []bool) error
	SetInt32Column(colName string, data []int32) error
	SetInt64Column(colName string, data []int64) error
	SetUint64Column(colName string, data []uint64) error
	SetFloat64Column(colName string, data []float64) error
	SetStringColumn(colName string, data []string) error
}
