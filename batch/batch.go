// Package batch provides the column-oriented RecordBatch implementation used
// by Ballista plan nodes, along with serialization and iteration utilities.
package batch

import (
	"fmt"

	"github.com/rolveb/ballista"
)

// recordBatch is a column-oriented chunk of rows. Column data is stored as
// typed slices keyed by column name.
type recordBatch struct {
	schema  ballista.Schema
	numRows int
	cols    map[string]interface{}
}

// CreateBatch returns an empty BuildableBatch conforming to the given Schema.
// Every column in the Schema must be populated, with identical lengths,
// before the batch is used as a RecordBatch.
func CreateBatch(schema ballista.Schema) ballista.BuildableBatch {
	return &recordBatch{
		schema:  schema,
		numRows: -1,
		cols:    make(map[string]interface{}),
	}
}

// Schema returns the Schema this batch conforms to
func (b *recordBatch) Schema() ballista.Schema {
	return b.schema
}

// NumRows retrieves the number of rows in this batch
func (b *recordBatch) NumRows() int {
	if b.numRows < 0 {
		return 0
	}
	return b.numRows
}

// Slice returns a new batch containing the first numRows rows of this one.
// Column data is copied, so the source batch is never aliased.
func (b *recordBatch) Slice(numRows int) (ballista.RecordBatch, error) {
	if numRows < 0 || numRows > b.NumRows() {
		return nil, fmt.Errorf("Cannot slice %d rows from batch with %d rows", numRows, b.NumRows())
	}
	sliced := &recordBatch{
		schema:  b.schema,
		numRows: numRows,
		cols:    make(map[string]interface{}),
	}
	for name, data := range b.cols {
		switch d := data.(type) {
		case []bool:
			sliced.cols[name] = append([]bool{}, d[:numRows]...)
		case []int32:
			sliced.cols[name] = append([]int32{}, d[:numRows]...)
		case []int64:
			sliced.cols[name] = append([]int64{}, d[:numRows]...)
		case []uint64:
			sliced.cols[name] = append([]uint64{}, d[:numRows]...)
		case []float64:
			sliced.cols[name] = append([]float64{}, d[:numRows]...)
		case []string:
			sliced.cols[name] = append([]string{}, d[:numRows]...)
		default:
			return nil, fmt.Errorf("Column %s has unsupported data type", name)
		}
	}
	return sliced, nil
}

// checkColumn verifies that the named column exists in the schema with the expected type
func (b *recordBatch) checkColumn(colName string, expected ballista.ColumnType) error {
	col, err := b.schema.GetColumn(colName)
	if err != nil {
		return err
	}
	if fmt.Sprintf("%T", col.Type()) != fmt.Sprintf("%T", expected) {
		return fmt.Errorf("Column %s is not of type %T", colName, expected)
	}
	return nil
}

// setColumn stores data for the named column, enforcing consistent row counts
func (b *recordBatch) setColumn(colName string, expected ballista.ColumnType, data interface{}, length int) error {
	if err := b.checkColumn(colName, expected); err != nil {
		return err
	}
	if b.numRows >= 0 && length != b.numRows {
		return fmt.Errorf("Column %s has %d rows, but batch has %d", colName, length, b.numRows)
	}
	b.numRows = length
	b.cols[colName] = data
	return nil
}

// SetBoolColumn populates a bool column of this batch
func (b *recordBatch) SetBoolColumn(colName string, data []bool) error {
	return b.setColumn(colName, &ballista.BoolColumnType{}, data, len(data))
}

// SetInt32Column populates an int32 column of this batch
func (b *recordBatch) SetInt32Column(colName string, data []int32) error {
	return b.setColumn(colName, &ballista.Int32ColumnType{}, data, len(data))
}

// SetInt64Column populates an int64 column of this batch
func (b *recordBatch) SetInt64Column(colName string, data []int64) error {
	return b.setColumn(colName, &ballista.Int64ColumnType{}, data, len(data))
}

// SetUint64Column populates a uint64 column of this batch
func (b *recordBatch) SetUint64Column(colName string, data []uint64) error {
	return b.setColumn(colName, &ballista.Uint64ColumnType{}, data, len(data))
}

// SetFloat64Column populates a float64 column of this batch
func (b *recordBatch) SetFloat64Column(colName string, data []float64) error {
	return b.setColumn(colName, &ballista.Float64ColumnType{}, data, len(data))
}

// SetStringColumn populates a variable-length string column of this batch
func (b *recordBatch) SetStringColumn(colName string, data []string) error {
	return b.setColumn(colName, &ballista.VarStringColumnType{}, data, len(data))
}

// getColumn retrieves raw data for the named column
func (b *recordBatch) getColumn(colName string) (interface{}, error) {
	data, ok := b.cols[colName]
	if !ok {
		if _, err := b.schema.GetColumn(colName); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("Column %s has not been populated", colName)
	}
	return data, nil
}

// GetBoolColumn retrieves the data for a bool column
func (b *recordBatch) GetBoolColumn(colName string) ([]bool, error) {
	data, err := b.getColumn(colName)
	if err != nil {
		return nil, err
	}
	typed, ok := data.([]bool)
	if !ok {
		return nil, fmt.Errorf("Column %s is not a bool column", colName)
	}
	return typed, nil
}

// GetInt32Column retrieves the data for an int32 column
func (b *recordBatch) GetInt32Column(colName string) ([]int32, error) {
	data, err := b.getColumn(colName)
	if err != nil {
		return nil, err
	}
	typed, ok := data.([]int32)
	if !ok {
		return nil, fmt.Errorf("Column %s is not an int32 column", colName)
	}
	return typed, nil
}

// GetInt64Column retrieves the data for an int64 column
func (b *recordBatch) GetInt64Column(colName string) ([]int64, error) {
	data, err := b.getColumn(colName)
	if err != nil {
		return nil, err
	}
	typed, ok := data.([]int64)
	if !ok {
		return nil, fmt.Errorf("Column %s is not an int64 column", colName)
	}
	return typed, nil
}

// GetUint64Column retrieves the data for a uint64 column
func (b *recordBatch) GetUint64Column(colName string) ([]uint64, error) {
	data, err := b.getColumn(colName)
	if err != nil {
		return nil, err
	}
	typed, ok := data.([]uint64)
	if !ok {
		return nil, fmt.Errorf("Column %s is not a uint64 column", colName)
	}
	return typed, nil
}

// GetFloat64Column retrieves the data for a float64 column
func (b *recordBatch) GetFloat64Column(colName string) ([]float64, error) {
	data, err := b.getColumn(colName)
	if err != nil {
		return nil, err
	}
	typed, ok := data.([]float64)
	if !ok {
		return nil, fmt.Errorf("Column %s is not a float64 column", colName)
	}
	return typed, nil
}

// GetStringColumn retrieves the data for a variable-length string column
func (b *recordBatch) GetStringColumn(colName string) ([]string, error) {
	data, err := b.getColumn(colName)
	if err != nil {
		return nil, err
	}
	typed, ok := data.([]string)
	if !ok {
		return nil, fmt.Errorf("Column %s is not a string column", colName)
	}
	return typed, nil
}
