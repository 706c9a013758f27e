package batch

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/rolveb/ballista"
)

// toBytes writes the contents of a RecordBatch to a stream: a uint32 row
// count, followed by each column's data in schema index order. Fixed-length
// columns are written as packed little-endian values; variable-length columns
// as a uint32 length prefix plus the value's own serialization, per cell.
func toBytes(w io.Writer, b ballista.RecordBatch) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(b.NumRows())); err != nil {
		return err
	}
	schema := b.Schema()
	for _, name := range schema.ColumnNames() {
		col, err := schema.GetColumn(name)
		if err != nil {
			return err
		}
		if err := writeColumn(w, b, name, col.Type()); err != nil {
			return err
		}
	}
	return nil
}

func writeColumn(w io.Writer, b ballista.RecordBatch, name string, colType ballista.ColumnType) error {
	switch t := colType.(type) {
	case *ballista.BoolColumnType:
		data, err := b.GetBoolColumn(name)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, data)
	case *ballista.Int32ColumnType:
		data, err := b.GetInt32Column(name)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, data)
	case *ballista.Int64ColumnType:
		data, err := b.GetInt64Column(name)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, data)
	case *ballista.Uint64ColumnType:
		data, err := b.GetUint64Column(name)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, data)
	case *ballista.Float64ColumnType:
		data, err := b.GetFloat64Column(name)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, data)
	case *ballista.VarStringColumnType:
		data, err := b.GetStringColumn(name)
		if err != nil {
			return err
		}
		for _, v := range data {
			ser, err := t.Serialize(v)
			if err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, uint32(len(ser))); err != nil {
				return err
			}
			if _, err := w.Write(ser); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("Column %s has unsupported type %T", name, colType)
	}
}

// fromBytes reads a RecordBatch from a stream written by toBytes, using the
// given Schema to interpret the column data.
func fromBytes(r io.Reader, schema ballista.Schema) (ballista.RecordBatch, error) {
	var numRows uint32
	if err := binary.Read(r, binary.LittleEndian, &numRows); err != nil {
		return nil, err
	}
	b := CreateBatch(schema)
	for _, name := range schema.ColumnNames() {
		col, err := schema.GetColumn(name)
		if err != nil {
			return nil, err
		}
		if err := readColumn(r, b, name, col.Type(), int(numRows)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func readColumn(r io.Reader, b ballista.BuildableBatch, name string, colType ballista.ColumnType, numRows int) error {
	switch t := colType.(type) {
	case *ballista.BoolColumnType:
		data := make([]bool, numRows)
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return err
		}
		return b.SetBoolColumn(name, data)
	case *ballista.Int32ColumnType:
		data := make([]int32, numRows)
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return err
		}
		return b.SetInt32Column(name, data)
	case *ballista.Int64ColumnType:
		data := make([]int64, numRows)
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return err
		}
		return b.SetInt64Column(name, data)
	case *ballista.Uint64ColumnType:
		data := make([]uint64, numRows)
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return err
		}
		return b.SetUint64Column(name, data)
	case *ballista.Float64ColumnType:
		data := make([]float64, numRows)
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return err
		}
		return b.SetFloat64Column(name, data)
	case *ballista.VarStringColumnType:
		data := make([]string, numRows)
		for i := 0; i < numRows; i++ {
			var length uint32
			if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
				return err
			}
			ser := make([]byte, length)
			if _, err := io.ReadFull(r, ser); err != nil {
				return err
			}
			v, err := t.Deserialize(ser)
			if err != nil {
				return err
			}
			data[i] = v.(string)
		}
		return b.SetStringColumn(name, data)
	default:
		return fmt.Errorf("Column %s has unsupported type %T", name, colType)
	}
}
