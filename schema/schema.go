package schema

import (
	"fmt"
	"reflect"

	"github.com/rolveb/ballista"
)

// column is a single named entry in a schema
type column struct {
	idx     int
	colType ballista.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() ballista.Column {
	return &column{c.idx, c.colType}
}

// Index returns the position of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// Type returns the ColumnType of this Column
func (c *column) Type() ballista.ColumnType {
	return c.colType
}

// Schema is an ordered mapping from column names to column types. It allows
// one to look up columns by name, define new columns, etc.
type schema struct {
	schema map[string]ballista.Column
}

// CreateSchema is a factory for Schemas
func CreateSchema() ballista.Schema {
	return &schema{
		schema: make(map[string]ballista.Column),
	}
}

// Equals returns nil iff this and another Schema are equivalent
func (s *schema) Equals(otherSchema ballista.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	return s.ForEachColumn(func(name string, col ballista.Column) error {
		otherCol, err := otherSchema.GetColumn(name)
		if err != nil {
			return err
		}
		if col.Index() != otherCol.Index() {
			return fmt.Errorf("Column %s indices do not match", name)
		}
		if reflect.TypeOf(col.Type()) != reflect.TypeOf(otherCol.Type()) {
			return fmt.Errorf("Column %s types do not match", name)
		}
		if col.Type().Size() != otherCol.Type().Size() {
			return fmt.Errorf("Column %s type sizes do not match", name)
		}
		return nil
	})
}

// Clone returns a copy of this Schema
func (s *schema) Clone() ballista.Schema {
	newSchema := make(map[string]ballista.Column)
	for k, v := range s.schema {
		newSchema[k] = v.Clone()
	}
	return &schema{schema: newSchema}
}

// NumColumns returns the number of columns (fixed-length and variable-length) in this Schema
func (s *schema) NumColumns() int {
	return len(s.schema)
}

// NumFixedLengthColumns returns the number of fixed-length columns in this Schema
func (s *schema) NumFixedLengthColumns() int {
	i := 0
	for _, col := range s.schema {
		if !ballista.IsVariableLength(col.Type()) {
			i++
		}
	}
	return i
}

// NumVariableLengthColumns returns the number of variable-length columns in this Schema
func (s *schema) NumVariableLengthColumns() int {
	i := 0
	for _, col := range s.schema {
		if ballista.IsVariableLength(col.Type()) {
			i++
		}
	}
	return i
}

// GetColumn returns the named column of this Schema
func (s *schema) GetColumn(colName string) (col ballista.Column, err error) {
	col, ok := s.schema[colName]
	if !ok {
		err = fmt.Errorf("Schema does not contain column with name %s", colName)
	}
	return
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, err := s.GetColumn(colName)
	return err == nil
}

// CreateColumn defines a new column within the Schema
func (s *schema) CreateColumn(colName string, columnType ballista.ColumnType) (newSchema ballista.Schema, err error) {
	_, containsCol := s.schema[colName]
	if containsCol {
		err = fmt.Errorf("Schema already contains column with name %s", colName)
	} else {
		s.schema[colName] = &column{len(s.schema), columnType}
		newSchema = s
	}
	return
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.schema))
	for k, v := range s.schema {
		names[v.Index()] = k
	}
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []ballista.ColumnType {
	types := make([]ballista.ColumnType, len(s.schema))
	for _, v := range s.schema {
		types[v.Index()] = v.Type()
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema. Does not necessarily iterate in order of column index.
func (s *schema) ForEachColumn(fn func(name string, col ballista.Column) error) error {
	for k, v := range s.schema {
		err := fn(k, v)
		if err != nil {
			return err
		}
	}
	return nil
}
