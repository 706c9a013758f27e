package batch

import (
	"testing"

	"github.com/rolveb/ballista"
	"github.com/rolveb/ballista/schema"
	"github.com/stretchr/testify/require"
)

func createTestSchema(t *testing.T) ballista.Schema {
	s := schema.CreateSchema()
	_, err := s.CreateColumn("id", &ballista.Int32ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("total", &ballista.Float64ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("city", &ballista.VarStringColumnType{})
	require.Nil(t, err)
	return s
}

func TestBatchBuildAndAccess(t *testing.T) {
	b := CreateBatch(createTestSchema(t))
	require.Nil(t, b.SetInt32Column("id", []int32{1, 2, 3}))
	require.Nil(t, b.SetFloat64Column("total", []float64{1.5, 2.5, 3.5}))
	require.Nil(t, b.SetStringColumn("city", []string{"Halifax", "Toronto", "Vancouver"}))

	require.Equal(t, 3, b.NumRows())
	ids, err := b.GetInt32Column("id")
	require.Nil(t, err)
	require.Equal(t, []int32{1, 2, 3}, ids)
	cities, err := b.GetStringColumn("city")
	require.Nil(t, err)
	require.Equal(t, "Toronto", cities[1])
}

func TestBatchColumnTypeMismatch(t *testing.T) {
	b := CreateBatch(createTestSchema(t))
	require.NotNil(t, b.SetInt64Column("id", []int64{1}))
	require.NotNil(t, b.SetInt32Column("city", []int32{1}))
	require.NotNil(t, b.SetInt32Column("missing", []int32{1}))
}

func TestBatchRowCountMismatch(t *testing.T) {
	b := CreateBatch(createTestSchema(t))
	require.Nil(t, b.SetInt32Column("id", []int32{1, 2, 3}))
	require.NotNil(t, b.SetFloat64Column("total", []float64{1.5}))
}

func TestBatchUnpopulatedColumn(t *testing.T) {
	b := CreateBatch(createTestSchema(t))
	require.Nil(t, b.SetInt32Column("id", []int32{1, 2, 3}))
	_, err := b.GetFloat64Column("total")
	require.NotNil(t, err)
}

func TestBatchSlice(t *testing.T) {
	b := CreateBatch(createTestSchema(t))
	require.Nil(t, b.SetInt32Column("id", []int32{1, 2, 3}))
	require.Nil(t, b.SetFloat64Column("total", []float64{1.5, 2.5, 3.5}))
	require.Nil(t, b.SetStringColumn("city", []string{"Halifax", "Toronto", "Vancouver"}))

	sliced, err := b.Slice(2)
	require.Nil(t, err)
	require.Equal(t, 2, sliced.NumRows())
	ids, err := sliced.GetInt32Column("id")
	require.Nil(t, err)
	require.Equal(t, []int32{1, 2}, ids)
	// source batch is untouched
	require.Equal(t, 3, b.NumRows())

	_, err = b.Slice(4)
	require.NotNil(t, err)
	_, err = b.Slice(-1)
	require.NotNil(t, err)
}
