package batch

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4"
	"github.com/rolveb/ballista"
)

// LZ4BatchSerializer is a batch serializer which uses the lz4 compression algorithm
type LZ4BatchSerializer struct{}

// CreateLZ4BatchSerializer instantiates a new LZ4BatchSerializer
func CreateLZ4BatchSerializer() ballista.BatchSerializer {
	return &LZ4BatchSerializer{}
}

// Compress serializes and compresses batch data to a write stream
func (lz4bs *LZ4BatchSerializer) Compress(w io.Writer, b ballista.RecordBatch) error {
	compressor := lz4.NewWriter(w)
	if err := toBytes(compressor, b); err != nil {
		return err
	}
	return compressor.Close()
}

// Decompress decompresses and deserializes batch data from a read stream
func (lz4bs *LZ4BatchSerializer) Decompress(r io.Reader, schema ballista.Schema) (ballista.RecordBatch, error) {
	decompressor := lz4.NewReader(r)
	buff := new(bytes.Buffer)
	if _, err := buff.ReadFrom(decompressor); err != nil {
		return nil, err
	}
	return fromBytes(buff, schema)
}
