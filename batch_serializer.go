package ballista

import "io"

// A BatchSerializer serializes and compresses RecordBatch data (and the inverse)
type BatchSerializer interface {
	Compress(w io.Writer, batch RecordBatch) error              // Compress serializes and compresses batch data to a write stream
	Decompress(r io.Reader, schema Schema) (RecordBatch, error) // Decompress decompresses and deserializes batch data from a read stream
}
