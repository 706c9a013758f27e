package cluster

import (
	"bytes"
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/rolveb/ballista"
	"github.com/rolveb/ballista/batch"
	pb "github.com/rolveb/ballista/internal/rpc"
	"github.com/rolveb/ballista/logging"
)

type shuffleServer struct {
	store      *MemoryBatchStore
	serializer ballista.BatchSerializer
	log        logging.Sink
}

// createShuffleServer creates a new shuffleServer
func createShuffleServer(store *MemoryBatchStore, log logging.Sink) *shuffleServer {
	return &shuffleServer{store: store, serializer: batch.CreateLZ4BatchSerializer(), log: log}
}

// FetchPartition streams the materialized content of a single shuffle
// partition to the requester, one compressed batch at a time. Batches are
// lz4-compressed and chunked, with an xxhash checksum over each complete
// payload so the requester can verify the transfer.
func (s *shuffleServer) FetchPartition(req *pb.MFetchPartitionRequest, stream pb.ShuffleService_FetchPartitionServer) error {
	jobID, stageID, partitionID := req.GetJobId(), int(req.GetStageId()), int(req.GetPartitionId())
	batches, ok := s.store.Get(jobID, stageID, partitionID)
	if !ok {
		return fmt.Errorf("Partition %s is not materialized on this executor", partitionKey(jobID, stageID, partitionID))
	}
	s.log.Log(logging.DebugLevel, "ShuffleService", "transferring %d batches for partition %s", len(batches), partitionKey(jobID, stageID, partitionID))
	// 16-64kb is the ideal stream chunk size according to https://jbrandhorst.com/post/grpc-binary-blob-stream/
	maxChunkBytes := 63 * 1024 // leave room for 1kb of other things
	for i, b := range batches {
		buff := new(bytes.Buffer)
		if err := s.serializer.Compress(buff, b); err != nil {
			return err
		}
		payload := buff.Bytes()
		checksum := xxhash.Sum64(payload)
		totalSize := len(payload)
		// always send at least one chunk, so empty batches still arrive
		for j := 0; j == 0 || j < totalSize; j += maxChunkBytes {
			end := j + maxChunkBytes
			if end > totalSize {
				end = totalSize
			}
			err := stream.Send(&pb.MBatchChunk{
				Data:               payload[j:end],
				BatchIndex:         int32(i),
				TotalSizeBytes:     int32(totalSize),
				RemainingSizeBytes: int32(totalSize - end),
				Append:             int32(j),
				Checksum:           checksum,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
