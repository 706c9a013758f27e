package cluster

import (
	"fmt"
	"sync"

	"github.com/rolveb/ballista"
)

// MemoryBatchStore is an in-memory registry of materialized shuffle
// partitions, keyed by (job id, stage id, partition id). An upstream stage
// deposits its finished output here; the ShuffleService serves it to
// downstream readers. Safe for concurrent use.
type MemoryBatchStore struct {
	lock       sync.Mutex
	partitions map[string][]ballista.RecordBatch
}

// CreateMemoryBatchStore creates a new MemoryBatchStore
func CreateMemoryBatchStore() *MemoryBatchStore {
	return &MemoryBatchStore{partitions: make(map[string][]ballista.RecordBatch)}
}

func partitionKey(jobID string, stageID int, partitionID int) string {
	return fmt.Sprintf("%s/%d/%d", jobID, stageID, partitionID)
}

// Put registers the materialized content of one shuffle partition
func (s *MemoryBatchStore) Put(jobID string, stageID int, partitionID int, batches []ballista.RecordBatch) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.partitions[partitionKey(jobID, stageID, partitionID)] = batches
}

// Get retrieves the materialized content of one shuffle partition, if present
func (s *MemoryBatchStore) Get(jobID string, stageID int, partitionID int) ([]ballista.RecordBatch, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	batches, ok := s.partitions[partitionKey(jobID, stageID, partitionID)]
	return batches, ok
}

// NumPartitions returns the number of partitions currently registered
func (s *MemoryBatchStore) NumPartitions() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.partitions)
}
