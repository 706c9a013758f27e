package plan

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rolveb/ballista"
	iutil "github.com/rolveb/ballista/internal/util"
	"golang.org/x/sync/semaphore"
)

// Collect executes every output partition of a plan from independent
// goroutines and gathers the resulting batches in partition order.
// maxConcurrency bounds the number of partitions fetched at once. Failures
// from all partitions are aggregated into a single error - a failed partition
// fails the whole collect.
func Collect(ctx context.Context, node ballista.ExecutionPlan, maxConcurrency int64) ([]ballista.RecordBatch, error) {
	numPartitions := node.OutputPartitioning().NumPartitions
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	collectionLimit := semaphore.NewWeighted(maxConcurrency)
	results := make([][]ballista.RecordBatch, numPartitions)
	var wg sync.WaitGroup
	var collectedLock sync.Mutex
	var multierr *multierror.Error
	for p := 0; p < numPartitions; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			if err := collectionLimit.Acquire(ctx, 1); err != nil {
				collectedLock.Lock()
				multierr = multierror.Append(multierr, err)
				collectedLock.Unlock()
				return
			}
			defer collectionLimit.Release(1)
			collected, err := collectPartition(ctx, node, p)
			collectedLock.Lock()
			defer collectedLock.Unlock()
			if err != nil {
				multierr = multierror.Append(multierr, err)
				return
			}
			results[p] = collected
		}(p)
	}
	wg.Wait()
	if multierr != nil {
		multierr.ErrorFormat = iutil.FormatMultiError
		return nil, multierr
	}
	flattened := make([]ballista.RecordBatch, 0)
	for _, partitionBatches := range results {
		flattened = append(flattened, partitionBatches...)
	}
	return flattened, nil
}

// collectPartition drains a single partition's BatchIterator
func collectPartition(ctx context.Context, node ballista.ExecutionPlan, partition int) ([]ballista.RecordBatch, error) {
	it, err := node.Execute(ctx, partition)
	if err != nil {
		return nil, err
	}
	batches := make([]ballista.RecordBatch, 0)
	for it.HasNextBatch() {
		b, err := it.NextBatch()
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}
