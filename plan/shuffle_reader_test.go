package plan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rolveb/ballista"
	"github.com/rolveb/ballista/batch"
	berrors "github.com/rolveb/ballista/errors"
	"github.com/rolveb/ballista/logging"
	"github.com/rolveb/ballista/schema"
	btesting "github.com/rolveb/ballista/testing"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func createTestSchema(t *testing.T) ballista.Schema {
	s := schema.CreateSchema()
	s, err := s.CreateColumn("id", &ballista.Int64ColumnType{})
	require.Nil(t, err)
	s, err = s.CreateColumn("name", &ballista.VarStringColumnType{})
	require.Nil(t, err)
	return s
}

func createTestBatch(t *testing.T, s ballista.Schema, ids []int64, names []string) ballista.RecordBatch {
	b := batch.CreateBatch(s)
	require.Nil(t, b.SetInt64Column("id", ids))
	require.Nil(t, b.SetStringColumn("name", names))
	return b
}

// fetchCall records the identity of a single fetch issued through a fake factory
type fetchCall struct {
	host        string
	port        int
	jobID       string
	stageID     int
	partitionID int
}

// fakeConnectionFactory satisfies ballista.ConnectionFactory without any
// networking, serving canned batches keyed by executor address
type fakeConnectionFactory struct {
	lock        sync.Mutex
	batches     map[string][]ballista.RecordBatch
	connectErrs map[string]error
	fetchErrs   map[string]error
	calls       []fetchCall
	connects    int
	closes      int
}

func createFakeConnectionFactory() *fakeConnectionFactory {
	return &fakeConnectionFactory{
		batches:     make(map[string][]ballista.RecordBatch),
		connectErrs: make(map[string]error),
		fetchErrs:   make(map[string]error),
		calls:       make([]fetchCall, 0),
	}
}

func (f *fakeConnectionFactory) Connect(host string, port int) (ballista.Session, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.connects++
	addr := fmt.Sprintf("%s:%d", host, port)
	if cause, ok := f.connectErrs[addr]; ok {
		return nil, berrors.ConnectError{Address: addr, Cause: cause}
	}
	return &fakeSession{factory: f, host: host, port: port}, nil
}

type fakeSession struct {
	factory *fakeConnectionFactory
	host    string
	port    int
}

func (s *fakeSession) FetchPartition(ctx context.Context, jobID string, stageID int, partitionID int, sch ballista.Schema) ([]ballista.RecordBatch, error) {
	f := s.factory
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, fetchCall{s.host, s.port, jobID, stageID, partitionID})
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if cause, ok := f.fetchErrs[addr]; ok {
		return nil, berrors.FetchError{JobID: jobID, StageID: stageID, PartitionID: partitionID, Cause: cause}
	}
	return f.batches[addr], nil
}

func (s *fakeSession) Close() error {
	s.factory.lock.Lock()
	defer s.factory.lock.Unlock()
	s.factory.closes++
	return nil
}

func testLocations(jobID string, numPartitions int) []ballista.PartitionLocation {
	locations := make([]ballista.PartitionLocation, 0, numPartitions)
	for i := 0; i < numPartitions; i++ {
		locations = append(locations, ballista.PartitionLocation{
			Executor:  ballista.ExecutorMeta{Host: "worker", Port: 7000 + i},
			Partition: ballista.PartitionID{JobID: jobID, StageID: 2, PartitionID: i},
		})
	}
	return locations
}

func TestCreateShuffleReader(t *testing.T) {
	s := createTestSchema(t)
	factory := createFakeConnectionFactory()
	// empty schemas are rejected
	_, err := CreateShuffleReader(nil, schema.CreateSchema(), factory, logging.CreateNullSink())
	require.NotNil(t, err)
	_, err = CreateShuffleReader(nil, nil, factory, logging.CreateNullSink())
	require.NotNil(t, err)
	// a ConnectionFactory is mandatory
	_, err = CreateShuffleReader(nil, s, nil, logging.CreateNullSink())
	require.NotNil(t, err)
	// zero locations is a valid (if useless) plan
	reader, err := CreateShuffleReader(nil, s, factory, logging.CreateNullSink())
	require.Nil(t, err)
	require.Equal(t, 0, reader.OutputPartitioning().NumPartitions)
}

func TestShuffleReaderSchemaAndPartitioning(t *testing.T) {
	s := createTestSchema(t)
	jobID := ballista.NewJobID()
	reader, err := CreateShuffleReader(testLocations(jobID, 3), s, createFakeConnectionFactory(), logging.CreateNullSink())
	require.Nil(t, err)
	require.Nil(t, s.Equals(reader.Schema()))
	partitioning := reader.OutputPartitioning()
	require.Equal(t, ballista.UnknownPartitioning, partitioning.Scheme)
	require.Equal(t, 3, partitioning.NumPartitions)
	// the reported schema never varies with partition count
	empty, err := CreateShuffleReader(nil, s, createFakeConnectionFactory(), logging.CreateNullSink())
	require.Nil(t, err)
	require.Nil(t, s.Equals(empty.Schema()))
}

func TestShuffleReaderIsLeaf(t *testing.T) {
	s := createTestSchema(t)
	reader, err := CreateShuffleReader(testLocations(ballista.NewJobID(), 2), s, createFakeConnectionFactory(), logging.CreateNullSink())
	require.Nil(t, err)
	require.Len(t, reader.Children(), 0)
	_, err = reader.WithNewChildren([]ballista.ExecutionPlan{})
	require.IsType(t, berrors.UnsupportedOperationError{}, err)
	_, err = reader.WithNewChildren([]ballista.ExecutionPlan{reader})
	require.IsType(t, berrors.UnsupportedOperationError{}, err)
}

func TestShuffleReaderExecute(t *testing.T) {
	s := createTestSchema(t)
	jobID := ballista.NewJobID()
	locations := testLocations(jobID, 2)
	factory := createFakeConnectionFactory()
	factory.batches["worker:7001"] = []ballista.RecordBatch{
		createTestBatch(t, s, []int64{1, 2, 3}, []string{"a", "b", "c"}),
	}
	sink := btesting.CreateCaptureSink()
	reader, err := CreateShuffleReader(locations, s, factory, sink)
	require.Nil(t, err)
	it, err := reader.Execute(context.Background(), 1)
	require.Nil(t, err)
	// exactly one fetch, addressed by the partition index's location
	require.Len(t, factory.calls, 1)
	require.Equal(t, fetchCall{"worker", 7001, jobID, 2, 1}, factory.calls[0])
	// the session is released before the iterator is consumed
	require.Equal(t, 1, factory.closes)
	// the fetched batch comes back unmodified
	require.True(t, it.HasNextBatch())
	b, err := it.NextBatch()
	require.Nil(t, err)
	ids, err := b.GetInt64Column("id")
	require.Nil(t, err)
	require.Equal(t, []int64{1, 2, 3}, ids)
	require.False(t, it.HasNextBatch())
	_, err = it.NextBatch()
	require.IsType(t, berrors.NoMoreBatchesError{}, err)
	// each Execute emits a single diagnostic naming the partition
	records := sink.Records()
	require.Len(t, records, 1)
	require.Equal(t, logging.InfoLevel, records[0].Level)
	require.Equal(t, "ShuffleReader", records[0].Source)
	require.Contains(t, records[0].Message, "partition 1")
}

func TestShuffleReaderExecuteEmptyPartition(t *testing.T) {
	s := createTestSchema(t)
	factory := createFakeConnectionFactory()
	reader, err := CreateShuffleReader(testLocations(ballista.NewJobID(), 1), s, factory, logging.CreateNullSink())
	require.Nil(t, err)
	// an executor holding zero batches for the partition yields an empty iterator
	it, err := reader.Execute(context.Background(), 0)
	require.Nil(t, err)
	require.False(t, it.HasNextBatch())
	require.Nil(t, s.Equals(it.Schema()))
}

func TestShuffleReaderExecutePartitionOutOfRange(t *testing.T) {
	s := createTestSchema(t)
	factory := createFakeConnectionFactory()
	reader, err := CreateShuffleReader(testLocations(ballista.NewJobID(), 2), s, factory, logging.CreateNullSink())
	require.Nil(t, err)
	for _, partition := range []int{-1, 2, 100} {
		it, err := reader.Execute(context.Background(), partition)
		require.Nil(t, it)
		require.IsType(t, berrors.PartitionOutOfRangeError{}, err)
	}
	// no connections are attempted for out-of-range indices
	require.Equal(t, 0, factory.connects)
}

func TestShuffleReaderExecuteConnectFailure(t *testing.T) {
	s := createTestSchema(t)
	factory := createFakeConnectionFactory()
	factory.connectErrs["worker:7000"] = fmt.Errorf("connection refused")
	reader, err := CreateShuffleReader(testLocations(ballista.NewJobID(), 1), s, factory, logging.CreateNullSink())
	require.Nil(t, err)
	it, err := reader.Execute(context.Background(), 0)
	require.Nil(t, it)
	require.IsType(t, berrors.ExecutionError{}, err)
	var connectErr berrors.ConnectError
	require.True(t, errors.As(err, &connectErr))
	require.Equal(t, "worker:7000", connectErr.Address)
}

func TestShuffleReaderExecuteFetchFailure(t *testing.T) {
	s := createTestSchema(t)
	jobID := ballista.NewJobID()
	factory := createFakeConnectionFactory()
	factory.fetchErrs["worker:7000"] = fmt.Errorf("partition not materialized")
	reader, err := CreateShuffleReader(testLocations(jobID, 1), s, factory, logging.CreateNullSink())
	require.Nil(t, err)
	it, err := reader.Execute(context.Background(), 0)
	require.Nil(t, it)
	require.IsType(t, berrors.ExecutionError{}, err)
	var fetchErr berrors.FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, jobID, fetchErr.JobID)
	require.Equal(t, 0, fetchErr.PartitionID)
	// the session is still released on failure
	require.Equal(t, 1, factory.closes)
}

func TestShuffleReaderConcurrentExecute(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := createTestSchema(t)
	jobID := ballista.NewJobID()
	numPartitions := 8
	locations := testLocations(jobID, numPartitions)
	factory := createFakeConnectionFactory()
	for i := 0; i < numPartitions; i++ {
		factory.batches[fmt.Sprintf("worker:%d", 7000+i)] = []ballista.RecordBatch{
			createTestBatch(t, s, []int64{int64(i)}, []string{fmt.Sprintf("p%d", i)}),
		}
	}
	reader, err := CreateShuffleReader(locations, s, factory, logging.CreateNullSink())
	require.Nil(t, err)
	var wg sync.WaitGroup
	results := make([][]int64, numPartitions)
	fetchErrors := make([]error, numPartitions)
	for i := 0; i < numPartitions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			it, err := reader.Execute(context.Background(), i)
			if err != nil {
				fetchErrors[i] = err
				return
			}
			for it.HasNextBatch() {
				b, err := it.NextBatch()
				if err != nil {
					fetchErrors[i] = err
					return
				}
				ids, err := b.GetInt64Column("id")
				if err != nil {
					fetchErrors[i] = err
					return
				}
				results[i] = append(results[i], ids...)
			}
		}(i)
	}
	wg.Wait()
	for i := 0; i < numPartitions; i++ {
		require.Nil(t, fetchErrors[i])
		require.Equal(t, []int64{int64(i)}, results[i])
	}
	// one session per Execute, all released
	require.Equal(t, numPartitions, factory.connects)
	require.Equal(t, numPartitions, factory.closes)
}
