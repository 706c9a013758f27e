package cluster

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/rolveb/ballista"
	"github.com/rolveb/ballista/batch"
	"github.com/rolveb/ballista/errors"
	pb "github.com/rolveb/ballista/internal/rpc"
	"google.golang.org/grpc"
)

// ClientOptions are options for a gRPC-backed ConnectionFactory
type ClientOptions struct {
	DialTimeout time.Duration // how long Connect waits for an executor to become reachable
	RPCTimeout  time.Duration // optional deadline for each fetch call; zero imposes no internal timeout
}

func ensureDefaultClientOptionsValues(opts *ClientOptions) {
	if opts.DialTimeout == 0 {
		opts.DialTimeout = time.Duration(5) * time.Second
	}
}

type connectionFactory struct {
	opts       *ClientOptions
	serializer ballista.BatchSerializer
}

// CreateConnectionFactory returns a ConnectionFactory which opens one gRPC
// connection per Connect call. Connection failures surface as ConnectErrors.
func CreateConnectionFactory(opts *ClientOptions) ballista.ConnectionFactory {
	if opts == nil {
		opts = &ClientOptions{}
	}
	ensureDefaultClientOptionsValues(opts)
	return &connectionFactory{opts: opts, serializer: batch.CreateLZ4BatchSerializer()}
}

// Connect opens a Session to the executor at host:port
func (f *connectionFactory) Connect(host string, port int) (ballista.Session, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	ctx, cancel := context.WithTimeout(context.Background(), f.opts.DialTimeout)
	defer cancel()
	conn, err := grpc.DialContext(ctx, addr, grpc.WithInsecure(), grpc.WithBlock())
	if err != nil {
		return nil, errors.ConnectError{Address: addr, Cause: err}
	}
	return &executorSession{
		conn:       conn,
		client:     pb.NewShuffleServiceClient(conn),
		serializer: f.serializer,
		rpcTimeout: f.opts.RPCTimeout,
	}, nil
}

// executorSession is a live link to a single executor, exclusively owned by
// the Execute call which opened it
type executorSession struct {
	conn       *grpc.ClientConn
	client     pb.ShuffleServiceClient
	serializer ballista.BatchSerializer
	rpcTimeout time.Duration
}

// FetchPartition retrieves the complete materialized content of one shuffle
// partition, reassembling and verifying each streamed batch payload
func (s *executorSession) FetchPartition(ctx context.Context, jobID string, stageID int, partitionID int, schema ballista.Schema) ([]ballista.RecordBatch, error) {
	if s.rpcTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.rpcTimeout)
		defer cancel()
	}
	fetchErr := func(cause error) error {
		return errors.FetchError{JobID: jobID, StageID: stageID, PartitionID: partitionID, Cause: cause}
	}
	req := &pb.MFetchPartitionRequest{
		JobId:       jobID,
		StageId:     int32(stageID),
		PartitionId: int32(partitionID),
	}
	stream, err := s.client.FetchPartition(ctx, req)
	if err != nil {
		return nil, fetchErr(err)
	}
	batches := make([]ballista.RecordBatch, 0)
	buff := new(bytes.Buffer)
	for chunk, err := stream.Recv(); err != io.EOF; chunk, err = stream.Recv() {
		if err != nil {
			return nil, fetchErr(err)
		}
		buff.Write(chunk.GetData())
		if chunk.GetRemainingSizeBytes() == 0 {
			// the payload is complete - verify and decode it
			if actual := xxhash.Sum64(buff.Bytes()); actual != chunk.GetChecksum() {
				return nil, fetchErr(errors.ChecksumError{Expected: chunk.GetChecksum(), Actual: actual})
			}
			b, err := s.serializer.Decompress(bytes.NewReader(buff.Bytes()), schema)
			if err != nil {
				return nil, fetchErr(err)
			}
			batches = append(batches, b)
			buff.Reset()
		}
	}
	return batches, nil
}

// Close releases the underlying connection
func (s *executorSession) Close() error {
	return s.conn.Close()
}
