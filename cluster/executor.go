package cluster

import (
	"fmt"
	"log"
	"net"
	"sync"

	uuid "github.com/gofrs/uuid"
	pb "github.com/rolveb/ballista/internal/rpc"
	"github.com/rolveb/ballista/logging"
	"google.golang.org/grpc"
)

// An Executor is a worker process which serves materialized shuffle
// partitions to other members of a Ballista cluster over gRPC.
type Executor struct {
	id            string
	opts          *ExecutorOptions
	store         *MemoryBatchStore
	server        *grpc.Server
	lifecycleLock sync.Mutex
}

// CreateExecutor is a factory for Executors
func CreateExecutor(opts *ExecutorOptions) (*Executor, error) {
	// default certain options if not supplied
	ensureDefaultExecutorOptionsValues(opts)
	// generate executor ID
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID: %v", err)
	}
	return &Executor{id: id.String(), opts: opts, store: CreateMemoryBatchStore()}, nil
}

// ID returns the ID of this Executor
func (e *Executor) ID() string {
	return e.id
}

// Store returns the batch store upstream stages deposit finished output into
func (e *Executor) Store() *MemoryBatchStore {
	return e.store
}

// Start the Executor - will block the current thread
func (e *Executor) Start() error {
	lis, err := net.Listen("tcp", e.opts.connectionString())
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}
	e.lifecycleLock.Lock()
	e.server = grpc.NewServer()
	e.lifecycleLock.Unlock()
	// register rpc handlers for partition fetches
	pb.RegisterShuffleServiceServer(e.server, createShuffleServer(e.store, e.opts.Log))
	e.opts.Log.Log(logging.InfoLevel, "Executor", "serving shuffle partitions at %s", e.opts.connectionString())
	err = e.server.Serve(lis)
	if err != nil {
		return fmt.Errorf("failed to serve: %v", err)
	}
	return nil
}

// GracefulStop the Executor, waiting for RPCs to finish
func (e *Executor) GracefulStop() error {
	e.lifecycleLock.Lock()
	defer e.lifecycleLock.Unlock()
	if e.server != nil {
		e.server.GracefulStop()
		e.server = nil
	}
	return nil
}

// Stop the Executor immediately
func (e *Executor) Stop() error {
	e.lifecycleLock.Lock()
	defer e.lifecycleLock.Unlock()
	if e.server != nil {
		e.server.Stop()
		e.server = nil
	}
	return nil
}
