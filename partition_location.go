package ballista

import (
	"fmt"
	"log"

	uuid "github.com/gofrs/uuid"
)

// ExecutorMeta identifies a single executor process within the cluster
type ExecutorMeta struct {
	Host string
	Port int
}

// ConnectionString returns the host:port address of this executor
func (m ExecutorMeta) ConnectionString() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// PartitionID identifies one materialized shuffle partition: the job it
// belongs to, the stage which produced it, and its index within that stage.
type PartitionID struct {
	JobID       string
	StageID     int
	PartitionID int
}

// A PartitionLocation pairs a shuffle partition's identity with the executor
// currently holding its materialized output. Locations are produced by the
// scheduler during planning and are read-only thereafter.
type PartitionLocation struct {
	Executor  ExecutorMeta
	Partition PartitionID
}

// NewJobID mints a unique identifier for a query job
func NewJobID() string {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID: %v", err)
	}
	return id.String()
}
