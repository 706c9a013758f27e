package testing

import (
	"time"

	"github.com/rolveb/ballista"
	"github.com/rolveb/ballista/cluster"
	"github.com/rolveb/ballista/logging"
)

// LocalCluster is a set of localhost Executors used for integration testing
type LocalCluster struct {
	Executors []*cluster.Executor
	Metas     []ballista.ExecutorMeta
}

// StartLocalCluster boots numExecutors Executors on sequential localhost
// ports starting at basePort, and waits briefly for them to begin serving.
// Callers should defer GracefulStop on the result.
func StartLocalCluster(numExecutors int, basePort int) (*LocalCluster, error) {
	lc := &LocalCluster{
		Executors: make([]*cluster.Executor, 0, numExecutors),
		Metas:     make([]ballista.ExecutorMeta, 0, numExecutors),
	}
	for i := 0; i < numExecutors; i++ {
		opts := &cluster.ExecutorOptions{
			Host: "127.0.0.1",
			Port: basePort + i,
			Log:  logging.CreateNullSink(),
		}
		e, err := cluster.CreateExecutor(opts)
		if err != nil {
			return nil, err
		}
		go func() {
			if err := e.Start(); err != nil {
				panic(err)
			}
		}()
		lc.Executors = append(lc.Executors, e)
		lc.Metas = append(lc.Metas, ballista.ExecutorMeta{Host: opts.Host, Port: opts.Port})
	}
	time.Sleep(50 * time.Millisecond) // wait for listeners to come up
	return lc, nil
}

// GracefulStop shuts down every Executor in the cluster
func (lc *LocalCluster) GracefulStop() {
	for _, e := range lc.Executors {
		e.GracefulStop()
	}
}
