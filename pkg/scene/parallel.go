package scene

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
)

// taskResult carries one compiled dictionary back from a worker, keyed by
// task id for deterministic reassembly
type taskResult struct {
	id       int
	compiled Compiled
	err      error
}

// workerPool compiles dictionary tasks concurrently. Scenes are immutable
// after construction, so workers share the scene without locking.
type workerPool struct {
	scene       *Scene
	taskQueue   chan task
	resultQueue chan taskResult
	numWorkers  int
	wg          sync.WaitGroup
}

func newWorkerPool(s *Scene, numTasks, numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &workerPool{
		scene:       s,
		taskQueue:   make(chan task, numTasks),
		resultQueue: make(chan taskResult, numTasks),
		numWorkers:  numWorkers,
	}
}

func (wp *workerPool) start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
}

func (wp *workerPool) stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

func (wp *workerPool) run(ctx context.Context) {
	defer wp.wg.Done()

	for t := range wp.taskQueue {
		if err := ctx.Err(); err != nil {
			wp.resultQueue <- taskResult{id: t.id, err: errors.New("compilation interrupted").Wrap(err)}
			continue
		}
		compiled, err := wp.scene.compileTask(t)
		wp.resultQueue <- taskResult{id: t.id, compiled: compiled, err: err}
	}
}

// CompileParallel compiles one dictionary per (measure, spectral context)
// pair using the given number of workers, zero meaning one per CPU. The
// result order matches CompileAll: compiling concurrently never changes the
// output.
func (s *Scene) CompileParallel(ctx context.Context, numWorkers int) ([]Compiled, error) {
	run := uuid.NewString()
	tasks := s.tasks()

	wp := newWorkerPool(s, len(tasks), numWorkers)
	logs.WithTag("run_id", run).
		WithTag("dictionaries", len(tasks)).
		WithTag("workers", wp.numWorkers).
		Info("compiling scene")
	start := time.Now()

	wp.start(ctx)
	for _, t := range tasks {
		wp.taskQueue <- t
	}
	wp.stop()

	out := make([]Compiled, len(tasks))
	var firstErr error
	for r := range wp.resultQueue {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		out[r.id] = r.compiled
	}
	if firstErr != nil {
		return nil, firstErr
	}

	logs.WithTag("run_id", run).
		WithTag("dictionaries", len(out)).
		WithTag("duration", time.Since(start)).
		Info("scene compiled")
	return out, nil
}
