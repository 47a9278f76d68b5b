package noise

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// fieldPoolQueueSize bounds the pending column tasks of the shared pool.
const fieldPoolQueueSize = 256

// fieldPool is the long-lived worker pool shared by every concurrent field generation.
// Workers never exit once started, so the pool is created once and only grows.
var fieldPool struct {
	mu   sync.Mutex
	pool worker.DynamicWorkerPool
}

// acquireFieldPool locks the shared pool and returns it with at least workers goroutines.
// The caller must call releaseFieldPool when its tasks have completed.
func acquireFieldPool(workers int) worker.DynamicWorkerPool {
	fieldPool.mu.Lock()
	if fieldPool.pool == nil {
		fieldPool.pool = worker.NewDynamicWorkerPool(workers, fieldPoolQueueSize, 1*time.Second)
	} else if n := workers - fieldPool.pool.GetMaxWorkers(); n > 0 {
		fieldPool.pool.IncreaseMaxWorkers(n)
	}
	return fieldPool.pool
}

func releaseFieldPool() {
	fieldPool.mu.Unlock()
}

// GenerateFieldConcurrent builds the same field as GenerateField, splitting the columns across
// the shared worker pool. Each task owns a disjoint run of columns so no locking is needed on the cells.
// workers <= 1 generates on the calling goroutine. Concurrent calls are serialised on the pool.
func (t *Table) GenerateFieldConcurrent(size, workers int) *Field {
	if workers <= 1 || size <= 1 {
		return t.GenerateField(size)
	}
	workers = min(workers, size)

	f := newField(size)
	pool := acquireFieldPool(workers)
	defer releaseFieldPool()

	// pool.Wait tracks worker exits rather than task completion, so a WaitGroup is the barrier.
	var wg sync.WaitGroup
	chunk := (size + workers - 1) / workers
	for id, start := 0, 0; start < size; id, start = id+1, start+chunk {
		end := min(start+chunk, size)
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for x := start; x < end; x++ {
					t.fillColumn(f, x)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	return f
}

// GenerateFieldConcurrent builds a field from Permutation using the shared worker pool.
func GenerateFieldConcurrent(size, workers int) *Field {
	return Permutation.GenerateFieldConcurrent(size, workers)
}
