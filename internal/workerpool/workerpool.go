package workerpool

import (
	"sync"

	"github.com/jamespfennell/iso8601/internal/util"
)

// WorkerPool runs functions on a fixed number of goroutines.
type WorkerPool struct {
	c chan func()
	w sync.WaitGroup
}

// Run blocks until a worker is free to take f.
func (pool *WorkerPool) Run(f func()) {
	pool.c <- f
}

// Close waits for the running functions to finish and stops the workers. Run
// must not be called after Close.
func (pool *WorkerPool) Close() {
	close(pool.c)
	pool.w.Wait()
}

func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	pool := &WorkerPool{
		c: make(chan func()),
	}
	pool.w.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer pool.w.Done()
			for f := range pool.c {
				f()
			}
		}()
	}
	return pool
}

type ErrorGroup struct {
	g    sync.WaitGroup
	m    sync.Mutex
	errs []error
}

func (eg *ErrorGroup) Add(delta int) {
	eg.g.Add(delta)
}

func (eg *ErrorGroup) Done(err error) {
	eg.m.Lock()
	defer eg.m.Unlock()
	if err != nil {
		eg.errs = append(eg.errs, err)
	}
	eg.g.Done()
}

// Wait blocks until every added task is done and returns their errors
// combined.
func (eg *ErrorGroup) Wait() error {
	eg.g.Wait()
	return util.NewMultipleError(eg.errs...)
}
