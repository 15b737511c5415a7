// Package pool provides a fixed set of worker goroutines for running
// independent computations in parallel.
package pool

import "runtime"

// task asks a worker to evaluate f at index i and store the result.
type task struct {
	i       int
	f       func(int) interface{}
	results []interface{}
	// done receives one value per finished task of the batch
	done chan<- struct{}
}

// worker runs tasks until the channel is closed.
func worker(tasks <-chan task) {
	for t := range tasks {
		t.results[t.i] = t.f(t.i)
		t.done <- struct{}{}
	}
}

// Pool represents a pool of workers, used for parallelizing functions.
//
// Functions needing a *Pool work with a nil receiver, doing the equivalent
// work on the current goroutine instead.
//
// By creating a pool, you avoid the overhead of spinning up goroutines for
// each new operation.
type Pool struct {
	tasks       chan task
	workerCount int
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	p := &Pool{
		tasks:       make(chan task),
		workerCount: count,
	}
	for i := 0; i < count; i++ {
		go worker(p.tasks)
	}
	return p
}

// Workers returns the number of workers, or 1 for a nil Pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

// TearDown stops the workers. The pool must not be used afterwards.
func (p *Pool) TearDown() {
	if p != nil {
		close(p.tasks)
	}
}

// Parallelize calls f count times, passing in indices from 0..count-1.
//
// The result is [f(0), f(1), ..., f(count - 1)]. Several goroutines may call
// Parallelize on the same Pool at once.
func (p *Pool) Parallelize(count int, f func(int) interface{}) []interface{} {
	results := make([]interface{}, count)
	if p == nil {
		for i := range results {
			results[i] = f(i)
		}
		return results
	}

	done := make(chan struct{}, count)
	for i := 0; i < count; i++ {
		p.tasks <- task{i: i, f: f, results: results, done: done}
	}
	for i := 0; i < count; i++ {
		<-done
	}
	return results
}
