// worker/pool.go
package worker

import "sync"

type Job[T any] func() T

type Result[T any] struct {
	JobID  int
	Output T
}

type Pool[T any] struct {
	jobs    chan jobWrapper[T]
	results chan Result[T]
	wg      sync.WaitGroup
	once    sync.Once
}

type jobWrapper[T any] struct {
	id int
	fn Job[T]
}

func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool[T]{
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.results <- Result[T]{
			JobID:  job.id,
			Output: job.fn(),
		}
	}
}

// Submit queues a job. It must not be called after Close.
func (p *Pool[T]) Submit(id int, fn Job[T]) {
	p.jobs <- jobWrapper[T]{id: id, fn: fn}
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops accepting jobs. Results is closed once every queued job has
// produced its result.
func (p *Pool[T]) Close() {
	p.once.Do(func() {
		close(p.jobs)
		go func() {
			p.wg.Wait()
			close(p.results)
		}()
	})
}

// Map runs fn over items on a pool of workerCount workers and returns the
// outputs in input order.
func Map[In, Out any](workerCount int, items []In, fn func(In) Out) []Out {
	out := make([]Out, len(items))
	if len(items) == 0 {
		return out
	}
	if workerCount > len(items) {
		workerCount = len(items)
	}

	p := NewPool[Out](workerCount, len(items))
	for i, item := range items {
		p.Submit(i, func() Out { return fn(item) })
	}
	p.Close()

	for r := range p.Results() {
		out[r.JobID] = r.Output
	}
	return out
}
