// Package pool runs analysis tasks with bounded parallelism. Outputs and
// per-task errors are collected under a lock and handed back once every
// worker has drained, so callers merge results sequentially.
package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// ProgressFunc is called after each task finishes with the number done,
// the total, and the label of the finished task.
type ProgressFunc func(done, total int, label string)

// TaskError records one failed task without aborting its siblings.
type TaskError struct {
	Label string
	Err   error
}

func (e TaskError) Error() string { return fmt.Sprintf("%s: %v", e.Label, e.Err) }

func (e TaskError) Unwrap() error { return e.Err }

// Result holds everything a Run collected. Output order follows task
// completion, not submission; callers needing a stable order must sort.
type Result[O any] struct {
	Outputs []O
	Errors  []TaskError
}

// Coordinator fans tasks out to a bounded set of workers.
type Coordinator[I, O any] struct {
	workers    int
	label      func(I) string
	run        func(context.Context, I) (O, error)
	onProgress ProgressFunc
}

// NewCoordinator builds a Coordinator running at most workers tasks at
// once. label names a task for progress and error reporting.
func NewCoordinator[I, O any](workers int, label func(I) string, run func(context.Context, I) (O, error)) *Coordinator[I, O] {
	if workers < 1 {
		workers = 1
	}
	return &Coordinator[I, O]{workers: workers, label: label, run: run}
}

// OnProgress registers a progress callback and returns the coordinator.
func (c *Coordinator[I, O]) OnProgress(fn ProgressFunc) *Coordinator[I, O] {
	c.onProgress = fn
	return c
}

// Run processes every input and returns the collected outputs and task
// errors. A cancelled context stops dispatching new tasks; inputs that
// never ran are recorded as errors so counts always add up.
func (c *Coordinator[I, O]) Run(ctx context.Context, inputs []I) *Result[O] {
	total := len(inputs)
	result := &Result[O]{}
	if total == 0 {
		return result
	}

	sem := make(chan struct{}, c.workers)
	var mu sync.Mutex
	var processed int64
	var wg sync.WaitGroup

	report := func(label string) {
		count := atomic.AddInt64(&processed, 1)
		if c.onProgress != nil {
			c.onProgress(int(count), total, label)
		}
	}

	for _, input := range inputs {
		label := c.label(input)

		if ctx.Err() != nil {
			mu.Lock()
			result.Errors = append(result.Errors, TaskError{Label: label, Err: ctx.Err()})
			mu.Unlock()
			report(label)
			continue
		}

		select {
		case <-ctx.Done():
			mu.Lock()
			result.Errors = append(result.Errors, TaskError{Label: label, Err: ctx.Err()})
			mu.Unlock()
			report(label)
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(in I, label string) {
			defer wg.Done()
			defer func() { <-sem }()

			out, err := c.run(ctx, in)
			mu.Lock()
			if err != nil {
				result.Errors = append(result.Errors, TaskError{Label: label, Err: err})
			} else {
				result.Outputs = append(result.Outputs, out)
			}
			mu.Unlock()
			report(label)
		}(input, label)
	}

	wg.Wait()
	return result
}
