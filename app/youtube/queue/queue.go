// Package queue runs units of work with a fixed concurrency ceiling.
// Units start in submission order; the submitter blocks while all slots are busy.
package queue

import (
	"context"
	"fmt"

	"github.com/go-pkgz/syncs"
)

// Queue executes submitted functions, at most size of them at once
type Queue[T any] struct {
	grp  *syncs.SizedGroup
	size int
}

// Future is the pending result of a submitted unit
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// New makes a queue with the given ceiling, values below 1 treated as 1
func New[T any](size int) *Queue[T] {
	if size < 1 {
		size = 1
	}
	// preemptive mode acquires the slot in Submit, this keeps start order equal to submission order
	return &Queue[T]{grp: syncs.NewSizedGroup(size, syncs.Preemptive), size: size}
}

// Size returns the concurrency ceiling
func (q *Queue[T]) Size() int { return q.size }

// Submit schedules fn and returns its future. Blocks until a slot is free.
// If ctx is done by the time the unit starts, fn is not called and the future gets ctx.Err().
func (q *Queue[T]) Submit(ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	q.grp.Go(func(context.Context) {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("unit panicked: %v", r)
			}
		}()
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.val, f.err = fn(ctx)
	})
	return f
}

// Wait blocks until every submitted unit is finished
func (q *Queue[T]) Wait() {
	q.grp.Wait()
}

// Wait blocks until the unit is finished and returns its result
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.val, f.err
}
