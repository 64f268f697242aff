package service

import (
	"context"
	"sync"
	"time"
)

const (
	followUpQueueSize = 256
	followUpTimeout   = 15 * time.Second
)

// followUpQueue runs post-commit work on one goroutine, in submission order. A task gets
// the request context without its cancellation, so logging and trace ids carry over
// after the response was written.
type followUpQueue struct {
	mu     sync.Mutex
	closed bool
	tasks  chan func()
	done   chan struct{}
}

func newFollowUpQueue(size int) *followUpQueue {
	q := &followUpQueue{
		tasks: make(chan func(), size),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *followUpQueue) run() {
	defer close(q.done)
	for task := range q.tasks {
		task()
	}
}

// enqueue blocks while the queue is full. After close the task runs inline.
func (q *followUpQueue) enqueue(ctx context.Context, task func(ctx context.Context)) {
	detached := context.WithoutCancel(ctx)
	job := func() {
		ctx, cancel := context.WithTimeout(detached, followUpTimeout)
		defer cancel()
		task(ctx)
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		job()
		return
	}
	q.tasks <- job
	q.mu.Unlock()
}

// flush waits for every task queued before it.
func (q *followUpQueue) flush() {
	ran := make(chan struct{})
	q.enqueue(context.Background(), func(context.Context) { close(ran) })
	<-ran
}

// close drains the queue and stops the worker.
func (q *followUpQueue) close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	q.mu.Unlock()
	<-q.done
}
