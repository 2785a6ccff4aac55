// Package local provides an in-process task queue, executing tasks on a
// fixed set of worker goroutines.
package local

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/urandom/newsroom/log"
	"github.com/urandom/newsroom/task"
)

// ErrClosed is returned when enqueuing into a closed or stopped queue.
var ErrClosed = errors.New("queue closed")

type queueOp func(*queueState)

type queueState struct {
	pending  []task.Task
	inflight int
	idle     []chan struct{}
	closed   bool
}

// Queue is an unbounded FIFO queue. Enqueue does not block on busy workers,
// so tasks may schedule further tasks from within their handlers.
type Queue struct {
	workers int

	ops     chan queueOp
	ready   chan task.Task
	stopped chan struct{}

	wg  *sync.WaitGroup
	log log.Log
}

func New(workers int, log log.Log) Queue {
	if workers < 1 {
		workers = 1
	}

	return Queue{
		workers: workers,
		ops:     make(chan queueOp),
		ready:   make(chan task.Task),
		stopped: make(chan struct{}),
		wg:      &sync.WaitGroup{},
		log:     log,
	}
}

// Start launches the workers, which pass every task to h. The queue stops
// when ctx is done, dropping any pending tasks.
func (q Queue) Start(ctx context.Context, h task.Handler) {
	go q.loop(ctx)

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.work(ctx, h)
	}
}

func (q Queue) Enqueue(ctx context.Context, t task.Task) error {
	res := make(chan error, 1)

	if err := q.do(ctx, func(s *queueState) {
		if s.closed {
			res <- ErrClosed
			return
		}

		s.pending = append(s.pending, t)
		s.inflight++
		res <- nil
	}); err != nil {
		return errors.WithMessagef(err, "enqueuing task %s", t)
	}

	if err := <-res; err != nil {
		return errors.WithMessagef(err, "enqueuing task %s", t)
	}

	return nil
}

// Wait blocks until no task is pending or running, or until ctx is done.
func (q Queue) Wait(ctx context.Context) error {
	idle := make(chan struct{})

	if err := q.do(ctx, func(s *queueState) {
		if s.inflight == 0 {
			close(idle)
			return
		}

		s.idle = append(s.idle, idle)
	}); err != nil {
		if err == ErrClosed {
			return nil
		}
		return err
	}

	select {
	case <-idle:
		return nil
	case <-q.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks, runs the pending ones and waits for the
// workers to exit.
func (q Queue) Close() {
	q.do(context.Background(), func(s *queueState) {
		s.closed = true
	})

	q.wg.Wait()
}

func (q Queue) do(ctx context.Context, op queueOp) error {
	select {
	case q.ops <- op:
		return nil
	case <-q.stopped:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q Queue) done() {
	q.do(context.Background(), func(s *queueState) {
		s.inflight--

		if s.inflight == 0 {
			for _, idle := range s.idle {
				close(idle)
			}
			s.idle = nil
		}
	})
}

func (q Queue) loop(ctx context.Context) {
	defer close(q.stopped)
	defer close(q.ready)

	state := queueState{}

	for {
		if state.closed && len(state.pending) == 0 {
			return
		}

		var ready chan task.Task
		var head task.Task
		if len(state.pending) > 0 {
			ready = q.ready
			head = state.pending[0]
		}

		select {
		case ready <- head:
			state.pending[0] = task.Task{}
			state.pending = state.pending[1:]
		case op := <-q.ops:
			op(&state)
		case <-ctx.Done():
			if len(state.pending) > 0 {
				q.log.Printf("Dropping %d pending tasks: %v", len(state.pending), ctx.Err())
			}
			return
		}
	}
}

func (q Queue) work(ctx context.Context, h task.Handler) {
	defer q.wg.Done()

	for t := range q.ready {
		q.handle(ctx, h, t)
		q.done()
	}
}

func (q Queue) handle(ctx context.Context, h task.Handler, t task.Task) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Printf("Task %s panicked: %v", t, r)
		}
	}()

	q.log.Debugf("Running task %s", t)

	if err := h.Handle(ctx, t); err != nil {
		if task.IsPermanent(err) {
			q.log.Printf("Task %s failed permanently: %+v", t, err)
		} else {
			q.log.Printf("Task %s failed: %+v", t, err)
		}
	}
}
