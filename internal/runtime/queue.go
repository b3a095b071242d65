package runtime

import (
	"sync"
)

// Queue hands values from a producer that must never block to a consumer
// reading Chan. Values are delivered in push order.
type Queue[T any] struct {
	mu       sync.Mutex
	cond     *sync.Cond
	pending  []T
	finished bool // no more pushes; close after the backlog is delivered
	aborted  bool // no more pushes; drop the backlog

	outCh chan T
	abort chan struct{}
}

func NewQueue[T any](outBuf int) *Queue[T] {
	q := &Queue[T]{
		outCh: make(chan T, outBuf),
		abort: make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.dispatch()
	return q
}

// Chan is closed once the queue has been finished and drained, or aborted.
func (q *Queue[T]) Chan() <-chan T { return q.outCh }

// Push appends v. It reports false once Finish or Close has been called.
func (q *Queue[T]) Push(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.finished || q.aborted {
		return false
	}
	q.pending = append(q.pending, v)
	q.cond.Signal()
	return true
}

// Len returns the number of values not yet handed to the channel.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Finish stops accepting values; the channel closes after the backlog.
func (q *Queue[T]) Finish() {
	q.mu.Lock()
	q.finished = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

// Close drops the backlog and closes the channel, even if the consumer has
// stopped reading. Safe to call more than once.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	if !q.aborted {
		q.aborted = true
		close(q.abort)
	}
	q.pending = nil
	q.cond.Broadcast()
	q.mu.Unlock()
}

func (q *Queue[T]) dispatch() {
	defer close(q.outCh)
	for {
		q.mu.Lock()
		for !q.aborted && !q.finished && len(q.pending) == 0 {
			q.cond.Wait()
		}
		if q.aborted || len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		v := q.pending[0]
		copy(q.pending, q.pending[1:])
		q.pending = q.pending[:len(q.pending)-1]
		q.mu.Unlock()

		select {
		case q.outCh <- v:
		case <-q.abort:
			return
		}
	}
}
