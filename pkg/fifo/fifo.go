package fifo

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/AlexKordic/threading/pkg/deque"
)

// Unbounded is the capacity used by New. A queue with this capacity never
// reports ErrFull in practice.
const Unbounded = math.MaxInt

// preallocLimit caps the initial ring allocation for large bounds.
const preallocLimit = 64

// Queue is a bounded FIFO queue safe for concurrent use by multiple
// producers and consumers. Elements are delivered in the order their pushes
// completed. Push blocks while the queue is full, Pop blocks while it is
// empty, and Close wakes every blocked caller.
//
// Once closed, producers are refused with ErrClosed while consumers keep
// draining the remaining elements; ErrClosed is reported only when the queue
// is both closed and empty. No fairness is guaranteed among blocked callers;
// wake order is whatever sync.Cond provides.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond // consumers wait here for an element
	notFull  *sync.Cond // producers wait here for a free slot
	items    *deque.Deque[T]
	capacity int
	closed   bool
}

// New creates an open queue with effectively unbounded capacity.
func New[T any]() *Queue[T] {
	return NewBounded[T](Unbounded)
}

// NewBounded creates an open queue holding at most capacity elements.
// It panics if capacity is less than 1; a zero-capacity queue could never
// accept a push and is a programming error.
func NewBounded[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		panic("fifo: capacity must be at least 1")
	}
	prealloc := capacity
	if prealloc > preallocLimit {
		prealloc = preallocLimit
	}
	q := &Queue[T]{
		items:    deque.New[T](prealloc),
		capacity: capacity,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// TryPush appends v at the tail without blocking.
// It returns ErrClosed after Close, or ErrFull when the queue is at capacity.
func (q *Queue[T]) TryPush(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	if q.items.Len() >= q.capacity {
		return ErrFull
	}
	q.items.PushBack(v)
	q.notEmpty.Signal()
	return nil
}

// Push appends v at the tail, blocking while the queue is full.
// It returns ErrClosed if the queue is closed before the element is appended;
// in that case v was not enqueued and the caller still owns it.
func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	for q.items.Len() >= q.capacity {
		q.notFull.Wait()
		if q.closed {
			return ErrClosed
		}
	}
	q.items.PushBack(v)
	q.notEmpty.Signal()
	return nil
}

// TryPop removes and returns the head element without blocking.
// It returns ErrEmpty when no element is available, or ErrClosed when the
// queue is closed and fully drained.
func (q *Queue[T]) TryPop() (T, error) {
	var zero T
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Len() == 0 {
		if q.closed {
			return zero, ErrClosed
		}
		return zero, ErrEmpty
	}
	v, _ := q.items.PopFront()
	q.notFull.Signal()
	return v, nil
}

// Pop removes and returns the head element, blocking while the queue is
// empty. A closed queue still yields its remaining elements; ErrClosed is
// returned only once it is empty as well.
func (q *Queue[T]) Pop() (T, error) {
	var zero T
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Len() == 0 {
		if q.closed {
			return zero, ErrClosed
		}
		q.notEmpty.Wait()
	}
	v, _ := q.items.PopFront()
	q.notFull.Signal()
	return v, nil
}

// PopTimeout is Pop bounded by a relative timeout. The absolute deadline is
// computed once at entry; spurious wakeups do not extend it.
func (q *Queue[T]) PopTimeout(timeout time.Duration) (T, error) {
	return q.PopDeadline(time.Now().Add(timeout))
}

// PopDeadline is Pop bounded by an absolute deadline. It returns ErrTimeout
// if the deadline expires while the queue is still empty.
func (q *Queue[T]) PopDeadline(deadline time.Time) (T, error) {
	var zero T
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Len() == 0 {
		if q.closed {
			return zero, ErrClosed
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return zero, ErrTimeout
		}
		// sync.Cond has no timed wait; a timer broadcast stands in for one.
		// The callback takes the lock first: it cannot run until Wait has
		// registered this waiter and released the mutex, so the broadcast
		// cannot be lost. Waiters woken early re-check their own deadlines
		// in this loop.
		wakeup := time.AfterFunc(remaining, func() {
			q.mu.Lock()
			defer q.mu.Unlock()
			q.notEmpty.Broadcast()
		})
		q.notEmpty.Wait()
		wakeup.Stop()
	}
	v, _ := q.items.PopFront()
	q.notFull.Signal()
	return v, nil
}

// PopContext is Pop bounded by a context. It returns ctx.Err() if the
// context is done while the queue is still empty.
func (q *Queue[T]) PopContext(ctx context.Context) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}
	// Locking in the callback orders the broadcast after this goroutine's
	// Wait registration; a cancel landing between the ctx.Err() check and
	// Wait would otherwise fire into a void and never be re-delivered.
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		q.notEmpty.Broadcast()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Len() == 0 {
		if q.closed {
			return zero, ErrClosed
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		q.notEmpty.Wait()
	}
	v, _ := q.items.PopFront()
	q.notFull.Signal()
	return v, nil
}

// Get removes and returns the first element, scanning head to tail, for
// which pred returns true. The relative order of the remaining elements is
// preserved. It returns ErrNotFound when nothing matches, or ErrClosed when
// the queue is closed and empty.
//
// pred runs with the queue lock held: it must be fast, must not call back
// into the queue (deadlock), and must not retain or mutate the element.
func (q *Queue[T]) Get(pred func(T) bool) (T, error) {
	var zero T
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed && q.items.Len() == 0 {
		return zero, ErrClosed
	}
	for i := 0; i < q.items.Len(); i++ {
		if pred(q.items.At(i)) {
			v := q.items.RemoveAt(i)
			q.notFull.Signal()
			return v, nil
		}
	}
	return zero, ErrNotFound
}

// EraseIf removes every element for which pred returns true, preserving the
// order of the survivors, and returns the number removed. Producers blocked
// on a full queue are woken when slots free up.
//
// Same predicate constraints as Get. Matches are collected before any
// element is removed, so a panicking predicate leaves the queue unchanged.
func (q *Queue[T]) EraseIf(pred func(T) bool) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	var matched []int
	for i := 0; i < q.items.Len(); i++ {
		if pred(q.items.At(i)) {
			matched = append(matched, i)
		}
	}
	for n, i := range matched {
		// Earlier removals shift later indices left by one each.
		q.items.RemoveAt(i - n)
	}
	if len(matched) > 0 {
		q.notFull.Broadcast()
	}
	return len(matched)
}

// Size returns the number of elements currently queued.
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Running reports whether the queue is still open.
func (q *Queue[T]) Running() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.closed
}

// Cap returns the capacity fixed at construction.
func (q *Queue[T]) Cap() int {
	return q.capacity
}

// Close marks the queue closed and wakes every blocked producer and
// consumer. Further pushes are refused; consumers drain what remains.
// Close is idempotent and never blocks.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}
