package containers

import "errors"

var (
	ErrQueueFull  = errors.New("queue is full")
	ErrQueueEmpty = errors.New("queue is empty")
)

// RingQueue is a fixed capacity FIFO over a preallocated buffer. It is not
// safe for concurrent use.
type RingQueue[T any] struct {
	buf   []T
	head  int
	count int
}

func NewRingQueue[T any](capacity int) *RingQueue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &RingQueue[T]{buf: make([]T, capacity)}
}

func (rq *RingQueue[T]) Enqueue(value T) error {
	if rq.IsFull() {
		return ErrQueueFull
	}
	rq.buf[(rq.head+rq.count)%len(rq.buf)] = value
	rq.count++
	return nil
}

func (rq *RingQueue[T]) Dequeue() (T, error) {
	var zero T
	if rq.IsEmpty() {
		return zero, ErrQueueEmpty
	}
	value := rq.buf[rq.head]
	rq.buf[rq.head] = zero
	rq.head = (rq.head + 1) % len(rq.buf)
	rq.count--
	return value, nil
}

// Peek returns the front element without removing it.
func (rq *RingQueue[T]) Peek() (T, error) {
	if rq.IsEmpty() {
		var zero T
		return zero, ErrQueueEmpty
	}
	return rq.buf[rq.head], nil
}

// Drain removes every queued element in FIFO order.
func (rq *RingQueue[T]) Drain() []T {
	out := make([]T, 0, rq.count)
	for !rq.IsEmpty() {
		v, _ := rq.Dequeue()
		out = append(out, v)
	}
	return out
}

func (rq *RingQueue[T]) Len() int      { return rq.count }
func (rq *RingQueue[T]) Cap() int      { return len(rq.buf) }
func (rq *RingQueue[T]) IsEmpty() bool { return rq.count == 0 }
func (rq *RingQueue[T]) IsFull() bool  { return rq.count == len(rq.buf) }
