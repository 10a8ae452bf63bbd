package pipeline

import (
	"sync"

	"github.com/GriffinCanCode/cache/internal/cache"
)

// Item is either a handle carrying one input line's cache entry, or the
// sentinel marking end-of-stream.
type Item struct {
	Handle   cache.Handle
	Sentinel bool
}

// Queue is the unbounded, single-producer/single-consumer control channel
// that carries one Item per input line, in order, from the Input worker to
// the Output worker, terminated by a sentinel.
//
// It is deliberately unbounded: backpressure is meant to flow through the
// child's stdin pipe buffer filling up, not through this queue. A bounded
// channel here would reintroduce the deadlock this design avoids: a full
// channel would block the Input worker on Produce while the Output worker
// is itself blocked reading the child's stdout, with nothing left to drain
// the child's stdin pipe.
type Queue struct {
	mu   sync.Mutex
	cond *sync.Cond
	buf  []Item
	head int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Produce appends item to the queue and wakes the consumer. Safe to call
// from exactly one producer goroutine.
func (q *Queue) Produce(item Item) {
	q.mu.Lock()
	q.buf = append(q.buf, item)
	q.mu.Unlock()
	q.cond.Signal()
}

// Consume blocks until an item is available and returns it. Safe to call
// from exactly one consumer goroutine.
func (q *Queue) Consume() Item {
	q.mu.Lock()
	for q.head >= len(q.buf) {
		q.cond.Wait()
	}
	item := q.buf[q.head]
	q.head++

	// Reclaim consumed prefix once it dominates the buffer, so a long run
	// doesn't hold onto every item it ever produced.
	if q.head > 4096 && q.head*2 > len(q.buf) {
		remaining := copy(q.buf, q.buf[q.head:])
		q.buf = q.buf[:remaining]
		q.head = 0
	}
	q.mu.Unlock()
	return item
}

// Len reports the number of items not yet consumed. Approximate once the
// producer is concurrently active; intended for metrics sampling only.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf) - q.head
}
