package ringlog

/*
ringBuffer is the byte queue between logging goroutines (producers) and the
single writer goroutine (consumer).

Producers never wait for space: enqueue copies as many bytes as fit and
drops the rest, so under sustained overflow a line may be cut at any byte.
The dropped amount is counted. The consumer waits on notEmpty while the
buffer is empty and running; shutdown waits on drained until the consumer
has emptied the buffer.

All of head, tail, count and running are only touched with mu held.
*/

import (
	"sync"
	"sync/atomic"
)

type ringBuffer struct {
	mu       sync.Mutex
	notEmpty *sync.Cond // signalled by producers and by stop
	drained  *sync.Cond // broadcast by the consumer when count reaches zero
	data     []byte
	head     int // next write position
	tail     int // next read position
	count    int // bytes currently held
	running  bool
	dropped  atomic.Uint64
}

func newRingBuffer(capacity int) *ringBuffer {
	if capacity <= 0 {
		capacity = DEFAULT_CAPACITY
	}
	rb := &ringBuffer{
		data:    make([]byte, capacity),
		running: true,
	}
	rb.notEmpty = sync.NewCond(&rb.mu)
	rb.drained = sync.NewCond(&rb.mu)
	return rb
}

// enqueue copies the longest prefix of p that fits and returns its length.
// The remainder is discarded and added to the dropped counter.
func (rb *ringBuffer) enqueue(p []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	size := len(rb.data)
	n := min(len(p), size-rb.count)
	// at most two chunks: up to the end of the array, then from its start
	first := copy(rb.data[rb.head:], p[:n])
	copy(rb.data, p[first:n])
	rb.head = (rb.head + n) % size
	rb.count += n
	if n > 0 {
		rb.notEmpty.Signal()
	}
	if lost := len(p) - n; lost > 0 {
		rb.dropped.Add(uint64(lost))
	}
	return n
}

// drainRound moves bytes from the tail into scratch until scratch is full,
// the buffer is empty or a newline has been copied. It waits while the
// buffer is empty and running. ok is false once the buffer is stopped and
// empty, which ends the consumer.
func (rb *ringBuffer) drainRound(scratch []byte) (n int, ok bool) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	for rb.count == 0 && rb.running {
		rb.notEmpty.Wait()
	}
	if rb.count == 0 {
		return 0, false
	}
	size := len(rb.data)
	for n < len(scratch) && rb.count > 0 {
		b := rb.data[rb.tail]
		scratch[n] = b
		n++
		rb.tail = (rb.tail + 1) % size
		rb.count--
		if b == '\n' {
			break
		}
	}
	if rb.count == 0 {
		rb.drained.Broadcast()
	}
	return n, true
}

// waitDrained blocks until the consumer has taken every held byte. Bytes
// taken by the consumer may still be in flight to the sink when it returns.
func (rb *ringBuffer) waitDrained() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	for rb.count > 0 {
		rb.drained.Wait()
	}
}

// stop clears the running flag and wakes the consumer so it can finish.
func (rb *ringBuffer) stop() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.running = false
	rb.notEmpty.Broadcast()
}

// buffered returns the number of bytes held.
func (rb *ringBuffer) buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

func (rb *ringBuffer) capacity() int {
	return len(rb.data)
}
