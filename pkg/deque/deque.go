package deque

const minCapacity = 8

// Deque is a growable double-ended queue backed by a power-of-two ring buffer.
// It is not safe for concurrent use; callers that share a Deque across
// goroutines must provide their own locking.
type Deque[T any] struct {
	buf  []T
	head int // index of the front element
	size int
}

// New creates a Deque with room for at least the given number of elements
// before the first grow. A non-positive capacity defers allocation to the
// first PushBack.
func New[T any](capacity int) *Deque[T] {
	d := &Deque[T]{}
	if capacity > 0 {
		d.buf = make([]T, ceilPow2(capacity))
	}
	return d
}

// Len returns the number of elements currently stored.
func (d *Deque[T]) Len() int { return d.size }

// Cap returns the current ring capacity.
func (d *Deque[T]) Cap() int { return len(d.buf) }

// PushBack appends v at the tail, growing the ring if it is full.
func (d *Deque[T]) PushBack(v T) {
	if d.size == len(d.buf) {
		d.grow()
	}
	d.buf[d.idx(d.size)] = v
	d.size++
}

// PopFront removes and returns the front element.
// ok is false when the deque is empty.
func (d *Deque[T]) PopFront() (v T, ok bool) {
	var zero T
	if d.size == 0 {
		return zero, false
	}
	v = d.buf[d.head]
	// Zero the vacated slot so pointer elements are released promptly.
	d.buf[d.head] = zero
	d.head = d.idx(1)
	d.size--
	return v, true
}

// Front returns the front element without removing it.
// ok is false when the deque is empty.
func (d *Deque[T]) Front() (v T, ok bool) {
	var zero T
	if d.size == 0 {
		return zero, false
	}
	return d.buf[d.head], true
}

// At returns the element at position i counted from the front.
// It panics if i is out of range.
func (d *Deque[T]) At(i int) T {
	if i < 0 || i >= d.size {
		panic("deque: index out of range")
	}
	return d.buf[d.idx(i)]
}

// RemoveAt removes and returns the element at position i counted from the
// front, preserving the relative order of the remaining elements.
// It panics if i is out of range.
func (d *Deque[T]) RemoveAt(i int) T {
	if i < 0 || i >= d.size {
		panic("deque: index out of range")
	}
	v := d.buf[d.idx(i)]

	// Shift the tail side left by one slot.
	for j := i; j < d.size-1; j++ {
		d.buf[d.idx(j)] = d.buf[d.idx(j+1)]
	}

	var zero T
	d.buf[d.idx(d.size-1)] = zero
	d.size--
	return v
}

// idx maps a logical offset from the front to a physical ring index.
// Valid only when the ring is allocated; len(buf) is a power of two.
func (d *Deque[T]) idx(offset int) int {
	return (d.head + offset) & (len(d.buf) - 1)
}

// grow doubles the ring and linearizes the elements starting at index 0.
func (d *Deque[T]) grow() {
	newCap := len(d.buf) * 2
	if newCap < minCapacity {
		newCap = minCapacity
	}
	buf := make([]T, newCap)
	for i := 0; i < d.size; i++ {
		buf[i] = d.buf[d.idx(i)]
	}
	d.buf = buf
	d.head = 0
}

// ceilPow2 returns n rounded up to the nearest power of two.
func ceilPow2(n int) int {
	if n <= minCapacity {
		return minCapacity
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
