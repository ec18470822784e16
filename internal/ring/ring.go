// Package ring implements the fixed-capacity ring buffer that both the
// formatter's undo history and the matcher's stroke history are built on,
// a direct port of original_source/code/shittyengine/src/buffer.rs's
// HistoryBuffer<T, const N>. Go has no const-generic array sizes, so
// capacity is a runtime field backed by a slice instead of a fixed array.
package ring

// Buffer is a fixed-capacity ring buffer indexed from the back: offset 0
// is the most recently pushed element, increasing offsets walk backward
// in time. Pushing past capacity silently evicts the oldest element.
type Buffer[T any] struct {
	data    []T
	writeAt int
	filled  bool
}

// New returns an empty Buffer with the given capacity. Capacity must be
// positive.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}

	return &Buffer[T]{data: make([]T, capacity)}
}

// Len returns the current number of stored elements.
func (b *Buffer[T]) Len() int {
	if b.filled {
		return len(b.data)
	}

	return b.writeAt
}

// Capacity returns the buffer's fixed capacity.
func (b *Buffer[T]) Capacity() int { return len(b.data) }

// Push appends an element, evicting and returning the oldest element if
// the buffer was already at capacity.
func (b *Buffer[T]) Push(v T) (evicted T, ok bool) {
	if b.filled {
		evicted, ok = b.data[b.writeAt], true
	}

	b.data[b.writeAt] = v
	b.writeAt++

	if b.writeAt == len(b.data) {
		b.writeAt = 0
		b.filled = true
	}

	return evicted, ok
}

// Pop removes and returns the most recently pushed element.
func (b *Buffer[T]) Pop() (v T, ok bool) {
	if b.filled {
		// Move the oldest element back to index 0, so that once the buffer
		// is no longer full writeAt alone is its length again.
		rotated := make([]T, 0, len(b.data))
		rotated = append(rotated, b.data[b.writeAt:]...)
		rotated = append(rotated, b.data[:b.writeAt]...)
		b.data = rotated
		b.filled = false
		b.writeAt = len(b.data) - 1

		return b.data[b.writeAt], true
	}

	if b.writeAt == 0 {
		return v, false
	}

	b.writeAt--

	return b.data[b.writeAt], true
}

// Back returns the most recently pushed element, equivalent to
// PeekBack(0).
func (b *Buffer[T]) Back() (v T, ok bool) { return b.PeekBack(0) }

// PeekBack returns the element `offset` positions behind the most recent
// one (0 = most recent).
func (b *Buffer[T]) PeekBack(offset int) (v T, ok bool) {
	idx, ok := b.indexForOffset(offset)
	if !ok {
		return v, false
	}

	return b.data[idx], true
}

// At is an alias for PeekBack matching the original's Index operator
// (offset 0 = most recent, increasing offsets are older).
func (b *Buffer[T]) At(offset int) (v T, ok bool) { return b.PeekBack(offset) }

// PeekBackPtr returns a pointer to the element `offset` positions behind
// the most recent one, for in-place mutation (the original's
// peek_back_mut / IndexMut).
func (b *Buffer[T]) PeekBackPtr(offset int) (*T, bool) {
	idx, ok := b.indexForOffset(offset)
	if !ok {
		return nil, false
	}

	return &b.data[idx], true
}

func (b *Buffer[T]) indexForOffset(offset int) (int, bool) {
	if offset < 0 || offset >= b.Len() {
		return 0, false
	}

	var idx int
	if b.writeAt == 0 {
		idx = len(b.data) - 1
	} else {
		idx = b.writeAt - 1
	}

	for offset > 0 {
		if idx == 0 {
			idx = len(b.data) - 1
		} else {
			idx--
		}

		offset--
	}

	return idx, true
}
