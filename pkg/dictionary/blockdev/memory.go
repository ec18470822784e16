package blockdev

import (
	"context"
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a requested byte range falls outside the
// device's backing storage.
var ErrOutOfRange = errors.New("blockdev: read/write out of range")

// Memory is an in-memory BlockDevice/WritableBlockDevice backed by a plain
// byte slice, grounded on the original implementation's BufferedSource
// (compile/mod.rs) and used by the compiler's round-trip self-check
// (spec.md §4.2.6) and by tests across pkg/dictionary.
type Memory struct {
	data []byte
}

// NewMemory returns a Memory device initialized from data. The slice is
// copied; callers may reuse or discard their original.
func NewMemory(data []byte) *Memory {
	return &Memory{data: append([]byte(nil), data...)}
}

// Bytes returns a copy of the device's current contents.
func (m *Memory) Bytes() []byte { return append([]byte(nil), m.data...) }

// ReadAt implements BlockDevice. Reads that run past the end of the
// backing slice copy whatever bytes are available and leave the rest of
// buf unmodified, mirroring the original implementation's BufferedSource
// (which tolerates a read buffer larger than necessary at the tail of the
// file, since the dictionary reader always reads a fixed-size node
// buffer regardless of how many bytes the node actually occupies).
func (m *Memory) ReadAt(_ context.Context, offset uint32, buf []byte) error {
	start := int(offset)
	if start > len(m.data) {
		return fmt.Errorf("%w: offset %d beyond %d bytes", ErrOutOfRange, offset, len(m.data))
	}

	end := start + len(buf)
	if end > len(m.data) {
		end = len(m.data)
	}

	copy(buf, m.data[start:end])

	return nil
}

// WriteAt implements WritableBlockDevice, growing the backing slice as
// needed.
func (m *Memory) WriteAt(_ context.Context, offset uint32, data []byte) error {
	end := int(offset) + len(data)
	if end > len(m.data) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}

	copy(m.data[offset:], data)

	return nil
}

// EraseRange implements WritableBlockDevice by filling the range with 0xFF,
// standing in for hardware flash's erased-state value.
func (m *Memory) EraseRange(_ context.Context, start, end uint32) error {
	if end > uint32(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}

	for i := start; i < end; i++ {
		m.data[i] = 0xFF
	}

	return nil
}
