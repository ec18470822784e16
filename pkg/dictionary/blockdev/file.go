package blockdev

import (
	"context"
	"errors"
	"io"
	"os"
	"time"
)

// File is a WritableBlockDevice backed by a regular OS file, used by
// stenoc's offline tooling (the compiler's self-check, and "translate"
// reading a dictionary built on a non-embedded host). Real firmware talks
// to QSPI flash directly; this adapter exists for the host side of the
// split, per spec.md §9: "Implementers on non-embedded targets (e.g. the
// offline compiler's self-check) may use a blocking block-device
// adapter."
type File struct {
	f *os.File

	// Latency optionally simulates per-read device delay, for exercising
	// the engine's "abort current stroke on block failure" timeout paths
	// in tests without real hardware.
	Latency time.Duration
}

// OpenFile opens path for read/write, creating it if necessary.
func OpenFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}

	return &File{f: f}, nil
}

// Close closes the underlying file.
func (d *File) Close() error { return d.f.Close() }

// ReadAt implements BlockDevice.
func (d *File) ReadAt(ctx context.Context, offset uint32, buf []byte) error {
	if err := d.sleep(ctx); err != nil {
		return err
	}

	n, err := d.f.ReadAt(buf, int64(offset))
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if n < len(buf) {
		// Tail reads past EOF are tolerated, as Memory tolerates them (here
		// the unread tail is zeroed): the dictionary reader's buffer is
		// sized for the largest possible node, not the actual one at this
		// offset.
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
	}

	return nil
}

// WriteAt implements WritableBlockDevice.
func (d *File) WriteAt(ctx context.Context, offset uint32, data []byte) error {
	if err := d.sleep(ctx); err != nil {
		return err
	}

	_, err := d.f.WriteAt(data, int64(offset))

	return err
}

// EraseRange implements WritableBlockDevice by writing 0xFF over the
// range, standing in for a real flash chip's erased state.
func (d *File) EraseRange(ctx context.Context, start, end uint32) error {
	if err := d.sleep(ctx); err != nil {
		return err
	}

	blank := make([]byte, end-start)
	for i := range blank {
		blank[i] = 0xFF
	}

	_, err := d.f.WriteAt(blank, int64(start))

	return err
}

func (d *File) sleep(ctx context.Context) error {
	if d.Latency <= 0 {
		return nil
	}

	t := time.NewTimer(d.Latency)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
