// Package blockdev defines the small block-oriented I/O surface the
// dictionary reader streams from (spec.md §2 "Block device": "Fixed-size
// (e.g. 512 B) read/write of external storage"), plus adapters for use
// off hardware.
//
// Interface shape grounded on the teacher's pkg/fs.FS passthrough-interface
// style (internal/fs/real.go), adapted from whole-file POSIX ops to
// fixed-size block I/O. Synchronicity grounded on spec.md §9 "Coroutine
// control flow": a synchronous dictionary would either pin entire memory
// or block the scheduler, so every read carries a context.Context to model
// the "awaits a block read" suspension point without requiring goroutines.
package blockdev

import "context"

// BlockDevice is a random-access, read/write byte range over external
// storage (spec.md §2, §9). offset/length are absolute byte offsets; a
// BlockDevice does not impose its own block-size granularity on callers,
// though real hardware implementations typically round internally to a
// fixed block (e.g. 512 B).
type BlockDevice interface {
	// ReadAt reads len(buf) bytes starting at offset into buf. It returns
	// an error when the storage cannot be read (Memory also rejects an
	// offset beyond its data with ErrOutOfRange). A range that runs past
	// the end of the stored data is not an error for the adapters in this
	// package: the bytes that exist are copied and the rest of buf is
	// zeroed (File) or left unmodified (Memory).
	ReadAt(ctx context.Context, offset uint32, buf []byte) error
}

// WritableBlockDevice extends BlockDevice with write/erase, used by the
// flash upload path (spec.md §6 flash wire protocol) and the offline
// compiler's file-backed adapter.
type WritableBlockDevice interface {
	BlockDevice

	// WriteAt writes data starting at offset.
	WriteAt(ctx context.Context, offset uint32, data []byte) error

	// EraseRange erases the byte range [start, end) to the device's blank
	// state (hardware flash requires an erase before a re-write).
	EraseRange(ctx context.Context, start, end uint32) error
}
