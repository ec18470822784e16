package flashproto

import (
	"context"

	"github.com/chordforge/steno/pkg/dictionary/blockdev"
)

// HandleErase services an EraseRequest against dev, converting sector
// indices to byte offsets and returning an ack on success (spec.md §6
// "flash.erase"), grounded on runtime/handler/flash/erase.rs.
func HandleErase(ctx context.Context, dev blockdev.WritableBlockDevice, req EraseRequest) (*EraseAck, error) {
	start := uint32(req.StartSector) * SectorSize
	end := uint32(req.EndSector) * SectorSize

	if err := dev.EraseRange(ctx, start, end); err != nil {
		return nil, err
	}

	return &EraseAck{StartSector: req.StartSector, EndSector: req.EndSector}, nil
}

// HandleWrite services a WriteRequest against dev. A misaligned offset
// is refused with no ack, matching runtime/handler/flash/write.rs's
// silent drop on `offset % 4 != 0` (the original leaves a "TODO print a
// warning"; spec.md §7 upgrades this to a reported warning via
// ErrMisaligned rather than silent loss).
func HandleWrite(ctx context.Context, dev blockdev.WritableBlockDevice, req WriteRequest) (*WriteAck, error) {
	if req.Offset%4 != 0 {
		return nil, ErrMisaligned
	}

	if err := dev.WriteAt(ctx, req.Offset, req.Data); err != nil {
		return nil, err
	}

	return &WriteAck{Offset: req.Offset, Data: append([]byte(nil), req.Data...)}, nil
}

// HandleRead services a ReadRequest against dev, streaming back
// fixed-size ChunkSize chunks covering [req.Start, req.End) (spec.md §6
// "flash.content | streamed back, one message per chunk"), grounded on
// runtime/handler/flash/read.rs's loop that breaks silently on device
// error.
func HandleRead(ctx context.Context, dev blockdev.BlockDevice, req ReadRequest) ([]ReadContent, error) {
	var chunks []ReadContent

	for offset := req.Start; offset < req.End; offset += ChunkSize {
		size := ChunkSize
		if remaining := req.End - offset; remaining < ChunkSize {
			size = int(remaining)
		}

		buf := make([]byte, size)
		if err := dev.ReadAt(ctx, offset, buf); err != nil {
			return chunks, err
		}

		chunks = append(chunks, ReadContent{Offset: offset, Data: buf})
	}

	return chunks, nil
}
