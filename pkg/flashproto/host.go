package flashproto

import (
	"bytes"
	"context"
	"fmt"
	"time"
)

// Link is the host's view of the wire: send a request, then block for the
// matching reply. Callers typically bound each Recv* call with a
// ctx.WithTimeout matching the original per-operation timeouts
// (api/flash.rs's TIMEOUT_WRITE/TIMEOUT_READ/TIMEOUT_ERASE).
type Link interface {
	SendWrite(ctx context.Context, req WriteRequest) error
	RecvWriteAck(ctx context.Context) (WriteAck, error)

	SendErase(ctx context.Context, req EraseRequest) error
	RecvEraseAck(ctx context.Context) (EraseAck, error)

	SendRead(ctx context.Context, req ReadRequest) error
	RecvContent(ctx context.Context) (ReadContent, error)
}

// RetryOptions bounds the host's write-retry behavior (spec.md §6 "host
// retries unacknowledged writes with exponential backoff, bounded at 3
// attempts"), grounded on api/flash.rs's `retry_limit = 3`.
type RetryOptions struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	BackoffFactor  float64
}

// DefaultRetryOptions matches the original implementation's retry_limit.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{MaxAttempts: 3, InitialBackoff: 5 * time.Millisecond, BackoffFactor: 2}
}

// Upload writes data starting at offset, chunking it into ChunkSize
// pieces and retrying unacknowledged chunks up to opts.MaxAttempts times
// with exponential backoff between rounds (spec.md §6), grounded on
// api/flash.rs's FlashAPI::write: a "pending writes" set is re-sent in
// full each round, then drained of whatever acks arrive before the round
// moves on.
func Upload(ctx context.Context, link Link, offset uint32, data []byte, opts RetryOptions) error {
	if opts.MaxAttempts <= 0 {
		opts = DefaultRetryOptions()
	}

	pending := make(map[uint32][]byte)
	for o := offset; o < offset+uint32(len(data)); o += ChunkSize {
		end := o + ChunkSize
		if max := offset + uint32(len(data)); end > max {
			end = max
		}
		pending[o] = data[o-offset : end-offset]
	}

	backoff := opts.InitialBackoff

	for attempt := 0; attempt < opts.MaxAttempts && len(pending) > 0; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}

			backoff = time.Duration(float64(backoff) * opts.BackoffFactor)
		}

		for o, chunk := range pending {
			if err := link.SendWrite(ctx, WriteRequest{Offset: o, Data: chunk}); err != nil {
				return err
			}
		}

		toDrain := len(pending)
		for i := 0; i < toDrain; i++ {
			ack, err := link.RecvWriteAck(ctx)
			if err != nil {
				// Timed out waiting on this round's acks; fall through to
				// the next retry round with whatever is still pending.
				break
			}

			if chunk, ok := pending[ack.Offset]; ok && bytes.Equal(chunk, ack.Data) {
				delete(pending, ack.Offset)
			}
		}
	}

	if len(pending) > 0 {
		unacked := 0
		for _, chunk := range pending {
			unacked += len(chunk)
		}

		return fmt.Errorf("%w: %d of %d bytes unacknowledged", ErrRetransmitExhausted, unacked, len(data))
	}

	return nil
}

// Erase erases the byte range [start, end), which must land on sector
// boundaries, waiting for a single ack (spec.md §6 "flash.erase"),
// grounded on api/flash.rs's erase().
func Erase(ctx context.Context, link Link, start, end uint32) error {
	if start%SectorSize != 0 || end%SectorSize != 0 {
		return ErrSectorMisaligned
	}

	req := EraseRequest{StartSector: uint16(start / SectorSize), EndSector: uint16(end / SectorSize)}

	if err := link.SendErase(ctx, req); err != nil {
		return err
	}

	_, err := link.RecvEraseAck(ctx)
	return err
}

// Read reads the byte range [start, end), assembling the streamed
// ReadContent chunks in order (spec.md §6 "flash.read" / "flash.content
// | streamed back, one message per chunk"), grounded on api/flash.rs's
// read().
func Read(ctx context.Context, link Link, start, end uint32) ([]byte, error) {
	if err := link.SendRead(ctx, ReadRequest{Start: start, End: end}); err != nil {
		return nil, err
	}

	out := make([]byte, end-start)

	for offset := start; offset < end; {
		chunk, err := link.RecvContent(ctx)
		if err != nil {
			return nil, err
		}

		if chunk.Offset < start || chunk.Offset >= end {
			continue
		}

		n := copy(out[chunk.Offset-start:], chunk.Data)
		offset = chunk.Offset + uint32(n)
	}

	return out, nil
}
