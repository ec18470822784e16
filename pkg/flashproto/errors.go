package flashproto

import "errors"

// ErrMisaligned is returned when a WriteRequest's offset is not a
// multiple of 4 (spec.md §7 "Alignment violation (misaligned flash
// write) | reported as a warning; operation refused; no ack"), grounded
// on runtime/handler/flash/write.rs's `offset % 4 != 0` check.
var ErrMisaligned = errors.New("flashproto: write offset not 4-byte aligned")

// ErrSectorMisaligned is returned when an EraseRequest's byte range does
// not land on sector boundaries, grounded on api/flash.rs's erase()
// assertion that start/end are whole sectors.
var ErrSectorMisaligned = errors.New("flashproto: erase range not sector-aligned")

// ErrRetransmitExhausted is returned when the host's bounded write-retry
// budget runs out with chunks still unacknowledged (spec.md §7
// "Retransmit exhaustion (device never acks after N retries) | surfaced
// as a user-visible error"), grounded on api/flash.rs's
// `FlashError::TimedOut` after `retry_limit` passes.
var ErrRetransmitExhausted = errors.New("flashproto: device did not acknowledge write after retry budget exhausted")
