package stroke

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncated is returned when decoding a serialized Context runs out of
// input bytes.
var ErrTruncated = errors.New("stroke: truncated context encoding")

// EncodeContext serializes a Context per §6: three length-prefixed byte
// strings (1-byte length, then bytes) for left/middle/right — each group
// concatenated key-by-key, since individual key names are always a single
// byte — followed by a 2-byte big-endian count and that many
// length-prefixed strings for the (possibly multi-character) extras.
func EncodeContext(c *Context) []byte {
	var out []byte

	for _, group := range [][]string{c.left, c.middle, c.right} {
		joined := make([]byte, 0, len(group))
		for _, key := range group {
			joined = append(joined, key...)
		}

		out = append(out, byte(len(joined)))
		out = append(out, joined...)
	}

	countBuf := make([]byte, 2)
	binary.BigEndian.PutUint16(countBuf, uint16(len(c.extra)))
	out = append(out, countBuf...)

	for _, key := range c.extra {
		out = append(out, byte(len(key)))
		out = append(out, key...)
	}

	return out
}

// DecodeContext is the inverse of EncodeContext. It returns the decoded
// Context and the number of bytes consumed.
func DecodeContext(data []byte) (*Context, int, error) {
	pos := 0

	readGroup := func() ([]string, error) {
		if pos >= len(data) {
			return nil, ErrTruncated
		}

		length := int(data[pos])
		pos++

		if pos+length > len(data) {
			return nil, ErrTruncated
		}

		keys := make([]string, length)
		for i := 0; i < length; i++ {
			keys[i] = string(data[pos+i])
		}

		pos += length

		return keys, nil
	}

	left, err := readGroup()
	if err != nil {
		return nil, 0, fmt.Errorf("left group: %w", err)
	}

	middle, err := readGroup()
	if err != nil {
		return nil, 0, fmt.Errorf("middle group: %w", err)
	}

	right, err := readGroup()
	if err != nil {
		return nil, 0, fmt.Errorf("right group: %w", err)
	}

	if pos+2 > len(data) {
		return nil, 0, fmt.Errorf("extra count: %w", ErrTruncated)
	}

	extraCount := int(binary.BigEndian.Uint16(data[pos:]))
	pos += 2

	extra := make([]string, extraCount)

	for i := 0; i < extraCount; i++ {
		if pos >= len(data) {
			return nil, 0, fmt.Errorf("extra[%d]: %w", i, ErrTruncated)
		}

		length := int(data[pos])
		pos++

		if pos+length > len(data) {
			return nil, 0, fmt.Errorf("extra[%d]: %w", i, ErrTruncated)
		}

		extra[i] = string(data[pos : pos+length])
		pos += length
	}

	ctx, err := NewContext(left, middle, right, extra)
	if err != nil {
		return nil, 0, fmt.Errorf("decoded context: %w", err)
	}

	return ctx, pos, nil
}
