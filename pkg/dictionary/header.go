package dictionary

import (
	"fmt"

	"github.com/chordforge/steno/pkg/stroke"
)

// Header is the decoded preamble+header+tree-root-offset prefix of a
// compiled dictionary file (spec.md §4.2.1 items 1-3).
type Header struct {
	// LongestOutlineLength is the stroke count of the longest outline any
	// entry in the dictionary was compiled with (spec.md §4.2.1 item 2).
	LongestOutlineLength int
	// Context is the stroke context the dictionary's strokes were
	// serialized against (spec.md §4.2.1 item 2, §6).
	Context *stroke.Context
	// TreeRootOffset is the absolute byte offset of the root tree node
	// (spec.md §4.2.1 item 3).
	TreeRootOffset uint32
	// size is the total byte length of the encoded header, i.e. where the
	// translation blob begins.
	size int
}

// EncodeHeader serializes the preamble, header, and a tree-root-offset
// placeholder of 0 (the caller patches it in once the tree's start is
// known, per spec.md §4.2.6 step 4).
func EncodeHeader(longestOutlineLength int, ctx *stroke.Context) ([]byte, error) {
	if longestOutlineLength < 1 || longestOutlineLength > 255 {
		return nil, fmt.Errorf("dictionary: longest outline length %d out of range [1,255]", longestOutlineLength)
	}

	buf := make([]byte, 0, PreambleSize+1+32+4)
	buf = append(buf, Magic[:]...)
	buf = append(buf, Version)
	buf = append(buf, byte(longestOutlineLength))
	buf = append(buf, stroke.EncodeContext(ctx)...)
	buf = append(buf, 0, 0, 0, 0) // tree-root-offset placeholder

	return buf, nil
}

// PatchTreeRootOffset overwrites buf's tree-root-offset placeholder (the
// last 4 bytes written by EncodeHeader) with offset.
func PatchTreeRootOffset(buf []byte, headerEnd int, offset uint32) {
	put32(buf[headerEnd-4:headerEnd], offset)
}

// DecodeHeader decodes data starting at offset 0, returning the Header
// and erroring per spec.md §7 "Format violation ... Fatal on load" if the
// preamble doesn't match or the context is corrupt.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < PreambleSize {
		return Header{}, ErrTruncated
	}

	var magic [4]byte
	copy(magic[:], data[:4])

	if magic != Magic {
		return Header{}, fmt.Errorf("%w: got %q", ErrBadMagic, magic[:])
	}

	if data[4] != Version {
		return Header{}, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, data[4], Version)
	}

	pos := PreambleSize
	if len(data) < pos+1 {
		return Header{}, ErrTruncated
	}

	longestOutlineLength := int(data[pos])
	pos++

	ctx, n, err := stroke.DecodeContext(data[pos:])
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrCorruptContext, err)
	}

	pos += n

	if len(data) < pos+4 {
		return Header{}, ErrTruncated
	}

	treeRootOffset := get32(data[pos : pos+4])
	pos += 4

	return Header{
		LongestOutlineLength: longestOutlineLength,
		Context:               ctx,
		TreeRootOffset:        treeRootOffset,
		size:                  pos,
	}, nil
}
