package compile

import (
	"fmt"

	"github.com/chordforge/steno/pkg/dictionary"
)

// put24 writes a big-endian 24-bit unsigned integer, mirroring
// pkg/dictionary's unexported helper of the same shape (kept local since
// the compiler and reader deliberately don't share an internal package —
// spec.md §9 treats the compiler as fully offline tooling).
func put24(buf []byte, v uint32) error {
	if v != v&0xFFFFFF {
		return fmt.Errorf("%w: %d", ErrOffsetOutOfRange, v)
	}

	buf[0] = byte(v >> 16)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v)

	return nil
}

// serializeInto depth-first serializes n into buf, ported from
// TreeNode::serialize_into_buffer in compile/tree.rs: children whose
// subtree is a single translation are written directly as a translation
// pointer (no node object for them), saving a node per spec.md §4.2.6
// step 5.
func (n *treeNode) serializeInto(buf *[]byte, tp *translationPointers) error {
	if len(n.children) == 0 {
		return fmt.Errorf("compile: internal error: node with no children reached serialization")
	}

	if len(n.children) > dictionary.MaxChildCount {
		return fmt.Errorf("compile: node has %d children, exceeds %d", len(n.children), dictionary.MaxChildCount)
	}

	if n.prefixLength > 255 {
		return fmt.Errorf("compile: node prefix length %d exceeds 255", n.prefixLength)
	}

	*buf = append(*buf, byte(len(n.children)-1))
	*buf = append(*buf, byte(n.prefixLength))

	var terminalPointer [3]byte

	if n.leafData != nil {
		offset, err := tp.offsetFor(n.leafData)
		if err != nil {
			return err
		}

		if err := put24(terminalPointer[:], offset); err != nil {
			return err
		}
	}

	*buf = append(*buf, terminalPointer[:]...)

	for _, c := range n.children {
		if len(c.prefix) != n.prefixLength {
			return fmt.Errorf("compile: internal error: child prefix length %d != node prefix length %d", len(c.prefix), n.prefixLength)
		}

		*buf = append(*buf, c.prefix...)
	}

	pointerArrayStart := len(*buf)
	*buf = append(*buf, make([]byte, len(n.children)*3)...)

	for i, c := range n.children {
		var pointer [3]byte

		if c.isLeaf() {
			offset, err := tp.offsetFor(c.leaf)
			if err != nil {
				return err
			}

			if err := put24(pointer[:], offset); err != nil {
				return err
			}
		} else {
			if err := put24(pointer[:], uint32(len(*buf))); err != nil {
				return err
			}
		}

		copy((*buf)[pointerArrayStart+i*3:pointerArrayStart+i*3+3], pointer[:])

		if !c.isLeaf() {
			if err := c.sub.serializeInto(buf, tp); err != nil {
				return err
			}
		}
	}

	return nil
}
