package dictionary

// NodeHeaderSize is the fixed-width prefix of every node: child_count-1
// byte, prefix_length byte, and the 3-byte translation pointer (spec.md
// §4.2.2).
const NodeHeaderSize = 1 + 1 + 3

// node is a decoded tree node (spec.md §4.2.2), holding the prefix/pointer
// arrays read from the block device for a single traversal step.
type node struct {
	childCount         int
	prefixLength       int
	translationPointer uint32 // 0 means "no translation here"
	keys               []byte // childCount * prefixLength bytes
	pointers           []uint32
}

// decodeNode parses a node's header bytes (exactly NodeHeaderSize long)
// plus its already-read key/pointer body.
func decodeNode(header []byte, body []byte) (node, error) {
	if len(header) < NodeHeaderSize {
		return node{}, ErrTruncated
	}

	childCount := int(header[0]) + 1
	prefixLength := int(header[1])
	translationPointer := get24(header[2:5])

	keyBytes := childCount * prefixLength
	pointerBytes := childCount * 3

	if len(body) < keyBytes+pointerBytes {
		return node{}, ErrCorruptNode
	}

	pointers := make([]uint32, childCount)
	for i := 0; i < childCount; i++ {
		pointers[i] = get24(body[keyBytes+i*3 : keyBytes+i*3+3])
	}

	return node{
		childCount:         childCount,
		prefixLength:       prefixLength,
		translationPointer: translationPointer,
		keys:               body[:keyBytes],
		pointers:           pointers,
	}, nil
}

// findChild scans the node's unordered key array for the child whose
// prefixLength-byte key equals the next prefixLength bytes of remaining,
// per spec.md §4.2.4 step 5: "Children within a node are unordered in the
// key array; linear scan is acceptable (child_count ≤ 255)."
func (n node) findChild(remaining []byte) (int, bool) {
	if len(remaining) < n.prefixLength {
		return 0, false
	}

	want := remaining[:n.prefixLength]

	for i := 0; i < n.childCount; i++ {
		key := n.keys[i*n.prefixLength : (i+1)*n.prefixLength]
		if bytesEqual(key, want) {
			return i, true
		}
	}

	return 0, false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
