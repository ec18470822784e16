package dictionary

import (
	"context"
	"errors"
	"fmt"

	"github.com/chordforge/steno/pkg/command"
	"github.com/chordforge/steno/pkg/dictionary/blockdev"
	"github.com/chordforge/steno/pkg/stroke"
)

// Dictionary is the on-device reader over a compiled radix-tree binary
// (spec.md §4.2), streaming nodes from a blockdev.BlockDevice on demand
// rather than holding the whole tree in RAM. It is single-owner: the
// engine task holds the only reference (spec.md §5 "Dictionary reader:
// single-owner").
type Dictionary struct {
	device blockdev.BlockDevice
	header Header
}

// Open reads and validates the preamble/header/tree-root-offset from
// device, per spec.md §7: a malformed preamble or context is fatal here,
// matching the source's on-load validation (the original RadixTreeDictionary
// only reads the tree-root-offset on construction; this reader additionally
// validates the magic/version/context so the engine can refuse to start
// rather than silently traversing garbage).
func Open(ctx context.Context, device blockdev.BlockDevice) (*Dictionary, error) {
	// A fixed prefix is enough to cover preamble + longest-outline byte +
	// a realistic stroke context + the tree-root-offset for almost any
	// real layout; DecodeHeader reports ErrTruncated if it needs more, in
	// which case the probe is doubled and retried, up to a sane ceiling
	// (an unusually large context is still a valid dictionary, just one
	// that needs a second read to fully describe).
	probeSize := 512
	const maxProbeSize = 1 << 16

	for {
		probe := make([]byte, probeSize)
		if err := device.ReadAt(ctx, 0, probe); err != nil {
			return nil, &BlockDeviceError{Err: err}
		}

		header, err := DecodeHeader(probe)
		if err == nil {
			return &Dictionary{device: device, header: header}, nil
		}

		if !errors.Is(err, ErrTruncated) || probeSize >= maxProbeSize {
			return nil, err
		}

		probeSize *= 2
	}
}

// Header returns the dictionary's decoded header.
func (d *Dictionary) Header() Header { return d.header }

// LongestOutlineLength returns the stroke count of the longest outline the
// dictionary was compiled with.
func (d *Dictionary) LongestOutlineLength() int { return d.header.LongestOutlineLength }

// Context returns the stroke context the dictionary's strokes are encoded
// against.
func (d *Dictionary) Context() *stroke.Context { return d.header.Context }

// Match is the result of a successful MatchPrefix lookup.
type Match struct {
	// StrokeCount is the number of leading strokes of the input the match
	// consumed.
	StrokeCount int
	// Commands is the decoded translation for those strokes.
	Commands []command.Command
}

// MatchPrefix implements the longest-prefix lookup documented in spec.md
// §4.2.4. strokes must be non-empty. It returns (Match, true, nil) on a
// hit, (Match{}, false, nil) on a clean miss, and a non-nil error
// (wrapping BlockDeviceError or a format error) if the underlying device
// failed or the tree is corrupt — per spec.md §7, callers should treat
// both a miss and an error identically (fall back to a literal write),
// distinguishing only for logging.
func (d *Dictionary) MatchPrefix(ctx context.Context, strokes []stroke.Stroke) (Match, bool, error) {
	if len(strokes) == 0 {
		return Match{}, false, fmt.Errorf("dictionary: MatchPrefix called with no strokes")
	}

	input := encodeStrokes(strokes)

	var (
		bestConsumed int
		bestPointer  uint32
		haveMatch    bool
	)

	offset := d.header.TreeRootOffset
	remaining := input

	for {
		n, err := d.readNode(ctx, offset)
		if err != nil {
			return Match{}, false, err
		}

		if n.translationPointer != 0 {
			bestConsumed = len(input) - len(remaining)
			bestPointer = n.translationPointer
			haveMatch = true
		}

		if len(remaining) < n.prefixLength {
			break
		}

		childIdx, ok := n.findChild(remaining)
		if !ok {
			break
		}

		childPointer := n.pointers[childIdx]
		remaining = remaining[n.prefixLength:]

		if childPointer < d.header.TreeRootOffset {
			// Leaf: the child pointer addresses the translation blob
			// directly (spec.md §4.2.4 step 6).
			bestConsumed = len(input) - len(remaining)
			bestPointer = childPointer
			haveMatch = true

			break
		}

		offset = childPointer
	}

	if !haveMatch {
		return Match{}, false, nil
	}

	commands, err := d.readTranslation(ctx, bestPointer)
	if err != nil {
		return Match{}, false, err
	}

	strokeByteWidth := d.header.Context.ByteCount()
	strokeCount := bestConsumed / strokeByteWidth

	return Match{StrokeCount: strokeCount, Commands: commands}, true, nil
}

// readNode reads one node at offset: first its fixed header, then its
// variable-length key/pointer body in a single follow-up read.
func (d *Dictionary) readNode(ctx context.Context, offset uint32) (node, error) {
	header := make([]byte, NodeHeaderSize)
	if err := d.device.ReadAt(ctx, offset, header); err != nil {
		return node{}, &BlockDeviceError{Err: err}
	}

	childCount := int(header[0]) + 1
	prefixLength := int(header[1])

	body := make([]byte, childCount*prefixLength+childCount*3)
	if len(body) > 0 {
		if err := d.device.ReadAt(ctx, offset+uint32(NodeHeaderSize), body); err != nil {
			return node{}, &BlockDeviceError{Err: err}
		}
	}

	return decodeNode(header, body)
}

// readTranslation reads and decodes the sentinel-terminated command list
// at pointer (spec.md §4.2.1 item 4). It grows its read buffer until the
// sentinel is found, since the list length isn't known up front.
func (d *Dictionary) readTranslation(ctx context.Context, pointer uint32) ([]command.Command, error) {
	const initialChunk = 64

	buf := make([]byte, 0, initialChunk)
	chunkSize := initialChunk

	for {
		read := make([]byte, chunkSize)
		if err := d.device.ReadAt(ctx, pointer, read); err != nil {
			return nil, &BlockDeviceError{Err: err}
		}

		buf = read

		if cmds, _, err := DecodeCommandList(buf); err == nil {
			return cmds, nil
		}

		chunkSize *= 2

		if chunkSize > 1<<20 {
			return nil, fmt.Errorf("%w: translation exceeds 1 MiB without a sentinel", ErrCorruptTranslation)
		}
	}
}

// encodeStrokes concatenates the raw byte representation of each stroke,
// per spec.md §4.2.4 step 1.
func encodeStrokes(strokes []stroke.Stroke) []byte {
	if len(strokes) == 0 {
		return nil
	}

	width := strokes[0].Context().ByteCount()
	out := make([]byte, 0, width*len(strokes))

	for _, s := range strokes {
		out = append(out, s.Bytes()...)
	}

	return out
}
