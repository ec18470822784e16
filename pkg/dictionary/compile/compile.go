package compile

import (
	"context"
	"fmt"
	"strings"

	"github.com/chordforge/steno/pkg/command"
	"github.com/chordforge/steno/pkg/dictionary"
	"github.com/chordforge/steno/pkg/dictionary/blockdev"
	"github.com/chordforge/steno/pkg/stroke"
)

// MaxOutlineLength is the longest outline (in strokes) the compiler will
// accept, matching the matcher's documented history-capacity assumption
// (spec.md §3 "Length field is bounded by the dictionary's longest-outline
// length (≤32)").
const MaxOutlineLength = 32

// Entry is one dictionary entry: a stroke-sequence key and the command
// list it translates to (spec.md §4.2.6 "Inputs: iterator of (outline,
// command_list, tag) pairs").
type Entry struct {
	Outline  []stroke.Stroke
	Commands []command.Command
	// Tag is an optional diagnostic label (e.g. the source JSON line);
	// defaults to the outline's display form if empty.
	Tag string
}

func (e Entry) tagOrDefault() string {
	if e.Tag != "" {
		return e.Tag
	}

	parts := make([]string, len(e.Outline))
	for i, s := range e.Outline {
		parts[i] = s.String()
	}

	return strings.Join(parts, "/")
}

// Config tunes the compiler's tree-shaping heuristic.
type Config struct {
	// MaxPrefixArrayBytes bounds a node's prefix (key) array size (spec.md
	// §4.2.6 step 2). Zero selects DefaultMaxPrefixArrayBytes.
	MaxPrefixArrayBytes int
	// SkipSelfCheck disables the round-trip self-check (spec.md §4.2.6,
	// §8). Only useful for benchmarking the compiler itself; production
	// callers should always leave this false.
	SkipSelfCheck bool
}

// Stats reports compiler diagnostics (spec.md §4.2.6 "The compiler also
// emits statistics (entries, collisions if hash layout is used, occupancy
// distribution) for tuning").
type Stats struct {
	EntryCount           int
	NodeCount            int
	DistinctTranslations int
	TranslationBlobBytes int
	LongestOutlineLength int
	// OccupancyHistogram maps a node's child count to how many nodes in
	// the tree have that child count, a cheap proxy for how well the
	// prefix-length heuristic is packing nodes.
	OccupancyHistogram map[int]int
}

// Result is the output of Compile.
type Result struct {
	Bytes []byte
	Stats Stats
}

// Compile builds the binary dictionary format (spec.md §4.2) from
// entries against ctx, following the procedure in spec.md §4.2.6:
// build a radix tree, serialize the (deduplicated) translation blob, then
// the tree, then self-check every entry round-trips through a reader over
// the freshly built buffer.
func Compile(ctx *stroke.Context, entries []Entry, cfg Config) (Result, error) {
	if len(entries) == 0 {
		return Result{}, ErrNoEntries
	}

	maxPrefixArrayBytes := cfg.MaxPrefixArrayBytes
	if maxPrefixArrayBytes <= 0 {
		maxPrefixArrayBytes = DefaultMaxPrefixArrayBytes
	}

	longestOutlineLength := 0
	raw := make([]rawEntry, 0, len(entries))

	for _, e := range entries {
		if len(e.Outline) == 0 {
			return Result{}, fmt.Errorf("%w: %s", ErrEmptyOutline, e.tagOrDefault())
		}

		if len(e.Outline) > MaxOutlineLength {
			return Result{}, fmt.Errorf("%w: %s has %d strokes, max %d", ErrOutlineTooLong, e.tagOrDefault(), len(e.Outline), MaxOutlineLength)
		}

		if len(e.Outline) > longestOutlineLength {
			longestOutlineLength = len(e.Outline)
		}

		key := make([]byte, 0, e.Outline[0].Context().ByteCount()*len(e.Outline))
		for _, s := range e.Outline {
			key = append(key, s.Bytes()...)
		}

		raw = append(raw, rawEntry{key: key, commands: e.Commands, tag: e.tagOrDefault()})
	}

	tree, err := buildTree(raw, maxPrefixArrayBytes)
	if err != nil {
		return Result{}, err
	}

	header, err := dictionary.EncodeHeader(longestOutlineLength, ctx)
	if err != nil {
		return Result{}, err
	}

	buf := append([]byte(nil), header...)
	headerEnd := len(buf)

	lists := tree.commandLists()

	tp, err := newTranslationPointers(&buf, lists)
	if err != nil {
		return Result{}, err
	}

	treeRootOffset := uint32(len(buf))
	if treeRootOffset > 0xFFFFFF {
		return Result{}, fmt.Errorf("%w: tree starts at byte %d", ErrOffsetOutOfRange, treeRootOffset)
	}

	dictionary.PatchTreeRootOffset(buf, headerEnd, treeRootOffset)

	if err := tree.serializeInto(&buf, tp); err != nil {
		return Result{}, err
	}

	stats := Stats{
		EntryCount:           len(entries),
		NodeCount:            countNodes(tree),
		DistinctTranslations: len(tp.offsets),
		TranslationBlobBytes: int(treeRootOffset) - headerEnd,
		LongestOutlineLength: longestOutlineLength,
		OccupancyHistogram:   occupancyHistogram(tree),
	}

	if !cfg.SkipSelfCheck {
		if err := selfCheck(ctx, buf, entries); err != nil {
			return Result{}, err
		}
	}

	return Result{Bytes: buf, Stats: stats}, nil
}

// selfCheck round-trips every input entry through a reader over the
// just-built buffer, per spec.md §4.2.6's "Correctness check" and §8's
// "Dictionary round-trip" testable property.
func selfCheck(ctx *stroke.Context, buf []byte, entries []Entry) error {
	device := blockdev.NewMemory(buf)

	dict, err := dictionary.Open(context.Background(), device)
	if err != nil {
		return fmt.Errorf("%w: reopening compiled buffer: %v", ErrRoundTripMismatch, err)
	}

	if dict.LongestOutlineLength() == 0 {
		return fmt.Errorf("%w: reopened header has zero longest-outline length", ErrRoundTripMismatch)
	}

	for _, e := range entries {
		match, ok, err := dict.MatchPrefix(context.Background(), e.Outline)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRoundTripMismatch, e.tagOrDefault(), err)
		}

		if !ok {
			return fmt.Errorf("%w: %s: not found in compiled dictionary", ErrRoundTripMismatch, e.tagOrDefault())
		}

		if match.StrokeCount != len(e.Outline) {
			return fmt.Errorf("%w: %s: matched %d strokes, want %d", ErrRoundTripMismatch, e.tagOrDefault(), match.StrokeCount, len(e.Outline))
		}

		if !commandsEqual(match.Commands, e.Commands) {
			return fmt.Errorf("%w: %s: decoded commands differ from input", ErrRoundTripMismatch, e.tagOrDefault())
		}
	}

	return nil
}

func commandsEqual(a, b []command.Command) bool {
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

func countNodes(n *treeNode) int {
	count := 1

	for _, c := range n.children {
		if !c.isLeaf() {
			count += countNodes(c.sub)
		}
	}

	return count
}

func occupancyHistogram(n *treeNode) map[int]int {
	hist := make(map[int]int)
	addOccupancy(n, hist)

	return hist
}

func addOccupancy(n *treeNode, hist map[int]int) {
	hist[len(n.children)]++

	for _, c := range n.children {
		if !c.isLeaf() {
			addOccupancy(c.sub, hist)
		}
	}
}
