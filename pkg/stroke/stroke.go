package stroke

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"
	"math/bits"
	"strings"
)

// Stroke errors.
var (
	// ErrUnknownKey is returned when a parsed or constructed key name does
	// not exist in the stroke's context.
	ErrUnknownKey = errors.New("stroke: unknown key")
	// ErrNoSeparator is returned when a right-side key appears with no
	// preceding middle (vowel) key and no explicit hyphen, per §4.1: such
	// input is ambiguous about where the left side ends.
	ErrNoSeparator = errors.New("stroke: right-side key requires a middle key or hyphen")
	// ErrDuplicateHyphen is returned when more than one hyphen appears in
	// the main (non-extras) portion of a parsed stroke string.
	ErrDuplicateHyphen = errors.New("stroke: duplicate hyphen")
	// ErrInvalidLength is returned when a raw bit vector does not match
	// the context's byte count.
	ErrInvalidLength = errors.New("stroke: invalid bit vector length")
	// ErrPaddingBitsSet is returned when trailing unused bits of the last
	// byte of a raw bit vector are set.
	ErrPaddingBitsSet = errors.New("stroke: padding bits set")
)

// Stroke is an immutable bitset of simultaneously pressed keys (§3, §4.1).
// The zero value is not a valid Stroke; construct one via Context.Parse,
// Context.FromBytes, Context.FromKeyNames, or Context.FromScan.
type Stroke struct {
	ctx  *Context
	bits []byte
}

// Context returns the stroke context it was built from, used for
// display/serialization (§4.1: "A stroke knows its context").
func (s Stroke) Context() *Context { return s.ctx }

// Bytes returns a copy of the raw packed bit vector (§4.1 serialization:
// "raw bit vector (context byte-count); context is carried out-of-band").
func (s Stroke) Bytes() []byte { return append([]byte(nil), s.bits...) }

// IsEmpty reports whether no keys are pressed.
func (s Stroke) IsEmpty() bool {
	for _, b := range s.bits {
		if b != 0 {
			return false
		}
	}

	return true
}

// PressedKeyCount returns the number of set bits.
func (s Stroke) PressedKeyCount() int {
	count := 0
	for _, b := range s.bits {
		count += bits.OnesCount8(b)
	}

	return count
}

// Equal compares two strokes by their full bit vector, per §4.1: "Equality
// and hashing are defined over the full bit vector."
func (s Stroke) Equal(other Stroke) bool {
	return bytes.Equal(s.bits, other.bits)
}

// Hash returns an FNV-1a hash of the bit vector only (§4.1).
func (s Stroke) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write(s.bits)

	return h.Sum64()
}

// Combine returns the bitwise-OR of two strokes sharing the same context,
// i.e. the stroke that would result from pressing both chords together.
func (s Stroke) Combine(other Stroke) Stroke {
	out := make([]byte, len(s.bits))
	for i := range out {
		out[i] = s.bits[i] | other.bits[i]
	}

	return Stroke{ctx: s.ctx, bits: out}
}

func (c *Context) newZeroStroke() Stroke {
	return Stroke{ctx: c, bits: make([]byte, c.ByteCount())}
}

func setBit(buf []byte, index int) {
	buf[index/8] |= 1 << uint(7-index%8)
}

func testBit(buf []byte, index int) bool {
	return buf[index/8]&(1<<uint(7-index%8)) != 0
}

// FromBytes constructs a Stroke from a raw packed bit vector, as produced
// by Bytes (§4.1 serialization / §8 "Serialized bytes survive a
// serialize→deserialize round trip unchanged").
func (c *Context) FromBytes(b []byte) (Stroke, error) {
	if len(b) != c.ByteCount() {
		return Stroke{}, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidLength, c.ByteCount(), len(b))
	}

	if unused := c.ByteCount()*8 - c.KeyCount(); unused > 0 {
		mask := byte(0xFF) >> uint(8-unused)
		if b[len(b)-1]&mask != 0 {
			return Stroke{}, ErrPaddingBitsSet
		}
	}

	return Stroke{ctx: c, bits: append([]byte(nil), b...)}, nil
}

// FromKeyNames constructs a Stroke from an explicit set of key names, all
// of which must exist somewhere in the context (left, middle, right, or
// extra). Unlike FromScan, unknown names are a hard error: this
// constructor is for programmatic/test construction, not for lossy
// hardware key-state conversion.
func (c *Context) FromKeyNames(names ...string) (Stroke, error) {
	s := c.newZeroStroke()

	for _, name := range names {
		idx, ok := c.findAny(name)
		if !ok {
			return Stroke{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
		}

		setBit(s.bits, idx)
	}

	return s, nil
}

// findAny looks a key name up across all four groups, returning its
// overall bit index. Real steno layouts reuse letters across groups (e.g.
// "R" is both a left and a right key), so this returns the first match in
// left/middle/right/extra order; callers that need a specific side use
// the position-aware Parse algorithm instead.
func (c *Context) findAny(name string) (int, bool) {
	if pos := indexInGroup(c.left, name); pos >= 0 {
		return pos, true
	}

	if pos := indexInGroup(c.middle, name); pos >= 0 {
		return c.middleStart() + pos, true
	}

	if pos := indexInGroup(c.right, name); pos >= 0 {
		return c.rightStart() + pos, true
	}

	if pos := indexInGroup(c.extra, name); pos >= 0 {
		return c.extraStart() + pos, true
	}

	return 0, false
}

func indexInGroup(group []string, name string) int {
	for i, k := range group {
		if k == name {
			return i
		}
	}

	return -1
}

// FromScan constructs a Stroke from a raw key-state array plus a static
// keymap, per §4.1: "a key-state array plus a static keymap (lossy:
// unknown keys dropped)". states[i] is true when the physical key at
// position i is held; keymap[i] names the context key it maps to, or ""
// if position i has no steno meaning. Names not found in the context are
// likewise dropped rather than erroring, since a keymap may legitimately
// reference context keys that don't exist in a reduced test context.
func (c *Context) FromScan(states []bool, keymap []string) Stroke {
	s := c.newZeroStroke()

	for i, pressed := range states {
		if !pressed || i >= len(keymap) {
			continue
		}

		name := keymap[i]
		if name == "" {
			continue
		}

		if idx, ok := c.findAny(name); ok {
			setBit(s.bits, idx)
		}
	}

	return s
}

// String renders the stroke in its human-readable display form: left keys
// in context order, then middle keys, then (if middle is empty but right
// is not) a hyphen, then right keys, then — if any extra keys are set —
// "|" followed by comma-separated extra key names (§4.1).
func (s Stroke) String() string {
	var b strings.Builder

	writeGroup := func(group []string, start int) bool {
		any := false

		for i, name := range group {
			if testBit(s.bits, start+i) {
				b.WriteString(name)
				any = true
			}
		}

		return any
	}

	writeGroup(s.ctx.left, 0)
	middleUsed := writeGroup(s.ctx.middle, s.ctx.middleStart())

	rightStart := s.ctx.rightStart()
	rightUsed := false

	for i := range s.ctx.right {
		if testBit(s.bits, rightStart+i) {
			rightUsed = true
			break
		}
	}

	if !middleUsed && rightUsed {
		b.WriteString(tokenHyphen)
	}

	writeGroup(s.ctx.right, rightStart)

	extraStart := s.ctx.extraStart()

	var extras []string

	for i, name := range s.ctx.extra {
		if testBit(s.bits, extraStart+i) {
			extras = append(extras, name)
		}
	}

	if len(extras) > 0 {
		b.WriteString(tokenExtraSeparator)
		b.WriteString(strings.Join(extras, tokenComma))
	}

	return b.String()
}

// Parse parses a stroke's human-readable display form (the inverse of
// String), per §4.1. Decimal digits are translated through Context's
// DigitMap (if configured) before the left/middle/right scan, and the
// context's NumberKey bit is set whenever a digit was translated.
func (c *Context) Parse(text string) (Stroke, error) {
	main, extrasPart, hasExtras := strings.Cut(text, tokenExtraSeparator)

	s := c.newZeroStroke()

	sawDigit, err := c.parseMain(main, &s)
	if err != nil {
		return Stroke{}, err
	}

	if sawDigit && c.NumberKey != "" {
		idx, ok := c.findAny(c.NumberKey)
		if !ok {
			return Stroke{}, fmt.Errorf("%w: number key %q", ErrUnknownKey, c.NumberKey)
		}

		setBit(s.bits, idx)
	}

	if hasExtras {
		for _, name := range strings.Split(extrasPart, tokenComma) {
			pos := indexInGroup(c.extra, name)
			if pos < 0 {
				return Stroke{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
			}

			setBit(s.bits, c.extraStart()+pos)
		}
	}

	return s, nil
}

// parseMain scans the left/middle/right portion of a stroke string,
// reporting whether any decimal digit was translated via DigitMap.
func (c *Context) parseMain(main string, s *Stroke) (sawDigit bool, err error) {
	runes := make([]rune, 0, len(main))

	for _, r := range main {
		if r >= '0' && r <= '9' {
			mapped, ok := c.DigitMap[r]
			if !ok {
				return false, fmt.Errorf("%w: digit %q", ErrUnknownKey, r)
			}

			mappedRunes := []rune(mapped)
			if len(mappedRunes) != 1 {
				return false, fmt.Errorf("stroke: digit key %q must map to a single-character key", mapped)
			}

			runes = append(runes, mappedRunes[0])
			sawDigit = true

			continue
		}

		runes = append(runes, r)
	}

	const (
		phaseLeft = iota
		phaseMiddle
		phaseRight
	)

	phase := phaseLeft
	sawMiddle := false
	sawHyphen := false

	for i := 0; i < len(runes); {
		r := runes[i]

		if r == '-' {
			if sawHyphen {
				return sawDigit, ErrDuplicateHyphen
			}

			sawHyphen = true
			phase = phaseRight
			i++

			continue
		}

		name := string(r)

		switch phase {
		case phaseLeft:
			if pos := indexInGroup(c.left, name); pos >= 0 {
				setBit(s.bits, pos)
				i++

				continue
			}

			phase = phaseMiddle
		case phaseMiddle:
			if pos := indexInGroup(c.middle, name); pos >= 0 {
				setBit(s.bits, c.middleStart()+pos)
				sawMiddle = true
				i++

				continue
			}

			phase = phaseRight
		case phaseRight:
			if !sawHyphen && !sawMiddle {
				return sawDigit, ErrNoSeparator
			}

			pos := indexInGroup(c.right, name)
			if pos < 0 {
				return sawDigit, fmt.Errorf("%w: %q", ErrUnknownKey, name)
			}

			setBit(s.bits, c.rightStart()+pos)
			i++
		}
	}

	return sawDigit, nil
}
