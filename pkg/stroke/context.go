// Package stroke implements the immutable chord value (§4.1) that the rest
// of the engine builds on: a bitset of simultaneously pressed steno keys,
// plus the layout ("context") that gives that bitset meaning.
package stroke

import (
	"errors"
	"fmt"
)

// Reserved tokens that cannot appear as key names: they are used as
// delimiters in a stroke's human-readable display form (§4.1).
const (
	tokenExtraSeparator = "|"
	tokenHyphen         = "-"
	tokenComma          = ","
)

// Context errors.
var (
	// ErrDuplicateKey is returned when a key name appears more than once
	// within one of a context's groups (different groups may share a name).
	ErrDuplicateKey = errors.New("stroke: duplicate key name")
	// ErrReservedKey is returned when a key name collides with a display
	// separator token ("|", "-", ",").
	ErrReservedKey = errors.New("stroke: reserved key name")
	// ErrEmptyKey is returned when a key group contains an empty name.
	ErrEmptyKey = errors.New("stroke: empty key name")
	// ErrMultiCharKey is returned when a left/middle/right key name is not
	// exactly one rune. Left/middle/right keys are displayed concatenated
	// with no separator (e.g. "STKPWHR"), so each must be a single
	// character; only extra keys (displayed comma-separated after "|")
	// may be multi-character names.
	ErrMultiCharKey = errors.New("stroke: left/middle/right key name must be exactly one character")
)

// Context describes a keyboard layout: the ordered left/middle/right key
// groups plus an unordered set of "extra" keys (§4.1). Key order within
// Left/Middle/Right determines display order; Extra keys are displayed in
// context order too, but never require a separating hyphen.
//
// A Context is immutable once built by NewContext; Stroke values carry a
// pointer to the Context they were constructed from for display/parsing,
// but do not serialize it (the dictionary header carries the context out
// of band, per §4.2.1 and §6).
type Context struct {
	left, middle, right, extra []string

	// DigitMap optionally maps a decimal digit rune ('0'-'9') to the name
	// of the key it stands in for when parsing a human-readable stroke
	// (spec.md §9 "Number-key encoding"). NumberKey, if non-empty, names
	// the key that is implicitly set whenever any digit maps to a key.
	// Both are nil/empty for layouts with no numeral convenience.
	DigitMap  map[rune]string
	NumberKey string
}

// NewContext builds a Context from its four key groups. Returns
// ErrEmptyKey, ErrDuplicateKey, or ErrReservedKey if any group is
// malformed.
func NewContext(left, middle, right, extra []string) (*Context, error) {
	c := &Context{
		left:   append([]string(nil), left...),
		middle: append([]string(nil), middle...),
		right:  append([]string(nil), right...),
		extra:  append([]string(nil), extra...),
	}

	for groupIdx, group := range [][]string{c.left, c.middle, c.right, c.extra} {
		seen := make(map[string]bool, len(group))

		for _, key := range group {
			if key == "" {
				return nil, ErrEmptyKey
			}

			if key == tokenExtraSeparator || key == tokenHyphen || key == tokenComma {
				return nil, fmt.Errorf("%w: %q", ErrReservedKey, key)
			}

			if groupIdx != 3 && len([]rune(key)) != 1 {
				return nil, fmt.Errorf("%w: %q", ErrMultiCharKey, key)
			}

			// Duplicates are rejected only within a group: real steno
			// layouts legitimately reuse a letter across groups (e.g. "R"
			// as both a left and a right key), per §4.1.
			if seen[key] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
			}

			seen[key] = true
		}
	}

	return c, nil
}

// KeyCount returns the total number of keys across all groups.
func (c *Context) KeyCount() int {
	return len(c.left) + len(c.middle) + len(c.right) + len(c.extra)
}

// ByteCount returns ceil(KeyCount/8), the packed size of a Stroke built
// from this Context (§4.1).
func (c *Context) ByteCount() int {
	return (c.KeyCount() + 7) / 8
}

// Left, Middle, Right, Extra return copies of the context's key groups in
// display order.
func (c *Context) Left() []string   { return append([]string(nil), c.left...) }
func (c *Context) Middle() []string { return append([]string(nil), c.middle...) }
func (c *Context) Right() []string  { return append([]string(nil), c.right...) }
func (c *Context) Extra() []string  { return append([]string(nil), c.extra...) }

// middleStart/rightStart/extraStart return the bit index at which each
// group begins, for internal use by Stroke construction/display.
func (c *Context) middleStart() int { return len(c.left) }
func (c *Context) rightStart() int  { return len(c.left) + len(c.middle) }
func (c *Context) extraStart() int  { return len(c.left) + len(c.middle) + len(c.right) }
