package compile

import "errors"

// Compile-time errors (spec.md §7 "Compiler-time errors ... All fatal at
// compile time with a specific diagnostic").
var (
	// ErrDuplicateOutline is returned when two entries share an identical
	// outline.
	ErrDuplicateOutline = errors.New("compile: duplicate outline")
	// ErrOutlineTooLong is returned when an outline has more than
	// MaxOutlineLength (32) strokes.
	ErrOutlineTooLong = errors.New("compile: outline exceeds length limit")
	// ErrEmptyOutline is returned when an entry has zero strokes.
	ErrEmptyOutline = errors.New("compile: outline has zero strokes")
	// ErrNoEntries is returned when Compile is given no entries at all.
	ErrNoEntries = errors.New("compile: no entries given")
	// ErrOffsetOutOfRange is returned when a translation or node offset
	// would not fit in the format's 24-bit pointer (spec.md §4.2.2: "24-bit
	// pointers bound the maximum dictionary size to 16 MiB").
	ErrOffsetOutOfRange = errors.New("compile: offset exceeds 24-bit pointer range (16 MiB dictionary size limit)")
	// ErrMissingTranslation is an internal consistency error: a leaf's
	// command list was never registered in the translation blob.
	ErrMissingTranslation = errors.New("compile: internal error: translation not found in blob")
	// ErrRoundTripMismatch is returned by Compile's self-check (spec.md
	// §4.2.6, §8 "Dictionary round-trip") when reading an entry back from
	// the just-built buffer doesn't reproduce it.
	ErrRoundTripMismatch = errors.New("compile: round-trip self-check failed")
)
