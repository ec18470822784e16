// Package matcher implements the outline matcher (spec.md §4.3): an
// online state machine that consumes strokes one at a time, maintains a
// bounded history, and resolves the longest-matching multi-stroke
// sequences against a dictionary, including correct retranslation when a
// new stroke invalidates a prior match.
//
// Ported from
// original_source/code/shittyengine/src/matcher/{mod,state,mutator,resolver}.rs,
// generalized from a const-generic history size to a runtime capacity and
// from a borrow-checked TrailingOutline<'s, ...> handle to one that holds
// its matcher's history offset directly.
package matcher

import (
	"fmt"

	"github.com/chordforge/steno/internal/ring"
)

// OutlineInformation records that a run of strokes was bound into a
// translated outline: its stroke count and the number of commands the
// dictionary translation produced (spec.md §4.3).
type OutlineInformation struct {
	Length   int
	Commands int
}

// HistoryEntry is one stroke in the matcher's bounded history, plus
// outline information if it is the earliest stroke of a committed
// outline.
type HistoryEntry[T any] struct {
	Stroke  T
	Outline *OutlineInformation
}

// CommitType distinguishes Commit's non-blocking outcomes (spec.md
// §4.3.3). The blocking outcome (a trailing outline must be undone first)
// is instead reported as an error value, *TrailingOutline.
type CommitType int

const (
	// FastForward means the prefix already matched an existing outline of
	// the same length; no undo/redo was necessary.
	FastForward CommitType = iota
	// Regular means a new outline was bound; the caller must now apply
	// the translation's commands to the formatter.
	Regular
)

func (c CommitType) String() string {
	switch c {
	case FastForward:
		return "FastForward"
	case Regular:
		return "Regular"
	default:
		return fmt.Sprintf("CommitType(%d)", int(c))
	}
}

// OutlineMatcher is the stroke history state machine described by
// spec.md §4.3. Stroke is generic: the matcher only ever copies and
// compares-by-identity the value it's given, never inspecting it.
type OutlineMatcher[T any] struct {
	history              *ring.Buffer[HistoryEntry[T]]
	longestOutlineLength int
	uncommittedCount     int
}

// New returns a matcher with the given history capacity (spec.md §4.3:
// "≥ longest_outline × expected_retranslation_depth; 32 is sufficient in
// practice") and longest possible outline length in strokes.
func New[T any](historyCapacity, longestOutlineLength int) *OutlineMatcher[T] {
	return &OutlineMatcher[T]{
		history:              ring.New[HistoryEntry[T]](historyCapacity),
		longestOutlineLength: longestOutlineLength,
	}
}

// UncommittedCount returns the number of trailing strokes eligible for
// (re)matching.
func (m *OutlineMatcher[T]) UncommittedCount() int { return m.uncommittedCount }

// Add appends a stroke to the history and widens the uncommitted region
// per spec.md §4.3.1.
func (m *OutlineMatcher[T]) Add(stroke T) {
	m.history.Push(HistoryEntry[T]{Stroke: stroke})

	uncommitted := m.longestOutlineLength
	if m.history.Len() < uncommitted {
		uncommitted = m.history.Len()
	}

	// Walk backwards from the boundary while the stroke there is not
	// itself an outline boundary, widening uncommitted to include any
	// prior outline ending inside the new window (so it stays eligible
	// for retranslation).
	for {
		entry, ok := m.history.At(uncommitted - 1)
		if !ok || entry.Outline != nil {
			break
		}

		uncommitted++
	}

	if uncommitted > m.uncommittedCount {
		m.uncommittedCount = uncommitted
	}

	if m.uncommittedCount > m.history.Len() {
		m.uncommittedCount = m.history.Len()
	}
}

// Pop removes the most recently added stroke, returning the outline
// information of the outline it belonged to, if any, so the caller can
// undo the right number of formatter commands (spec.md §4.3.2).
func (m *OutlineMatcher[T]) Pop() (OutlineInformation, bool) {
	removed, ok := m.history.Pop()
	if !ok {
		return OutlineInformation{}, false
	}

	if m.uncommittedCount > 0 {
		m.uncommittedCount--
	}

	if removed.Outline != nil {
		return *removed.Outline, true
	}

	// The removed stroke may have been part of an outline started
	// earlier. Walk backwards to find the nearest outline boundary and
	// check whether it would have included the removed stroke.
	for offset := 0; ; offset++ {
		entry, ok := m.history.At(offset)
		if !ok {
			break
		}

		if entry.Outline == nil {
			continue
		}

		if entry.Outline.Length == offset+2 {
			outline := *entry.Outline

			ptr, _ := m.history.PeekBackPtr(offset)
			ptr.Outline = nil

			if offset > m.uncommittedCount {
				m.uncommittedCount = offset
			}

			return outline, true
		}

		break
	}

	return OutlineInformation{}, false
}

// TrailingOutline is the outline that must be undone before Commit can
// proceed (spec.md §4.3.3). Call Remove after undoing its commands via
// the formatter, then retry Commit.
type TrailingOutline[T any] struct {
	matcher   *OutlineMatcher[T]
	backIndex int // back-relative offset of the outline's earliest stroke
}

// Outline returns the blocking outline's information.
func (t *TrailingOutline[T]) Outline() OutlineInformation {
	entry, _ := t.matcher.history.At(t.backIndex)

	return *entry.Outline
}

// Strokes returns the outline's strokes in the order they were struck
// (oldest first).
func (t *TrailingOutline[T]) Strokes() []T {
	info := t.Outline()
	out := make([]T, 0, info.Length)

	for i := t.backIndex; i > t.backIndex-info.Length; i-- {
		entry, _ := t.matcher.history.At(i)
		out = append(out, entry.Stroke)
	}

	return out
}

// Remove clears the outline, allowing Commit to proceed.
func (t *TrailingOutline[T]) Remove() {
	ptr, ok := t.matcher.history.PeekBackPtr(t.backIndex)
	if ok {
		ptr.Outline = nil
	}
}

// Commit binds the first prefixLength uncommitted strokes to a new
// outline emitting commandCount commands (spec.md §4.3.3). It panics if
// prefixLength is zero or exceeds the uncommitted count, matching the
// original implementation's documented panic conditions (these indicate
// a caller bug, not recoverable input).
func (m *OutlineMatcher[T]) Commit(prefixLength, commandCount int) (CommitType, *TrailingOutline[T]) {
	if prefixLength == 0 || m.uncommittedCount < prefixLength {
		panic("matcher: invalid prefix length, not enough uncommitted strokes present to fit")
	}

	if entry, ok := m.history.At(m.uncommittedCount - 1); ok && entry.Outline != nil && entry.Outline.Length == prefixLength {
		m.uncommittedCount -= prefixLength

		return FastForward, nil
	}

	if backIndex, ok := m.findTrailingOutline(); ok {
		return 0, &TrailingOutline[T]{matcher: m, backIndex: backIndex}
	}

	ptr, ok := m.history.PeekBackPtr(m.uncommittedCount - 1)
	if !ok {
		panic("matcher: attempted to commit on inconsistent state")
	}

	ptr.Outline = &OutlineInformation{Length: prefixLength, Commands: commandCount}
	m.uncommittedCount -= prefixLength

	return Regular, nil
}

// findTrailingOutline scans the uncommitted region for any stroke that
// already carries outline info (a previously committed outline that a
// newer stroke may have invalidated) and returns its back-index.
func (m *OutlineMatcher[T]) findTrailingOutline() (int, bool) {
	for offset := 0; offset < m.uncommittedCount; offset++ {
		entry, ok := m.history.At(offset)
		if ok && entry.Outline != nil {
			return offset, true
		}
	}

	return 0, false
}

// UncommittedStrokes returns the uncommitted strokes in stroke order
// (oldest first), the order the dictionary's prefix matcher expects.
func (m *OutlineMatcher[T]) UncommittedStrokes() []T {
	out := make([]T, 0, m.uncommittedCount)

	for i := m.uncommittedCount - 1; i >= 0; i-- {
		entry, _ := m.history.At(i)
		out = append(out, entry.Stroke)
	}

	return out
}

// CommittedStrokes returns the committed history entries in stroke order
// (oldest first).
func (m *OutlineMatcher[T]) CommittedStrokes() []HistoryEntry[T] {
	out := make([]HistoryEntry[T], 0, m.history.Len()-m.uncommittedCount)

	for i := m.history.Len() - 1; i >= m.uncommittedCount; i-- {
		entry, _ := m.history.At(i)
		out = append(out, entry)
	}

	return out
}
