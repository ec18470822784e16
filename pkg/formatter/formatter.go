// Package formatter implements the replayable, undo-capable text shaping
// layer that turns a dictionary translation's abstract commands into a
// stream of write/backspace operations (spec.md §4.4).
package formatter

import (
	"github.com/chordforge/steno/internal/ring"
	"github.com/chordforge/steno/pkg/command"
)

// orthographicSuffixLength bounds the trailing-output snapshot kept after
// every Write, for a future orthographic-suffix rule engine (prefix/suffix
// spelling adjustments). Spec.md §9 leaves this as an unimplemented hook:
// latestSuffix is recorded but never consulted.
const orthographicSuffixLength = 8

// historyEntry is the formatter's per-command undo record (spec.md §4.4:
// "Formatter history entry: (formatter_state_snapshot, character_count)").
type historyEntry struct {
	state state
	chars int
}

// Formatter applies a Command stream, producing Output operations and
// remembering enough per-command state to undo any suffix of commands it
// has applied (§4.4).
type Formatter struct {
	history   *ring.Buffer[historyEntry]
	delimiter rune

	// latestSuffix records the trailing characters of the most recent
	// Write, for orthographic-suffix rules, which this package does not
	// implement (see SPEC_FULL.md §4, "Orthographic-suffix hook").
	latestSuffix string
}

// New returns a Formatter with the given bounded undo history size and
// word delimiter (default ' ' per §4.4).
func New(historySize int, delimiter rune) *Formatter {
	return &Formatter{
		history:   ring.New[historyEntry](historySize),
		delimiter: delimiter,
	}
}

func (f *Formatter) current() state {
	if s, ok := f.history.Back(); ok {
		return s.state
	}

	return defaultState()
}

// Apply applies one Command, returning the Output it produces (if any)
// and pushing an undo entry regardless (§4.4).
func (f *Formatter) Apply(cmd command.Command) (Output, bool) {
	s := f.current()

	switch cmd.Kind {
	case command.Write:
		text := s.applyCapitalization(cmd.Text)
		text = s.applyAttachment(text, f.delimiter)

		s.tick()
		f.history.Push(historyEntry{state: s, chars: len([]rune(text))})
		f.latestSuffix = suffixOf(text, orthographicSuffixLength)

		return Output{Kind: OutputWrite, Text: text}, true

	case command.ChangeCapitalization:
		s.capitalization = cmd.Capitalization
		f.history.Push(historyEntry{state: s})

		return Output{}, false

	case command.ChangeAttachment:
		s.changeAttachment(cmd.Attachment)
		f.history.Push(historyEntry{state: s})

		return Output{}, false

	case command.ResetFormatting:
		f.history.Push(historyEntry{state: defaultState()})
		f.latestSuffix = ""

		return Output{}, false

	default:
		f.history.Push(historyEntry{state: s})

		return Output{}, false
	}
}

// Undo pops the most recently applied command's history entry and returns
// the Backspace operation that reverses its visible effect, if any
// (§4.4: "pop the top state; if its char_count > 0, emit
// Backspace(char_count), else no emission").
func (f *Formatter) Undo() (Output, bool) {
	f.latestSuffix = ""

	entry, ok := f.history.Pop()
	if !ok || entry.chars == 0 {
		return Output{}, false
	}

	return Output{Kind: OutputBackspace, Count: entry.chars}, true
}

func suffixOf(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[len(runes)-n:])
}
