// Package engine wires the outline matcher, dictionary, and formatter
// into the per-stroke driver loop described by spec.md §4.3.4, adding the
// ordering guarantees of spec.md §5 (strict per-stroke sequencing; undo
// before write within a stroke) and the error-handling policy of spec.md
// §7 (a dictionary miss or block-device failure falls back to a literal
// stroke write rather than stalling the stream).
//
// Grounded on the teacher's synchronous, single-goroutine style — there
// is no analogous "driver loop" in calvinalkan-agent-task, so this
// package's shape follows spec.md §4.3.4's pseudocode directly, in the
// idiom the rest of this repo already uses (explicit error returns,
// context.Context on every blocking call).
package engine

import (
	"context"
	"log/slog"

	"github.com/chordforge/steno/pkg/command"
	"github.com/chordforge/steno/pkg/dictionary"
	"github.com/chordforge/steno/pkg/formatter"
	"github.com/chordforge/steno/pkg/matcher"
	"github.com/chordforge/steno/pkg/stroke"
)

// historyCapacity is the matcher's bounded history size. spec.md §4.3
// documents "≥ longest_outline × expected_retranslation_depth; 32 is
// sufficient in practice".
const historyCapacity = 32

// formatterHistoryCapacity bounds the formatter's undo history. It only
// ever needs to hold as many entries as the matcher can ask it to undo in
// one TrailingOutline reversal, so it is sized the same as the matcher's
// history.
const formatterHistoryCapacity = 32

// Driver is a single-owner (spec.md §5 "Dictionary reader: single-owner")
// per-session engine: one Driver per connected chording keyboard.
type Driver struct {
	matcher *matcher.OutlineMatcher[stroke.Stroke]
	dict    *dictionary.Dictionary
	fmt     *formatter.Formatter
	log     *slog.Logger
}

// New returns a Driver over dict, with a matcher sized to dict's
// longest-outline length and a formatter using delimiter as its word
// separator (spec.md §4.4 default `' '`). A nil logger falls back to
// slog.Default(), unused unless debug level is enabled (SPEC_FULL.md
// §1.5: "nothing on the hot path allocates when the logger is
// disabled").
func New(dict *dictionary.Dictionary, delimiter rune, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}

	return &Driver{
		matcher: matcher.New[stroke.Stroke](historyCapacity, dict.LongestOutlineLength()),
		dict:    dict,
		fmt:     formatter.New(formatterHistoryCapacity, delimiter),
		log:     log,
	}
}

// Process feeds one stroke through the matcher/dictionary/formatter
// pipeline, implementing spec.md §4.3.4's driver loop, and returns every
// formatter.Output produced for this stroke in emission order (undo
// operations for any invalidated trailing outline always precede the new
// outline's writes, per spec.md §5).
//
// A dictionary lookup error (a corrupt tree or a failed block read) is
// logged at debug level and treated as a clean miss: the stroke falls
// back to dictionary.Fallback's literal write (spec.md §4.2.5, §7
// "Lookup miss ... fall back to literal stroke text"), so one bad read
// never stalls the output stream.
func (d *Driver) Process(ctx context.Context, s stroke.Stroke) ([]formatter.Output, error) {
	d.matcher.Add(s)

	var out []formatter.Output

	for d.matcher.UncommittedCount() > 0 {
		uncommitted := d.matcher.UncommittedStrokes()

		match, ok, err := d.dict.MatchPrefix(ctx, uncommitted)
		if err != nil {
			d.log.DebugContext(ctx, "dictionary lookup failed, falling back to literal stroke", "error", err)

			ok = false
		}

		prefixLength, cmds := 1, dictionary.Fallback(uncommitted[0])
		if ok {
			prefixLength, cmds = match.StrokeCount, match.Commands
		}

		out = append(out, d.tryCommit(prefixLength, cmds)...)
	}

	return out, nil
}

// Pop reverses the most recently struck stroke (e.g. the firmware's
// dedicated undo-stroke key), per spec.md §4.3.2 and the worked example
// in spec.md §8 ("After the sequence KPA*, HEL, invoking the engine's
// pop() yields <Backspace(5)>"). If the removed stroke was part of a
// committed outline, every one of that outline's commands is undone
// through the formatter; a stroke that was never committed to an
// outline produces no output.
func (d *Driver) Pop() []formatter.Output {
	info, hadOutline := d.matcher.Pop()
	if !hadOutline {
		return nil
	}

	out := make([]formatter.Output, 0, info.Commands)
	for i := 0; i < info.Commands; i++ {
		if op, ok := d.fmt.Undo(); ok {
			out = append(out, op)
		}
	}

	return out
}

// tryCommit drives matcher.Commit to completion, undoing any blocking
// trailing outline first (spec.md §4.3.3, §4.3.4): the matcher can
// require zero or more TrailingOutline undo rounds before a commit
// actually binds (FastForward) or binds and emits (Regular).
func (d *Driver) tryCommit(prefixLength int, cmds []command.Command) []formatter.Output {
	var out []formatter.Output

	for {
		result, trailing := d.matcher.Commit(prefixLength, len(cmds))

		if trailing != nil {
			info := trailing.Outline()
			for i := 0; i < info.Commands; i++ {
				if op, ok := d.fmt.Undo(); ok {
					out = append(out, op)
				}
			}

			trailing.Remove()

			continue
		}

		if result == matcher.Regular {
			for _, cmd := range cmds {
				if op, ok := d.fmt.Apply(cmd); ok {
					out = append(out, op)
				}
			}
		}

		return out
	}
}
