package formatter

import (
	"strings"
	"unicode"

	"github.com/chordforge/steno/pkg/command"
)

// state is the formatter's replayable snapshot (spec.md §4.4: "state
// record S = (attachment, capitalization)"), ported from
// original_source/code/shittyengine/src/formatter/state.rs.
type state struct {
	attachment     command.AttachmentMode
	capitalization command.CapitalizationMode
}

// defaultState is the formatter's initial and post-reset state: the very
// first emission is attached (no leading delimiter) and capitalized,
// producing e.g. "Hello" rather than " hello".
func defaultState() state {
	return state{
		attachment:     command.Next,
		capitalization: command.CapitalizeNext,
	}
}

// tick advances the state after a Write, per §4.4 step 3.
func (s *state) tick() {
	switch s.attachment {
	case command.Glue, command.Next:
		s.attachment = command.Delimited
	}

	switch s.capitalization {
	case command.CapitalizeNext, command.LowercaseNext, command.UppercaseNext:
		s.capitalization = command.Unchanged
	case command.LowerThenCapitalize:
		s.capitalization = command.Capitalize
	}
}

// changeAttachment applies ChangeAttachment's two-glue merge rule (§4.4):
// Glue followed by another Glue collapses into Next.
func (s *state) changeAttachment(m command.AttachmentMode) {
	if s.attachment == command.Glue && m == command.Glue {
		s.attachment = command.Next
		return
	}

	s.attachment = m
}

// applyCapitalization returns text transformed per the current capitalization
// mode (§4.4 step 1).
func (s state) applyCapitalization(text string) string {
	switch s.capitalization {
	case command.Unchanged:
		return text
	case command.Uppercase, command.UppercaseNext:
		return strings.ToUpper(text)
	case command.Lowercase, command.LowercaseNext, command.LowerThenCapitalize:
		return strings.ToLower(text)
	case command.Capitalize, command.CapitalizeNext:
		runes := []rune(strings.ToLower(text))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}

		return string(runes)
	default:
		return text
	}
}

// applyAttachment prepends the delimiter per the current attachment mode
// (§4.4 step 2).
func (s state) applyAttachment(text string, delimiter rune) string {
	switch s.attachment {
	case command.Delimited, command.Glue:
		return string(delimiter) + text
	default:
		return text
	}
}
