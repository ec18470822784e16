package dictionary

import (
	"github.com/chordforge/steno/pkg/command"
	"github.com/chordforge/steno/pkg/stroke"
)

// Fallback returns the single-stroke, single-command outline the matcher
// uses when no dictionary entry covers even the first stroke (spec.md
// §4.2.5): a literal Write of the stroke's human-readable display form.
func Fallback(s stroke.Stroke) []command.Command {
	return []command.Command{command.NewWrite(s.String())}
}
