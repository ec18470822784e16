package plover

import "github.com/chordforge/steno/pkg/stroke"

// EnglishContext returns the standard English steno layout
// (#STKPWHRAO*EUFRPBLGTSDZ), ported from
// original_source/code/shittyengine/src/stroke.rs's hardcoded KEYMAP.
// spec.md §9 deliberately does not prescribe a specific digit mapping
// ("treat it as a property of the stroke context"); this is the one
// concrete layout stenoc ships so `compile`/`translate` have a default
// to parse Plover dictionaries against without requiring a layout file
// on the command line.
func EnglishContext() *stroke.Context {
	ctx, err := stroke.NewContext(
		[]string{"S", "T", "K", "P", "W", "H", "R"},
		[]string{"A", "O", "*", "E", "U"},
		[]string{"F", "R", "P", "B", "L", "G", "T", "S", "D", "Z"},
		[]string{"#"},
	)
	if err != nil {
		// The layout above is a fixed literal with no duplicate/reserved
		// keys within any single group; NewContext cannot fail on it.
		panic("plover: invalid built-in English context: " + err.Error())
	}

	ctx.NumberKey = "#"
	ctx.DigitMap = map[rune]string{
		'1': "S", '2': "T", '3': "P", '4': "H", '5': "A",
		'0': "O", '6': "F", '7': "P", '8': "L", '9': "T",
	}

	return ctx
}
