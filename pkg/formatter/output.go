package formatter

import "fmt"

// OutputKind discriminates the two members of the formatter's output
// alphabet (spec.md §4.4: "{Write(string), Backspace(n)}").
type OutputKind int

const (
	// OutputWrite emits literal text.
	OutputWrite OutputKind = iota
	// OutputBackspace deletes Count previously emitted characters.
	OutputBackspace
)

func (k OutputKind) String() string {
	switch k {
	case OutputWrite:
		return "Write"
	case OutputBackspace:
		return "Backspace"
	default:
		return fmt.Sprintf("OutputKind(%d)", int(k))
	}
}

// Output is one operation in the formatter's external text interface —
// the engine's final output before it reaches the keyboard's USB HID
// layer (spec.md §4.4, §6).
type Output struct {
	Kind  OutputKind
	Text  string
	Count int
}
