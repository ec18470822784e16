// Package command defines the abstract formatting commands a dictionary
// translation resolves to (spec.md §3), and the enums the text formatter
// drives its state machine from (spec.md §4.4).
package command

import "fmt"

// Kind discriminates the variants of Command. Go has no sum types, so the
// four-variant enum from the original implementation's
// GenericFormatterCommand is expressed as a tagged struct instead
// (spec.md §9 "Dynamic polymorphism replaced with sum types").
type Kind int

const (
	// Write emits literal text, shaped by the formatter's current
	// capitalization/attachment state.
	Write Kind = iota
	// ChangeCapitalization switches the formatter's capitalization mode
	// without emitting text.
	ChangeCapitalization
	// ChangeAttachment switches the formatter's attachment mode without
	// emitting text.
	ChangeAttachment
	// ResetFormatting restores the formatter's default state.
	ResetFormatting
)

func (k Kind) String() string {
	switch k {
	case Write:
		return "Write"
	case ChangeCapitalization:
		return "ChangeCapitalization"
	case ChangeAttachment:
		return "ChangeAttachment"
	case ResetFormatting:
		return "ResetFormatting"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Command is a single formatting instruction produced by a dictionary
// translation. Only the field matching Kind is meaningful:
//
//	Write                 -> Text
//	ChangeCapitalization  -> Capitalization
//	ChangeAttachment      -> Attachment
//	ResetFormatting       -> (no payload)
type Command struct {
	Kind           Kind
	Text           string
	Capitalization CapitalizationMode
	Attachment     AttachmentMode
}

// NewWrite builds a Write command.
func NewWrite(text string) Command { return Command{Kind: Write, Text: text} }

// NewChangeCapitalization builds a ChangeCapitalization command.
func NewChangeCapitalization(mode CapitalizationMode) Command {
	return Command{Kind: ChangeCapitalization, Capitalization: mode}
}

// NewChangeAttachment builds a ChangeAttachment command.
func NewChangeAttachment(mode AttachmentMode) Command {
	return Command{Kind: ChangeAttachment, Attachment: mode}
}

// NewResetFormatting builds a ResetFormatting command.
func NewResetFormatting() Command { return Command{Kind: ResetFormatting} }

// AttachmentMode controls whether a delimiter is inserted before the next
// written word (spec.md §4.4).
type AttachmentMode int

const (
	// Delimited places the configured delimiter between words.
	Delimited AttachmentMode = iota
	// Glue is an intermediate state: a second Glue in a row becomes Next
	// (both words stay attached); followed by anything else it reverts to
	// Delimited with no effect.
	Glue
	// Next attaches the following word and then reverts to Delimited.
	Next
	// Always never delimits words until changed by another command.
	Always
)

func (m AttachmentMode) String() string {
	switch m {
	case Delimited:
		return "Delimited"
	case Glue:
		return "Glue"
	case Next:
		return "Next"
	case Always:
		return "Always"
	default:
		return fmt.Sprintf("AttachmentMode(%d)", int(m))
	}
}

// CapitalizationMode controls how the next written word's letters are
// cased (spec.md §4.4).
type CapitalizationMode int

const (
	// Unchanged retains the word's original casing.
	Unchanged CapitalizationMode = iota
	// Uppercase converts every letter to uppercase.
	Uppercase
	// Lowercase converts every letter to lowercase.
	Lowercase
	// Capitalize uppercases the first letter and lowercases the rest.
	Capitalize
	// LowerThenCapitalize lowercases the next word, then switches to
	// Capitalize — useful for camelCase-style compounds.
	LowerThenCapitalize
	// UppercaseNext is Uppercase for exactly the next word.
	UppercaseNext
	// LowercaseNext is Lowercase for exactly the next word.
	LowercaseNext
	// CapitalizeNext is Capitalize for exactly the next word.
	CapitalizeNext
)

func (m CapitalizationMode) String() string {
	switch m {
	case Unchanged:
		return "Unchanged"
	case Uppercase:
		return "Uppercase"
	case Lowercase:
		return "Lowercase"
	case Capitalize:
		return "Capitalize"
	case LowerThenCapitalize:
		return "LowerThenCapitalize"
	case UppercaseNext:
		return "UppercaseNext"
	case LowercaseNext:
		return "LowercaseNext"
	case CapitalizeNext:
		return "CapitalizeNext"
	default:
		return fmt.Sprintf("CapitalizationMode(%d)", int(m))
	}
}
