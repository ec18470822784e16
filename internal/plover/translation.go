package plover

import (
	"fmt"
	"strings"

	"github.com/chordforge/steno/pkg/command"
)

// punctuationMarks mirrors dict.rs's meta_operator_item `one_of(".:;!?")`
// set: attach to the previous word, write the mark, then request
// capitalization for whatever follows.
const punctuationMarks = ".:;!?"

// ParseTranslation parses one Plover translation string into the command
// list it represents, porting dict.rs's translation()/meta_operator()
// combinator grammar: a translation is a sequence of literal-text runs
// and `{...}` directives, each producing zero or more command.Command
// values in order.
//
// Recognized directives: `{^}` no-delimiter attach, `{&word}` glue,
// `{>}`/`{<}` lowercase-next/uppercase-next, `{-|}` capitalize-next,
// `{,}` and one of `{.}{:}{;}{!}{?}` punctuation, `{}` reset, and any
// other `{text}` is treated as literal text (dict.rs's translation_text
// fallback inside meta_operator_item).
func ParseTranslation(s string) ([]command.Command, error) {
	var cmds []command.Command

	runes := []rune(s)
	for i := 0; i < len(runes); {
		if runes[i] == '{' {
			end, ok := matchingBrace(runes, i)
			if !ok {
				return nil, fmt.Errorf("unterminated '{' at offset %d", i)
			}

			directive := string(runes[i+1 : end])

			more, err := parseDirective(directive)
			if err != nil {
				return nil, err
			}

			cmds = append(cmds, more...)
			i = end + 1

			continue
		}

		start := i
		for i < len(runes) && runes[i] != '{' {
			if runes[i] == '\\' && i+1 < len(runes) {
				i++
			}

			i++
		}

		if text := unescapeText(string(runes[start:i])); text != "" {
			cmds = append(cmds, command.NewWrite(text))
		}
	}

	return cmds, nil
}

// matchingBrace returns the index of the '}' closing the '{' at open, or
// false if none exists. Plover translations never nest braces.
func matchingBrace(runes []rune, open int) (int, bool) {
	for i := open + 1; i < len(runes); i++ {
		if runes[i] == '}' {
			return i, true
		}
	}

	return 0, false
}

func parseDirective(directive string) ([]command.Command, error) {
	switch directive {
	case "":
		return []command.Command{command.NewResetFormatting()}, nil
	case "^":
		return []command.Command{command.NewChangeAttachment(command.Next)}, nil
	case ">":
		return []command.Command{command.NewChangeCapitalization(command.LowercaseNext)}, nil
	case "<":
		return []command.Command{command.NewChangeCapitalization(command.UppercaseNext)}, nil
	case "-|":
		return []command.Command{command.NewChangeCapitalization(command.CapitalizeNext)}, nil
	case ",":
		return []command.Command{
			command.NewChangeAttachment(command.Next),
			command.NewWrite(","),
		}, nil
	}

	if glued, ok := strings.CutPrefix(directive, "&"); ok {
		return []command.Command{
			command.NewChangeAttachment(command.Glue),
			command.NewWrite(unescapeText(glued)),
			command.NewChangeAttachment(command.Glue),
		}, nil
	}

	if len(directive) == 1 && strings.ContainsRune(punctuationMarks, rune(directive[0])) {
		return []command.Command{
			command.NewChangeAttachment(command.Next),
			command.NewWrite(directive),
			command.NewChangeCapitalization(command.CapitalizeNext),
		}, nil
	}

	// Anything else inside braces is literal text (dict.rs's
	// meta_operator_item falls back to translation_text).
	if text := unescapeText(directive); text != "" {
		return []command.Command{command.NewWrite(text)}, nil
	}

	return nil, nil
}

// unescapeText resolves the backslash escapes translation_char/json_char
// recognize beyond what encoding/json already resolved in the outer JSON
// decode: a literal brace or caret that would otherwise be read as a
// directive delimiter.
func unescapeText(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			switch runes[i+1] {
			case '{', '}', '^', '\\':
				b.WriteRune(runes[i+1])
				i++

				continue
			}
		}

		b.WriteRune(runes[i])
	}

	return b.String()
}
