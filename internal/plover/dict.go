// Package plover ingests Plover-format JSON steno dictionaries into
// compile.Entry values. spec.md §1 explicitly excludes "standard
// combinator parsing of Plover's format" as a non-core external
// collaborator, so the outer outline->translation JSON shape is decoded
// with encoding/json rather than a hand-rolled parser. The translation
// string's own `{...}` directive grammar is genuinely core — it is what
// produces command.Command values — and is ported from
// original_source/code/shittyengine/src/compile/json/{dict,stroke}.rs's
// combine-based parser, rewritten as a small hand-written scanner since
// Go has no idiomatic parser-combinator library in this corpus.
package plover

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chordforge/steno/pkg/command"
	"github.com/chordforge/steno/pkg/dictionary/compile"
	"github.com/chordforge/steno/pkg/stroke"
)

// ParseDictionary decodes a Plover JSON dictionary (outline string ->
// translation string, e.g. `{"TKPWHRO*EPBT": "dict"}`) into compile
// entries, parsing each outline with ctx (stroke.go's grammar already
// covers the layout-agnostic steno-chord syntax Plover's dict.rs
// reimplements per-layout) and each translation with ParseTranslation.
func ParseDictionary(ctx *stroke.Context, data []byte) ([]compile.Entry, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("plover: invalid dictionary JSON: %w", err)
	}

	entries := make([]compile.Entry, 0, len(raw))

	for outlineText, translation := range raw {
		outline, err := parseOutline(ctx, outlineText)
		if err != nil {
			return nil, fmt.Errorf("plover: outline %q: %w", outlineText, err)
		}

		cmds, err := ParseTranslation(translation)
		if err != nil {
			return nil, fmt.Errorf("plover: translation %q for outline %q: %w", translation, outlineText, err)
		}

		entries = append(entries, compile.Entry{Outline: outline, Commands: cmds, Tag: outlineText})
	}

	return entries, nil
}

// parseOutline splits a Plover multi-stroke outline ("STK/HR-T") on its
// slash separator and parses each stroke individually (dict.rs's
// `outline()`: `sep_by1(stroke(), char('/'))`).
func parseOutline(ctx *stroke.Context, text string) ([]stroke.Stroke, error) {
	parts := strings.Split(text, "/")
	strokes := make([]stroke.Stroke, len(parts))

	for i, p := range parts {
		s, err := ctx.Parse(p)
		if err != nil {
			return nil, err
		}

		strokes[i] = s
	}

	return strokes, nil
}
