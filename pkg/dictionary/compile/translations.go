package compile

import (
	"github.com/chordforge/steno/pkg/command"
	"github.com/chordforge/steno/pkg/dictionary"
)

// translationPointers deduplicates command lists by their encoded bytes
// and records each distinct list's offset into buf, ported from
// TranslationPointers in compile/translations.rs. Dedup is keyed on the
// encoded bytes (not Go value equality) so that two entries producing
// byte-identical translations always share one blob entry, matching the
// spec's "Deduplication of translation blobs exploits the heavy sharing
// of identical word endings in steno dictionaries" (spec.md §4.2.2).
type translationPointers struct {
	offsets map[string]uint32
}

// newTranslationPointers serializes every distinct command list in lists
// into buf (which must already contain whatever precedes the translation
// blob, e.g. the header), returning the lookup table from encoded bytes
// to blob offset.
func newTranslationPointers(buf *[]byte, lists [][]command.Command) (*translationPointers, error) {
	tp := &translationPointers{offsets: make(map[string]uint32)}

	for _, list := range lists {
		encoded, err := dictionary.EncodeCommandList(nil, list)
		if err != nil {
			return nil, err
		}

		key := string(encoded)
		if _, ok := tp.offsets[key]; ok {
			continue
		}

		tp.offsets[key] = uint32(len(*buf))
		*buf = append(*buf, encoded...)
	}

	return tp, nil
}

// offsetFor returns the blob offset for list's encoding, which must have
// already been registered via newTranslationPointers.
func (tp *translationPointers) offsetFor(list []command.Command) (uint32, error) {
	encoded, err := dictionary.EncodeCommandList(nil, list)
	if err != nil {
		return 0, err
	}

	offset, ok := tp.offsets[string(encoded)]
	if !ok {
		return 0, ErrMissingTranslation
	}

	return offset, nil
}
