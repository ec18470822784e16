package plover_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chordforge/steno/internal/plover"
)

func TestEnglishContextParsesCommonStrokes(t *testing.T) {
	t.Parallel()

	ctx := plover.EnglishContext()

	tests := []struct {
		name string
		text string
	}{
		{name: "left bank word", text: "KPA*"},
		{name: "left, vowel and right banks", text: "WORLD"},
		{name: "right bank only", text: "-BG"},
		{name: "number row digit", text: "1-9"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ctx.Parse(tc.text)
			require.NoError(t, err)
		})
	}
}

func TestEnglishContextSetsNumberKeyOnDigits(t *testing.T) {
	t.Parallel()

	ctx := plover.EnglishContext()

	s, err := ctx.Parse("1-9")
	require.NoError(t, err)
	require.Contains(t, s.String(), "#")
}
