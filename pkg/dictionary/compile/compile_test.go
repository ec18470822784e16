package compile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chordforge/steno/pkg/command"
	"github.com/chordforge/steno/pkg/dictionary/compile"
	"github.com/chordforge/steno/pkg/stroke"
)

func testContext(t *testing.T) *stroke.Context {
	t.Helper()

	c, err := stroke.NewContext(
		[]string{"S", "T", "K", "P", "W", "H", "R"},
		[]string{"A", "O", "*", "E", "U"},
		[]string{"F", "R", "P", "B", "L", "G", "T", "S", "D", "Z"},
		[]string{"#"},
	)
	require.NoError(t, err)

	return c
}

func mustStroke(t *testing.T, ctx *stroke.Context, text string) stroke.Stroke {
	t.Helper()

	s, err := ctx.Parse(text)
	require.NoError(t, err)

	return s
}

func TestCompileRejectsDuplicateOutline(t *testing.T) {
	ctx := testContext(t)

	entries := []compile.Entry{
		{Outline: []stroke.Stroke{mustStroke(t, ctx, "KAT")}, Commands: []command.Command{command.NewWrite("cat")}},
		{Outline: []stroke.Stroke{mustStroke(t, ctx, "KAT")}, Commands: []command.Command{command.NewWrite("catastrophe")}},
	}

	_, err := compile.Compile(ctx, entries, compile.Config{})
	require.ErrorIs(t, err, compile.ErrDuplicateOutline)
}

func TestCompileRejectsEmptyOutline(t *testing.T) {
	ctx := testContext(t)

	entries := []compile.Entry{
		{Outline: nil, Commands: []command.Command{command.NewWrite("x")}},
	}

	_, err := compile.Compile(ctx, entries, compile.Config{})
	require.ErrorIs(t, err, compile.ErrEmptyOutline)
}

func TestCompileRejectsTooLongOutline(t *testing.T) {
	ctx := testContext(t)

	outline := make([]stroke.Stroke, compile.MaxOutlineLength+1)
	for i := range outline {
		outline[i] = mustStroke(t, ctx, "KAT")
	}

	entries := []compile.Entry{{Outline: outline, Commands: []command.Command{command.NewWrite("x")}}}

	_, err := compile.Compile(ctx, entries, compile.Config{})
	require.ErrorIs(t, err, compile.ErrOutlineTooLong)
}

func TestCompileRejectsNoEntries(t *testing.T) {
	ctx := testContext(t)

	_, err := compile.Compile(ctx, nil, compile.Config{})
	require.ErrorIs(t, err, compile.ErrNoEntries)
}

func TestCompileStatsReflectDedup(t *testing.T) {
	ctx := testContext(t)

	entries := []compile.Entry{
		{Outline: []stroke.Stroke{mustStroke(t, ctx, "KAT")}, Commands: []command.Command{command.NewWrite("x")}},
		{Outline: []stroke.Stroke{mustStroke(t, ctx, "HAT")}, Commands: []command.Command{command.NewWrite("x")}},
		{Outline: []stroke.Stroke{mustStroke(t, ctx, "TKOG")}, Commands: []command.Command{command.NewWrite("y")}},
	}

	result, err := compile.Compile(ctx, entries, compile.Config{})
	require.NoError(t, err)
	require.Equal(t, 3, result.Stats.EntryCount)
	require.Equal(t, 2, result.Stats.DistinctTranslations)
	require.Equal(t, 1, result.Stats.LongestOutlineLength)
	require.Greater(t, result.Stats.NodeCount, 0)
}

func TestCompileManyEntriesSelfChecks(t *testing.T) {
	ctx := testContext(t)

	words := []string{"KAT", "TKOG", "TPHO", "HEL", "WORLD", "TP-BG", "STKPWHR", "PWAT", "RAT", "SAT"}

	entries := make([]compile.Entry, 0, len(words))
	for i, w := range words {
		entries = append(entries, compile.Entry{
			Outline:  []stroke.Stroke{mustStroke(t, ctx, w)},
			Commands: []command.Command{command.NewWrite(w + string(rune('0'+i)))},
		})
	}

	_, err := compile.Compile(ctx, entries, compile.Config{})
	require.NoError(t, err)
}
