package plover_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chordforge/steno/internal/plover"
	"github.com/chordforge/steno/pkg/command"
)

func TestParseTranslationPlainText(t *testing.T) {
	cmds, err := plover.ParseTranslation("hello")
	require.NoError(t, err)
	require.Equal(t, []command.Command{command.NewWrite("hello")}, cmds)
}

func TestParseTranslationNoDelimiterAttach(t *testing.T) {
	cmds, err := plover.ParseTranslation("{^}ing")
	require.NoError(t, err)
	require.Equal(t, []command.Command{
		command.NewChangeAttachment(command.Next),
		command.NewWrite("ing"),
	}, cmds)
}

func TestParseTranslationGlue(t *testing.T) {
	cmds, err := plover.ParseTranslation("{&cat}")
	require.NoError(t, err)
	require.Equal(t, []command.Command{
		command.NewChangeAttachment(command.Glue),
		command.NewWrite("cat"),
		command.NewChangeAttachment(command.Glue),
	}, cmds)
}

func TestParseTranslationPunctuationRequestsCapitalizeNext(t *testing.T) {
	cmds, err := plover.ParseTranslation("{.}")
	require.NoError(t, err)
	require.Equal(t, []command.Command{
		command.NewChangeAttachment(command.Next),
		command.NewWrite("."),
		command.NewChangeCapitalization(command.CapitalizeNext),
	}, cmds)
}

func TestParseTranslationComma(t *testing.T) {
	cmds, err := plover.ParseTranslation("{,}")
	require.NoError(t, err)
	require.Equal(t, []command.Command{
		command.NewChangeAttachment(command.Next),
		command.NewWrite(","),
	}, cmds)
}

func TestParseTranslationCapitalizeNext(t *testing.T) {
	cmds, err := plover.ParseTranslation("{-|}word")
	require.NoError(t, err)
	require.Equal(t, []command.Command{
		command.NewChangeCapitalization(command.CapitalizeNext),
		command.NewWrite("word"),
	}, cmds)
}

func TestParseTranslationUppercaseLowercaseNext(t *testing.T) {
	up, err := plover.ParseTranslation("{<}")
	require.NoError(t, err)
	require.Equal(t, []command.Command{command.NewChangeCapitalization(command.UppercaseNext)}, up)

	down, err := plover.ParseTranslation("{>}")
	require.NoError(t, err)
	require.Equal(t, []command.Command{command.NewChangeCapitalization(command.LowercaseNext)}, down)
}

func TestParseTranslationResetFormatting(t *testing.T) {
	cmds, err := plover.ParseTranslation("{}")
	require.NoError(t, err)
	require.Equal(t, []command.Command{command.NewResetFormatting()}, cmds)
}

func TestParseTranslationEscapedBrace(t *testing.T) {
	cmds, err := plover.ParseTranslation(`\{literal\}`)
	require.NoError(t, err)
	require.Equal(t, []command.Command{command.NewWrite("{literal}")}, cmds)
}

func TestParseTranslationMixedTextAndDirectives(t *testing.T) {
	cmds, err := plover.ParseTranslation("pre{^}mid{^}post")
	require.NoError(t, err)
	require.Equal(t, []command.Command{
		command.NewWrite("pre"),
		command.NewChangeAttachment(command.Next),
		command.NewWrite("mid"),
		command.NewChangeAttachment(command.Next),
		command.NewWrite("post"),
	}, cmds)
}

func TestParseTranslationUnterminatedDirective(t *testing.T) {
	_, err := plover.ParseTranslation("{^")
	require.Error(t, err)
}
