package formatter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chordforge/steno/pkg/command"
	"github.com/chordforge/steno/pkg/formatter"
)

// applyAggregated runs Apply over every command and folds the resulting
// Output stream into a single string, mirroring original_source's
// OutputAggregator test helper.
func applyAggregated(f *formatter.Formatter, cmds []command.Command) string {
	var b strings.Builder

	for _, cmd := range cmds {
		out, ok := f.Apply(cmd)
		if !ok {
			continue
		}

		applyOutput(&b, out)
	}

	return b.String()
}

func applyOutput(b *strings.Builder, out formatter.Output) {
	switch out.Kind {
	case formatter.OutputWrite:
		b.WriteString(out.Text)
	case formatter.OutputBackspace:
		s := b.String()
		runes := []rune(s)
		b.Reset()
		b.WriteString(string(runes[:len(runes)-out.Count]))
	}
}

func Test_Formatter_Matches_Reference_Scenario(t *testing.T) {
	t.Parallel()

	f := formatter.New(10, ' ')

	cmds := []command.Command{
		command.NewWrite("hello"),
		command.NewChangeCapitalization(command.Capitalize),
		command.NewWrite("hello"),
		command.NewChangeCapitalization(command.LowerThenCapitalize),
		command.NewWrite("hello"),
		command.NewChangeAttachment(command.Always),
		command.NewWrite("world"),
		command.NewWrite("john"),
		command.NewWrite("somethinggone"),
	}

	var b strings.Builder
	for _, cmd := range cmds {
		if out, ok := f.Apply(cmd); ok {
			applyOutput(&b, out)
		}
	}

	undoOut, ok := f.Undo()
	require.True(t, ok)
	applyOutput(&b, undoOut)

	assert.Equal(t, "Hello Hello helloWorldJohn", b.String())
}

func Test_First_Write_Is_Capitalized_And_Unattached(t *testing.T) {
	t.Parallel()

	f := formatter.New(4, ' ')

	out, ok := f.Apply(command.NewWrite("hello"))
	require.True(t, ok)
	assert.Equal(t, "Hello", out.Text)
}

func Test_Subsequent_Writes_Are_Delimited(t *testing.T) {
	t.Parallel()

	f := formatter.New(4, ' ')

	_, _ = f.Apply(command.NewWrite("hello"))
	out, ok := f.Apply(command.NewWrite("world"))
	require.True(t, ok)

	assert.Equal(t, " world", out.Text)
}

func Test_Glue_Merging_Attaches_Two_Glued_Words(t *testing.T) {
	t.Parallel()

	// A glue-style translation marks itself glue-compatible both before
	// and after its Write. Two such translations in succession produce
	// two consecutive ChangeAttachment(Glue) calls between their Writes,
	// which merge into Next and suppress the second word's delimiter
	// (spec.md §4.4, §8 "Glue merging").
	f := formatter.New(6, ' ')

	_, _ = f.Apply(command.NewChangeAttachment(command.Glue))
	first, ok := f.Apply(command.NewWrite("x"))
	require.True(t, ok)

	_, _ = f.Apply(command.NewChangeAttachment(command.Glue))
	_, _ = f.Apply(command.NewChangeAttachment(command.Glue))
	second, ok := f.Apply(command.NewWrite("x"))
	require.True(t, ok)

	assert.Equal(t, " X", first.Text)
	assert.Equal(t, "x", second.Text, "second glued word must attach with no delimiter")
}

func Test_Single_Glue_Without_A_Second_Reverts_To_Delimited(t *testing.T) {
	t.Parallel()

	f := formatter.New(4, ' ')

	_, _ = f.Apply(command.NewWrite("first"))
	_, _ = f.Apply(command.NewChangeAttachment(command.Glue))

	out, ok := f.Apply(command.NewWrite("second"))
	require.True(t, ok)
	assert.Equal(t, " second", out.Text)
}

func Test_Mode_Only_Commands_Emit_Nothing(t *testing.T) {
	t.Parallel()

	f := formatter.New(4, ' ')

	_, ok := f.Apply(command.NewChangeCapitalization(command.Uppercase))
	assert.False(t, ok)

	_, ok = f.Apply(command.NewChangeAttachment(command.Always))
	assert.False(t, ok)

	_, ok = f.Apply(command.NewResetFormatting())
	assert.False(t, ok)
}

func Test_Undo_Exactness_Backspace_Count_Matches_Emitted_Chars(t *testing.T) {
	t.Parallel()

	f := formatter.New(4, ' ')

	out, ok := f.Apply(command.NewWrite("hello"))
	require.True(t, ok)

	undo, ok := f.Undo()
	require.True(t, ok)
	assert.Equal(t, formatter.OutputBackspace, undo.Kind)
	assert.Equal(t, len([]rune(out.Text)), undo.Count)
}

func Test_Undo_Of_Mode_Only_Command_Emits_Nothing(t *testing.T) {
	t.Parallel()

	f := formatter.New(4, ' ')

	_, _ = f.Apply(command.NewChangeCapitalization(command.Uppercase))

	_, ok := f.Undo()
	assert.False(t, ok)
}

func Test_Undo_On_Empty_History_Returns_False(t *testing.T) {
	t.Parallel()

	f := formatter.New(4, ' ')

	_, ok := f.Undo()
	assert.False(t, ok)
}

func Test_Reset_Formatting_Restores_Initial_State(t *testing.T) {
	t.Parallel()

	f := formatter.New(4, ' ')

	_, _ = f.Apply(command.NewWrite("hello"))
	_, _ = f.Apply(command.NewChangeAttachment(command.Always))
	_, _ = f.Apply(command.NewChangeCapitalization(command.Uppercase))
	_, _ = f.Apply(command.NewResetFormatting())

	out, ok := f.Apply(command.NewWrite("world"))
	require.True(t, ok)
	assert.Equal(t, "World", out.Text, "reset should restore (Next, CapitalizeNext)")
}

func Test_Capitalization_Modes_Transform_Text_As_Specified(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		mode command.CapitalizationMode
		want string
	}{
		{command.Unchanged, "hElLo"},
		{command.Uppercase, "HELLO"},
		{command.Lowercase, "hello"},
		{command.Capitalize, "Hello"},
	}

	for _, tc := range testCases {
		f := formatter.New(4, ' ')
		_, _ = f.Apply(command.NewChangeCapitalization(tc.mode))

		out, ok := f.Apply(command.NewWrite("hElLo"))
		require.True(t, ok)
		assert.Equal(t, tc.want, out.Text)
	}
}
