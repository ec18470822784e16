package input_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chordforge/steno/pkg/input"
)

func Test_LastUp_Grouper_Waits_For_Every_Key_To_Release(t *testing.T) {
	t.Parallel()

	g := input.NewGrouper(input.LastUp, 3)

	// Press key 0, then key 1 (both held), nothing emitted yet.
	_, ok := g.Push([]bool{true, false, false})
	assert.False(t, ok)

	_, ok = g.Push([]bool{true, true, false})
	assert.False(t, ok)

	// Release key 0 only: key 1 still down, no emission.
	_, ok = g.Push([]bool{false, true, false})
	assert.False(t, ok)

	// Release everything: emits the union of every key seen down.
	chord, ok := g.Push([]bool{false, false, false})
	require.True(t, ok)
	assert.Equal(t, []bool{true, true, false}, chord)
}

func Test_LastUp_Grouper_Resets_After_Emitting(t *testing.T) {
	t.Parallel()

	g := input.NewGrouper(input.LastUp, 2)

	_, _ = g.Push([]bool{true, false})
	_, ok := g.Push([]bool{false, false})
	require.True(t, ok)

	// A second chord starts clean.
	_, ok = g.Push([]bool{false, true})
	assert.False(t, ok)

	chord, ok := g.Push([]bool{false, false})
	require.True(t, ok)
	assert.Equal(t, []bool{false, true}, chord)
}

func Test_FirstUp_Grouper_Emits_On_First_Release(t *testing.T) {
	t.Parallel()

	g := input.NewGrouper(input.FirstUp, 3)

	_, ok := g.Push([]bool{true, false, false})
	assert.False(t, ok)

	_, ok = g.Push([]bool{true, true, false})
	assert.False(t, ok)

	// Releasing key 0 first emits the chord as it stood just before this
	// release (both key 0 and key 1 down), even though key 1 is still held.
	chord, ok := g.Push([]bool{false, true, false})
	require.True(t, ok)
	assert.Equal(t, []bool{true, true, false}, chord)
}

func Test_FirstUp_Grouper_Does_Not_Re_Emit_On_Remaining_Releases(t *testing.T) {
	t.Parallel()

	g := input.NewGrouper(input.FirstUp, 2)

	_, _ = g.Push([]bool{true, true})
	_, ok := g.Push([]bool{false, true})
	require.True(t, ok)

	// Key 1 finally releasing must not re-trigger (it was flagged by the
	// emission above, since it was part of that chord).
	_, ok = g.Push([]bool{false, false})
	assert.False(t, ok)
}

func Test_FirstUp_Grouper_Unflags_A_Key_On_Re_Press(t *testing.T) {
	t.Parallel()

	g := input.NewGrouper(input.FirstUp, 2)

	_, _ = g.Push([]bool{true, true})
	_, ok := g.Push([]bool{false, true}) // emits [true,true], flags key 1
	require.True(t, ok)

	// Key 1's own release is already accounted for by the emission above,
	// so it must not re-trigger.
	_, ok = g.Push([]bool{false, false})
	assert.False(t, ok)

	// Key 1 pressed again clears its stale flag.
	_, ok = g.Push([]bool{false, true})
	assert.False(t, ok)

	// Its next release now emits on its own.
	chord, ok := g.Push([]bool{false, false})
	require.True(t, ok)
	assert.Equal(t, []bool{false, true}, chord)
}

func Test_GroupingMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "FirstUp", input.FirstUp.String())
	assert.Equal(t, "LastUp", input.LastUp.String())
}
