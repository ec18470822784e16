package input_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chordforge/steno/pkg/input"
)

const (
	triggerDelay = 200 * time.Millisecond
	repeatEvery  = 50 * time.Millisecond
	maxTapDelay  = 150 * time.Millisecond
)

func newTestRepeater() *input.Repeater {
	g := input.NewGrouper(input.LastUp, 1)

	return input.NewRepeater(g, triggerDelay, repeatEvery, maxTapDelay)
}

func Test_Repeater_Emits_Normally_On_A_Single_Tap(t *testing.T) {
	t.Parallel()

	r := newTestRepeater()
	base := time.Unix(0, 0)

	_, ok := r.Scan(base, []bool{true})
	assert.False(t, ok)

	chord, ok := r.Scan(base.Add(10*time.Millisecond), []bool{false})
	require.True(t, ok)
	assert.Equal(t, []bool{true}, chord)
}

func Test_Repeater_Tap_Tap_Without_Hold_Emits_Twice_Normally(t *testing.T) {
	t.Parallel()

	r := newTestRepeater()
	base := time.Unix(0, 0)

	_, _ = r.Scan(base, []bool{true})
	first, ok := r.Scan(base.Add(5*time.Millisecond), []bool{false})
	require.True(t, ok)
	assert.Equal(t, []bool{true}, first)

	// Second tap, well within maxTapDelay, but released again quickly
	// without ever reaching triggerDelay: must emit normally, not be
	// swallowed as a suppressed repeat-release.
	at := base.Add(20 * time.Millisecond)
	_, _ = r.Scan(at, []bool{true})

	second, ok := r.Scan(at.Add(5*time.Millisecond), []bool{false})
	require.True(t, ok)
	assert.Equal(t, []bool{true}, second)
}

func Test_Repeater_Begins_Firing_After_Trigger_Delay_When_Held(t *testing.T) {
	t.Parallel()

	r := newTestRepeater()
	base := time.Unix(0, 0)

	_, _ = r.Scan(base, []bool{true})
	_, _ = r.Scan(base.Add(5*time.Millisecond), []bool{false})

	// Second tap, held down past triggerDelay.
	tapAt := base.Add(20 * time.Millisecond)
	_, ok := r.Scan(tapAt, []bool{true})
	assert.False(t, ok)

	// Still held, but before triggerDelay elapses: nothing yet.
	_, ok = r.Scan(tapAt.Add(50*time.Millisecond), []bool{true})
	assert.False(t, ok)

	// Past triggerDelay: the repeat fires.
	repeated, ok := r.Scan(tapAt.Add(triggerDelay+time.Millisecond), []bool{true})
	require.True(t, ok)
	assert.Equal(t, []bool{true}, repeated)
}

func Test_Repeater_Repeats_Every_Interval_While_Held(t *testing.T) {
	t.Parallel()

	r := newTestRepeater()
	base := time.Unix(0, 0)

	_, _ = r.Scan(base, []bool{true})
	_, _ = r.Scan(base.Add(5*time.Millisecond), []bool{false})

	tapAt := base.Add(20 * time.Millisecond)
	_, _ = r.Scan(tapAt, []bool{true})

	firstFire := tapAt.Add(triggerDelay + time.Millisecond)
	_, ok := r.Scan(firstFire, []bool{true})
	require.True(t, ok)

	// Not yet another full interval: no repeat.
	_, ok = r.Scan(firstFire.Add(repeatEvery/2), []bool{true})
	assert.False(t, ok)

	// A full interval later: fires again.
	_, ok = r.Scan(firstFire.Add(repeatEvery+time.Millisecond), []bool{true})
	assert.True(t, ok)
}

func Test_Repeater_Suppresses_The_Release_That_Ends_An_Active_Repeat(t *testing.T) {
	t.Parallel()

	r := newTestRepeater()
	base := time.Unix(0, 0)

	_, _ = r.Scan(base, []bool{true})
	_, _ = r.Scan(base.Add(5*time.Millisecond), []bool{false})

	tapAt := base.Add(20 * time.Millisecond)
	_, _ = r.Scan(tapAt, []bool{true})

	fireAt := tapAt.Add(triggerDelay + time.Millisecond)
	_, ok := r.Scan(fireAt, []bool{true})
	require.True(t, ok, "first repeat must fire")

	// Releasing the key now must not also emit a trailing chord.
	_, ok = r.Scan(fireAt.Add(time.Millisecond), []bool{false})
	assert.False(t, ok)
}

func Test_Repeater_Cancels_On_A_Different_Chord(t *testing.T) {
	t.Parallel()

	g := input.NewGrouper(input.LastUp, 2)
	r := input.NewRepeater(g, triggerDelay, repeatEvery, maxTapDelay)
	base := time.Unix(0, 0)

	_, _ = r.Scan(base, []bool{true, false})
	_, _ = r.Scan(base.Add(5*time.Millisecond), []bool{false, false})

	tapAt := base.Add(20 * time.Millisecond)
	_, _ = r.Scan(tapAt, []bool{false, true}) // a different chord entirely
	_, _ = r.Scan(tapAt.Add(5*time.Millisecond), []bool{false, false})

	// No repeat candidate should have been armed; waiting past
	// triggerDelay with nothing held must not fire anything.
	_, ok := r.Scan(tapAt.Add(triggerDelay+time.Millisecond), []bool{false, false})
	assert.False(t, ok)
}

func Test_Repeater_Does_Not_Arm_When_Second_Tap_Is_Too_Late(t *testing.T) {
	t.Parallel()

	r := newTestRepeater()
	base := time.Unix(0, 0)

	_, _ = r.Scan(base, []bool{true})
	_, _ = r.Scan(base.Add(5*time.Millisecond), []bool{false})

	// Second tap arrives after maxTapDelay: not a repeat candidate.
	lateAt := base.Add(maxTapDelay + 10*time.Millisecond)
	_, _ = r.Scan(lateAt, []bool{true})

	_, ok := r.Scan(lateAt.Add(triggerDelay+time.Millisecond), []bool{true})
	assert.False(t, ok, "held key with no armed candidate must not repeat")
}
