// Package input implements the two stages between raw matrix-scan samples
// and a finished stroke (spec.md §4.5): a Grouper that turns a sequence of
// per-key down/up edges into whole-chord emissions, and a Repeater that
// layers tap-then-hold key repeat on top of it.
//
// Ported from
// original_source/code/shittyfirmware/src/logic/{grouping,repeating}.rs,
// generalized from a const-generic KEY_COUNT array to a runtime-sized
// slice, and from an async Stream/embassy-timer pipeline to a
// synchronous, caller-clocked API: the firmware's matrix scanner already
// calls in on a fixed tick, so the repeat timer is modeled as an explicit
// time.Time comparison on each call rather than a second concurrent task.
package input

// GroupingMode selects how a Grouper decides a chord is finished.
type GroupingMode int

const (
	// FirstUp emits as soon as any key that was part of the chord is
	// released, using the chord state from just before that release.
	// This lets the next chord start accumulating immediately,
	// minimizing latency for fast typists who roll from one chord into
	// the next.
	FirstUp GroupingMode = iota
	// LastUp waits for every key to be released before emitting the
	// full chord. Simpler and more forgiving of imprecise simultaneous
	// presses, at the cost of latency.
	LastUp
)

func (m GroupingMode) String() string {
	switch m {
	case FirstUp:
		return "FirstUp"
	case LastUp:
		return "LastUp"
	default:
		return "GroupingMode(unknown)"
	}
}

// Grouper turns a stream of raw per-scan key-down vectors into whole-chord
// emissions, per spec.md §4.5. Its state is sized by NewGrouper's
// keyCount; every call to Push must supply a vector of that length.
type Grouper struct {
	mode GroupingMode

	// flagged marks keys that must be ignored until they are next
	// pressed: in LastUp mode it instead doubles as the accumulator of
	// every key that has been down since the chord began.
	flagged []bool
	// previous is the chord state as of the last call to Push, used by
	// FirstUp to recover "the full chord just before this release".
	previous []bool
}

// NewGrouper returns a Grouper in the given mode. keyCount is the number
// of keys in every state vector Push will receive.
func NewGrouper(mode GroupingMode, keyCount int) *Grouper {
	return &Grouper{
		mode:     mode,
		flagged:  make([]bool, keyCount),
		previous: make([]bool, keyCount),
	}
}

// Push feeds one matrix-scan sample (true = key down) and returns a
// finished chord if this sample completed one.
func (g *Grouper) Push(state []bool) ([]bool, bool) {
	switch g.mode {
	case LastUp:
		return g.pushLastUp(state)
	default:
		return g.pushFirstUp(state)
	}
}

// pushLastUp accumulates every key seen down (via the bitwise OR of
// flagged and state) and emits once every key in the accumulator has gone
// back up.
func (g *Grouper) pushLastUp(state []bool) ([]bool, bool) {
	nothingPressed := true
	accumulatorFilled := false

	for i, down := range state {
		if down {
			nothingPressed = false
			g.flagged[i] = true
		}

		if g.flagged[i] {
			accumulatorFilled = true
		}
	}

	copy(g.previous, state)

	if !nothingPressed || !accumulatorFilled {
		return nil, false
	}

	emit := make([]bool, len(g.flagged))
	copy(emit, g.flagged)

	for i := range g.flagged {
		g.flagged[i] = false
	}

	return emit, true
}

// pushFirstUp emits as soon as any previously-down, non-flagged key
// transitions to up, using the chord state from just before that edge.
// Every key that was part of that chord is then flagged so its own
// up-edge doesn't trigger a second, redundant emission; a flagged key is
// cleared the next time it is pressed again.
func (g *Grouper) pushFirstUp(state []bool) ([]bool, bool) {
	var emitted []bool

	for i, down := range state {
		wasDown := g.previous[i]

		if down {
			if !wasDown {
				// Fresh press: no longer stale from a prior emission.
				g.flagged[i] = false
			}

			continue
		}

		if wasDown && !g.flagged[i] {
			if emitted == nil {
				emitted = make([]bool, len(g.previous))
				copy(emitted, g.previous)

				for j, d := range emitted {
					if d {
						g.flagged[j] = true
					}
				}
			}
		}
	}

	copy(g.previous, state)

	return emitted, emitted != nil
}
