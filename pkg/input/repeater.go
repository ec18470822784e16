package input

import "time"

// Repeater wraps a Grouper with tap-then-hold key repeat (spec.md §4.5):
// once a chord has been emitted, if the identical raw key-state reappears
// within maxTapDelay and is then held, the Repeater begins re-emitting
// that chord every interval after an initial triggerDelay, until the keys
// change. The chord's eventual release is suppressed once a repeat has
// actually fired, so the held key doesn't also emit one trailing,
// spurious copy of itself.
type Repeater struct {
	grouper      *Grouper
	triggerDelay time.Duration
	interval     time.Duration
	maxTapDelay  time.Duration

	lastEmit   []bool
	lastEmitAt time.Time
	hasLast    bool

	repeatState  []bool
	repeatedOnce bool
	nextRepeatAt time.Time
}

// NewRepeater returns a Repeater driving the given Grouper. triggerDelay
// is how long a held repeat candidate waits before its first repeat;
// interval is the spacing between subsequent repeats; maxTapDelay is how
// soon the second tap of a tap-tap-hold must follow the first chord's
// emission to count as a repeat candidate at all.
func NewRepeater(grouper *Grouper, triggerDelay, interval, maxTapDelay time.Duration) *Repeater {
	return &Repeater{
		grouper:      grouper,
		triggerDelay: triggerDelay,
		interval:     interval,
		maxTapDelay:  maxTapDelay,
	}
}

// Scan feeds one timestamped matrix-scan sample through the repeat
// tracker and the underlying Grouper, returning a chord to emit if this
// call produced one.
func (r *Repeater) Scan(now time.Time, state []bool) ([]bool, bool) {
	// The chord that had already repeated before this sample, if any; its
	// release is suppressed below.
	var firing []bool
	if r.repeatedOnce {
		firing = r.repeatState
	}

	held := r.repeatState != nil && equalBits(state, r.repeatState)
	tapped := r.hasLast && equalBits(state, r.lastEmit) && now.Sub(r.lastEmitAt) < r.maxTapDelay

	if held || tapped {
		if r.repeatState == nil {
			r.repeatState = cloneBits(state)
			r.repeatedOnce = false
			r.nextRepeatAt = now.Add(r.triggerDelay)
		}
	} else {
		r.repeatState = nil
		r.repeatedOnce = false
	}

	if r.repeatState != nil && equalBits(state, r.repeatState) && !now.Before(r.nextRepeatAt) {
		r.repeatedOnce = true
		r.nextRepeatAt = now.Add(r.interval)

		return cloneBits(r.repeatState), true
	}

	emit, ok := r.grouper.Push(state)
	if !ok {
		return nil, false
	}

	r.lastEmit = cloneBits(emit)
	r.lastEmitAt = now
	r.hasLast = true

	// The release that ends an already-firing repeat must not also emit
	// the chord it just finished repeating.
	if firing != nil && equalBits(emit, firing) {
		r.repeatState = nil
		r.repeatedOnce = false

		return nil, false
	}

	return emit, true
}

func equalBits(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func cloneBits(v []bool) []bool {
	out := make([]bool, len(v))
	copy(out, v)

	return out
}
