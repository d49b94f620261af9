package pulse

// Train is an ordered sequence of high/low timing pairs produced by an
// upstream envelope detector.  Pulse n is the duration the carrier was
// keyed on, Gap n the silence that followed it, both in sample-time
// units.  A Train is read-only for the duration of a demodulation pass;
// multiple demodulators may walk the same Train concurrently.
type Train struct {
	pulses []int
	gaps   []int
}

// NewTrain builds a Train from alternating pulse/gap durations.
// The two slices must be the same length.
func NewTrain(pulses, gaps []int) *Train {
	if len(pulses) != len(gaps) {
		panic("pulse: pulse/gap length mismatch")
	}
	t := &Train{
		pulses: make([]int, len(pulses)),
		gaps:   make([]int, len(gaps)),
	}
	copy(t.pulses, pulses)
	copy(t.gaps, gaps)
	return t
}

// Append adds one pulse/gap pair to the end of the train.
func (t *Train) Append(pulse, gap int) {
	t.pulses = append(t.pulses, pulse)
	t.gaps = append(t.gaps, gap)
}

// Len returns the number of pulse/gap pairs.
func (t *Train) Len() int {
	return len(t.pulses)
}

// Pulse returns the high duration of pair n.
func (t *Train) Pulse(n int) int {
	return t.pulses[n]
}

// Gap returns the low duration following pulse n.  The final gap is
// conventionally oversized and doubles as the end-of-train marker.
func (t *Train) Gap(n int) int {
	return t.gaps[n]
}
