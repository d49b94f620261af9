// Package analyzer summarizes the timing content of a pulse train and
// guesses a plausible modulation and timing limits for it.  It is a
// tuning aid for writing protocol definitions, not part of the
// decoding path.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/norasector/pulsedec/pkg/ook/pulse"
)

// binTolerancePct merges widths within this percentage of a bin's
// center into the same bin.
const binTolerancePct = 25

// Bin is one cluster of similar durations.
type Bin struct {
	Width int // mean duration of the cluster
	Count int
}

// Guess is a suggested decoder configuration.
type Guess struct {
	Modulation string
	ShortLimit int
	LongLimit  int
	ResetLimit int
}

// Report holds the timing statistics for one train.
type Report struct {
	NumPulses   int
	PulseMean   float64
	PulseStdDev float64
	GapMean     float64
	GapStdDev   float64
	PulseBins   []Bin
	GapBins     []Bin
	Guess       *Guess // nil when no modulation could be inferred
}

// Analyze computes timing statistics and a modulation guess for one
// train.  The final gap is excluded from gap statistics since it is
// the end-of-train marker, not signal.
func Analyze(train *pulse.Train) *Report {
	r := &Report{NumPulses: train.Len()}
	if train.Len() == 0 {
		return r
	}

	pulses := make([]float64, train.Len())
	for n := 0; n < train.Len(); n++ {
		pulses[n] = float64(train.Pulse(n))
	}
	gaps := make([]float64, 0, train.Len())
	for n := 0; n < train.Len()-1; n++ {
		gaps = append(gaps, float64(train.Gap(n)))
	}

	r.PulseMean, r.PulseStdDev = stat.MeanStdDev(pulses, nil)
	if len(gaps) > 0 {
		r.GapMean, r.GapStdDev = stat.MeanStdDev(gaps, nil)
	}
	r.PulseBins = cluster(pulses)
	r.GapBins = cluster(gaps)
	r.Guess = guess(r.PulseBins, r.GapBins, maxGap(train))

	return r
}

func maxGap(train *pulse.Train) int {
	max := 0
	for n := 0; n < train.Len(); n++ {
		if train.Gap(n) > max {
			max = train.Gap(n)
		}
	}
	return max
}

// cluster groups sorted durations into bins, merging values within
// binTolerancePct of the running bin mean.
func cluster(values []float64) []Bin {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var bins []Bin
	sum := sorted[0]
	count := 1
	for _, v := range sorted[1:] {
		mean := sum / float64(count)
		if v-mean <= mean*binTolerancePct/100 {
			sum += v
			count++
			continue
		}
		bins = append(bins, Bin{Width: int(sum / float64(count)), Count: count})
		sum = v
		count = 1
	}
	bins = append(bins, Bin{Width: int(sum / float64(count)), Count: count})
	return bins
}

// guess infers a modulation from the bin shapes: a single pulse width
// with several gap widths reads as PPM, two pulse widths as PWM.
// Anything else is left undecided.
func guess(pulseBins, gapBins []Bin, maxGap int) *Guess {
	switch {
	case len(pulseBins) == 1 && len(gapBins) >= 2:
		g := &Guess{
			Modulation: "ppm",
			ShortLimit: midpoint(gapBins[0].Width, gapBins[1].Width),
			ResetLimit: maxGap + maxGap/4,
		}
		if len(gapBins) >= 3 {
			g.LongLimit = midpoint(gapBins[1].Width, gapBins[2].Width)
		} else {
			g.LongLimit = gapBins[1].Width + gapBins[1].Width/2
		}
		return g
	case len(pulseBins) == 2:
		return &Guess{
			Modulation: "pwm",
			ShortLimit: midpoint(pulseBins[0].Width, pulseBins[1].Width),
			LongLimit:  pulseBins[1].Width + pulseBins[1].Width/2,
			ResetLimit: maxGap + maxGap/4,
		}
	}
	return nil
}

func midpoint(a, b int) int {
	return (a + b) / 2
}

// String renders the report for the cmd's analyze mode.
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pulses: %d\n", r.NumPulses)
	fmt.Fprintf(&sb, "pulse width: mean %.1f stddev %.1f\n", r.PulseMean, r.PulseStdDev)
	fmt.Fprintf(&sb, "gap width:   mean %.1f stddev %.1f\n", r.GapMean, r.GapStdDev)
	for _, b := range r.PulseBins {
		fmt.Fprintf(&sb, "pulse bin: width %d count %d\n", b.Width, b.Count)
	}
	for _, b := range r.GapBins {
		fmt.Fprintf(&sb, "gap bin:   width %d count %d\n", b.Width, b.Count)
	}
	if r.Guess != nil {
		fmt.Fprintf(&sb, "guess: %s short %d long %d reset %d\n",
			r.Guess.Modulation, r.Guess.ShortLimit, r.Guess.LongLimit, r.Guess.ResetLimit)
	}
	return sb.String()
}
