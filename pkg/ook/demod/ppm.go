package demod

import (
	"github.com/norasector/pulsedec/pkg/ook/bitbuffer"
	"github.com/norasector/pulsedec/pkg/ook/pulse"
)

// PPMDemodulator decodes pulse-position modulation.  Only the gap
// duration carries information: a short gap is a 0, a long gap a 1, a
// longer gap separates repeated frames within one transmission, and a
// gap past ResetLimit ends the transmission.  Every gap falls into
// exactly one band, so there is no corruption path.
type PPMDemodulator struct {
	cfg Config
}

func NewPPM(cfg Config) *PPMDemodulator {
	return &PPMDemodulator{cfg: cfg}
}

func (d *PPMDemodulator) Name() string {
	return d.cfg.Name
}

func (d *PPMDemodulator) Demodulate(train *pulse.Train) int {
	events := 0
	bits := bitbuffer.New()

	for n := 0; n < train.Len(); n++ {
		gap := train.Gap(n)
		switch {
		case gap < d.cfg.ShortLimit:
			bits.AddBit(0)
		case gap < d.cfg.LongLimit:
			bits.AddBit(1)
		case gap < d.cfg.ResetLimit:
			// Frame separator inside a repeated transmission.
			bits.AddRow()
		default:
			events += d.cfg.finishFrame("ppm", bits, events)
		}
	}

	return events
}
