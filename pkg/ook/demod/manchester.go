package demod

import (
	"github.com/norasector/pulsedec/pkg/ook/bitbuffer"
	"github.com/norasector/pulsedec/pkg/ook/pulse"
)

// ManchesterZeroBitDemodulator decodes Manchester coding
// differentially: an edge arriving more than 1.5 short periods after
// the last recorded data edge is itself a data edge, falling for 1 and
// rising for 0.  Every transmission implicitly starts with a 0 bit;
// the source devices frame their first rising edge that way.
type ManchesterZeroBitDemodulator struct {
	cfg Config
}

func NewManchesterZeroBit(cfg Config) *ManchesterZeroBitDemodulator {
	return &ManchesterZeroBitDemodulator{cfg: cfg}
}

func (d *ManchesterZeroBitDemodulator) Name() string {
	return d.cfg.Name
}

func (d *ManchesterZeroBitDemodulator) Demodulate(train *pulse.Train) int {
	events := 0
	bits := bitbuffer.New()
	threshold := d.cfg.ShortLimit + (d.cfg.ShortLimit >> 1)
	timeSinceLast := 0

	// Hardcoded leading zero for the first rising edge.
	bits.AddBit(0)

	for n := 0; n < train.Len(); n++ {
		// The falling edge sits at the end of the pulse.  If the last
		// recorded bit is more than 1.5 short periods back, this is a
		// data edge and reads as 1.
		if train.Pulse(n)+timeSinceLast > threshold {
			bits.AddBit(1)
			timeSinceLast = 0
		} else {
			timeSinceLast += train.Pulse(n)
		}

		if train.Gap(n) > d.cfg.ResetLimit {
			events += d.cfg.finishFrame("manchester_zerobit", bits, events)
			bits.AddBit(0) // next transmission starts with the same hardcoded 0
			timeSinceLast = 0
		} else if train.Gap(n)+timeSinceLast > threshold {
			// Rising edge at the end of the gap is a data edge, bit 0.
			bits.AddBit(0)
			timeSinceLast = 0
		} else {
			timeSinceLast += train.Gap(n)
		}
	}

	return events
}
