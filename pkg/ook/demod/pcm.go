package demod

import (
	"github.com/norasector/pulsedec/pkg/ook/bitbuffer"
	"github.com/norasector/pulsedec/pkg/ook/pulse"
)

// PCMDemodulator decodes run-length coded pulse-code modulation.  The
// pulse width encodes a run of 1 bits and the remainder of the bit
// periods spanned by the pulse/gap pair a run of 0 bits.  With
// ShortLimit == LongLimit the coding is NRZ and the per-pulse width
// check is disabled.
type PCMDemodulator struct {
	cfg Config
}

func NewPCM(cfg Config) *PCMDemodulator {
	return &PCMDemodulator{cfg: cfg}
}

func (d *PCMDemodulator) Name() string {
	return d.cfg.Name
}

func (d *PCMDemodulator) Demodulate(train *pulse.Train) int {
	events := 0
	bits := bitbuffer.New()
	maxZeros := d.cfg.ResetLimit / d.cfg.LongLimit
	tolerance := d.cfg.LongLimit / 4 // ±25% of a bit period

	for n := 0; n < train.Len(); n++ {
		// High bit periods in this pulse, rounded; more than one for
		// NRZ where consecutive 1s are not separated.
		highs := (train.Pulse(n) + d.cfg.ShortLimit/2) / d.cfg.ShortLimit
		// Bit periods spanned by the whole pulse/gap pair, rounded.
		periods := (train.Pulse(n) + train.Gap(n) + d.cfg.LongLimit/2) / d.cfg.LongLimit

		for i := 0; i < highs; i++ {
			bits.AddBit(1)
		}
		zeros := periods - highs
		if zeros > maxZeros { // don't run away in the silence after a message
			zeros = maxZeros
		}
		for i := 0; i < zeros; i++ {
			bits.AddBit(0)
		}

		// RZ only: a pulse off its nominal width corrupts the frame in
		// progress.  The frame is dropped, decoding continues.
		if d.cfg.ShortLimit != d.cfg.LongLimit &&
			intAbs(train.Pulse(n)-d.cfg.ShortLimit) > tolerance {
			if d.cfg.Verbose {
				d.cfg.Logger.Debug().
					Str("decoder", "pcm").
					Str("protocol", d.cfg.Name).
					Int("pulse_index", n).
					Int("pulse", train.Pulse(n)).
					Int("gap", train.Gap(n)).
					Msg("pulse outside tolerance, dropping frame")
			}
			bits.Clear()
		}

		// End of message at the last pulse (FSK) or after a long
		// silence (OOK), but only once data has been accumulated.
		if (n == train.Len()-1 || train.Gap(n) > d.cfg.ResetLimit) &&
			bits.RowLen(0) > 0 {
			events += d.cfg.finishFrame("pcm", bits, events)
		}
	}

	return events
}
