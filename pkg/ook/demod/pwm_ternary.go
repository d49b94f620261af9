package demod

import (
	"github.com/norasector/pulsedec/pkg/ook/bitbuffer"
	"github.com/norasector/pulsedec/pkg/ook/pulse"
)

// SyncBand selects which of the three ternary pulse bands marks a
// frame separator.
type SyncBand int

const (
	SyncBandShort SyncBand = iota
	SyncBandMiddle
	SyncBandLong
	// SyncBandNone disables the separator; all three bands emit bits.
	SyncBandNone
)

// PWMTernaryDemodulator decodes pulse-width modulation with three
// pulse bands: short (< ShortLimit), middle (< LongLimit) and long.
// One band, chosen by sync, separates rows; of the remaining bands the
// shortest emits 0 and the others 1.
type PWMTernaryDemodulator struct {
	cfg  Config
	sync SyncBand
}

func NewPWMTernary(cfg Config, sync SyncBand) *PWMTernaryDemodulator {
	return &PWMTernaryDemodulator{cfg: cfg, sync: sync}
}

func (d *PWMTernaryDemodulator) Name() string {
	return d.cfg.Name
}

func (d *PWMTernaryDemodulator) Demodulate(train *pulse.Train) int {
	events := 0
	bits := bitbuffer.New()

	for n := 0; n < train.Len(); n++ {
		p := train.Pulse(n)
		switch {
		case p < d.cfg.ShortLimit:
			if d.sync == SyncBandShort {
				bits.AddRow()
			} else {
				bits.AddBit(0)
			}
		case p < d.cfg.LongLimit:
			switch d.sync {
			case SyncBandShort:
				bits.AddBit(0)
			case SyncBandMiddle:
				bits.AddRow()
			case SyncBandLong, SyncBandNone:
				bits.AddBit(1)
			}
		default:
			if d.sync == SyncBandLong {
				bits.AddRow()
			} else {
				bits.AddBit(1)
			}
		}

		if train.Gap(n) > d.cfg.ResetLimit {
			events += d.cfg.finishFrame("pwm_ternary", bits, events)
		}
	}

	return events
}
