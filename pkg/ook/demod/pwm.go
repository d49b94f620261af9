package demod

import (
	"github.com/norasector/pulsedec/pkg/ook/bitbuffer"
	"github.com/norasector/pulsedec/pkg/ook/pulse"
)

// PWMDemodulator decodes basic pulse-width modulation: a pulse at or
// under ShortLimit is a 1, anything longer a 0.  With startBit set the
// first pulse of every frame is a framing bit and is swallowed rather
// than emitted.
type PWMDemodulator struct {
	cfg      Config
	startBit bool
}

func NewPWM(cfg Config, startBit bool) *PWMDemodulator {
	return &PWMDemodulator{cfg: cfg, startBit: startBit}
}

func (d *PWMDemodulator) Name() string {
	return d.cfg.Name
}

func (d *PWMDemodulator) Demodulate(train *pulse.Train) int {
	events := 0
	bits := bitbuffer.New()
	startBitConsumed := false

	for n := 0; n < train.Len(); n++ {
		if d.startBit && !startBitConsumed {
			startBitConsumed = true
		} else if train.Pulse(n) <= d.cfg.ShortLimit {
			bits.AddBit(1)
		} else {
			bits.AddBit(0)
		}

		if train.Gap(n) > d.cfg.ResetLimit {
			events += d.cfg.finishFrame("pwm", bits, events)
			startBitConsumed = false
		} else if train.Gap(n) > d.cfg.LongLimit {
			// Frame separator inside a repeated transmission; the next
			// frame carries its own start bit.
			bits.AddRow()
			startBitConsumed = false
		}
	}

	return events
}
