package demod

import (
	"github.com/norasector/pulsedec/pkg/ook/bitbuffer"
	"github.com/norasector/pulsedec/pkg/ook/pulse"
)

// PreciseTiming carries the extra parameters of the precise PWM
// scheme.  PulseSyncWidth of zero means no sync pulse is defined.
type PreciseTiming struct {
	// PulseTolerance is the maximum deviation from a nominal width for
	// a pulse to still classify as that symbol.
	PulseTolerance int

	// PulseSyncWidth is the nominal width of the row-separator sync
	// pulse.
	PulseSyncWidth int
}

// PWMPreciseDemodulator decodes pulse-width modulation with tolerance
// windows around each nominal width.  Unlike the other decoders, a
// pulse matching no window aborts the whole call: the scheme promises
// tight timing, so an unclassifiable pulse means the train is not this
// protocol at all.
type PWMPreciseDemodulator struct {
	cfg    Config
	timing PreciseTiming
}

func NewPWMPrecise(cfg Config, timing PreciseTiming) *PWMPreciseDemodulator {
	return &PWMPreciseDemodulator{cfg: cfg, timing: timing}
}

func (d *PWMPreciseDemodulator) Name() string {
	return d.cfg.Name
}

func (d *PWMPreciseDemodulator) Demodulate(train *pulse.Train) int {
	events := 0
	bits := bitbuffer.New()

	for n := 0; n < train.Len(); n++ {
		p := train.Pulse(n)
		switch {
		case intAbs(p-d.cfg.ShortLimit) < d.timing.PulseTolerance:
			bits.AddBit(1)
		case intAbs(p-d.cfg.LongLimit) < d.timing.PulseTolerance:
			bits.AddBit(0)
		case d.timing.PulseSyncWidth != 0 &&
			intAbs(p-d.timing.PulseSyncWidth) < d.timing.PulseTolerance:
			bits.AddRow()
		default:
			// Pulse outside all timing windows.
			return 0
		}

		if train.Gap(n) > d.cfg.ResetLimit {
			events += d.cfg.finishFrame("pwm_precise", bits, events)
		}
	}

	return events
}
