// Package demod contains the pulse-train demodulators.  Each decoder
// walks a pulse.Train once, classifies pulse and gap durations against
// the configured timing limits, accumulates bits into a
// bitbuffer.BitBuffer, and hands completed frames to the configured
// callback.
package demod

import (
	"github.com/norasector/pulsedec/pkg/ook/bitbuffer"
	"github.com/norasector/pulsedec/pkg/ook/pulse"
	"github.com/rs/zerolog"
)

// FrameFunc consumes the bit rows accumulated for one frame and
// returns the number of valid messages it decoded from them.
type FrameFunc func(bits *bitbuffer.BitBuffer) int

// Config holds the timing limits shared by every decoder.  All limits
// are in sample-time units.
type Config struct {
	// Name labels diagnostic output, typically the protocol name.
	Name string

	// ShortLimit and LongLimit separate symbol classes.  For the
	// run-length coded PCM scheme they are the nominal pulse width and
	// bit period respectively; ShortLimit == LongLimit selects NRZ
	// coding there.
	ShortLimit int
	LongLimit  int

	// ResetLimit is the gap duration beyond which the transmission is
	// considered over.
	ResetLimit int

	// OnFrame is invoked at every frame boundary.  nil is valid and
	// puts the decoder in diagnostic-only mode.
	OnFrame FrameFunc

	Logger  zerolog.Logger
	Verbose bool
}

// Demodulator is one member of the closed decoder family.  Demodulate
// processes a whole train synchronously and returns the total event
// count reported by the frame callback.  It never mutates the train.
type Demodulator interface {
	Name() string
	Demodulate(train *pulse.Train) int
}

// finishFrame runs the frame callback, emits the diagnostic dump when
// there is no callback or verbose output is requested, and clears the
// buffer for the next frame.  total is the running event count before
// this frame; the return value is the events decoded from this one.
func (c *Config) finishFrame(kind string, bits *bitbuffer.BitBuffer, total int) int {
	events := 0
	if c.OnFrame != nil {
		events = c.OnFrame(bits)
	}
	if c.OnFrame == nil || (c.Verbose && total+events > 0) {
		c.Logger.Debug().
			Str("decoder", kind).
			Str("protocol", c.Name).
			Msg(bits.String())
	}
	bits.Clear()
	return events
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
