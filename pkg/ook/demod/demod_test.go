package demod

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/norasector/pulsedec/pkg/ook/bitbuffer"
	"github.com/norasector/pulsedec/pkg/ook/pulse"
)

// frameRecorder captures a snapshot of the bit rows at every frame
// boundary and reports one event per non-empty row.
type frameRecorder struct {
	frames [][][]byte
}

func (r *frameRecorder) onFrame(bits *bitbuffer.BitBuffer) int {
	rows := make([][]byte, bits.NumRows())
	events := 0
	for n := range rows {
		rows[n] = append([]byte{}, bits.Row(n)...)
		if len(rows[n]) > 0 {
			events++
		}
	}
	r.frames = append(r.frames, rows)
	return events
}

func testConfig(short, long, reset int, rec *frameRecorder) Config {
	cfg := Config{
		Name:       "test",
		ShortLimit: short,
		LongLimit:  long,
		ResetLimit: reset,
		Logger:     zerolog.Nop(),
	}
	if rec != nil {
		cfg.OnFrame = rec.onFrame
	}
	return cfg
}

func TestDemodulateIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		short := rapid.IntRange(1, 500).Draw(t, "short")
		long := rapid.IntRange(short, 1000).Draw(t, "long")
		reset := rapid.IntRange(long, 5000).Draw(t, "reset")

		numPulses := rapid.IntRange(0, 64).Draw(t, "numPulses")
		pulses := make([]int, numPulses)
		gaps := make([]int, numPulses)
		for i := range pulses {
			pulses[i] = rapid.IntRange(0, 6000).Draw(t, "pulse")
			gaps[i] = rapid.IntRange(0, 6000).Draw(t, "gap")
		}
		train := pulse.NewTrain(pulses, gaps)

		builders := map[string]func(rec *frameRecorder) Demodulator{
			"pcm": func(rec *frameRecorder) Demodulator {
				return NewPCM(testConfig(short, long, reset, rec))
			},
			"ppm": func(rec *frameRecorder) Demodulator {
				return NewPPM(testConfig(short, long, reset, rec))
			},
			"pwm": func(rec *frameRecorder) Demodulator {
				return NewPWM(testConfig(short, long, reset, rec), true)
			},
			"pwm_precise": func(rec *frameRecorder) Demodulator {
				return NewPWMPrecise(testConfig(short, long, reset, rec),
					PreciseTiming{PulseTolerance: short/2 + 1, PulseSyncWidth: reset})
			},
			"pwm_ternary": func(rec *frameRecorder) Demodulator {
				return NewPWMTernary(testConfig(short, long, reset, rec), SyncBandMiddle)
			},
			"manchester_zerobit": func(rec *frameRecorder) Demodulator {
				return NewManchesterZeroBit(testConfig(short, long, reset, rec))
			},
		}

		for name, build := range builders {
			rec1 := &frameRecorder{}
			rec2 := &frameRecorder{}
			events1 := build(rec1).Demodulate(train)
			events2 := build(rec2).Demodulate(train)
			if events1 != events2 {
				t.Fatalf("%s: event counts differ: %d vs %d", name, events1, events2)
			}
			assert.Equal(t, rec1.frames, rec2.frames, name)
		}
	})
}
