package demod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norasector/pulsedec/pkg/ook/pulse"
)

func TestPWMPreciseDecodesWithinTolerance(t *testing.T) {
	rec := &frameRecorder{}
	d := NewPWMPrecise(testConfig(100, 200, 1000, rec),
		PreciseTiming{PulseTolerance: 20, PulseSyncWidth: 300})

	train := pulse.NewTrain(
		[]int{110, 190, 300, 95},
		[]int{50, 50, 50, 1100},
	)

	events := d.Demodulate(train)

	assert.Equal(t, 2, events)
	require.Len(t, rec.frames, 1)
	require.Len(t, rec.frames[0], 2)
	assert.Equal(t, []byte{1, 0}, rec.frames[0][0])
	assert.Equal(t, []byte{1}, rec.frames[0][1])
}

func TestPWMPreciseAbortsWholeCall(t *testing.T) {
	// A pulse between all tolerance bands kills the entire call: zero
	// events, no callback, even for bits accumulated beforehand.
	rec := &frameRecorder{}
	d := NewPWMPrecise(testConfig(100, 200, 1000, rec),
		PreciseTiming{PulseTolerance: 20, PulseSyncWidth: 300})

	train := pulse.NewTrain(
		[]int{100, 200, 150, 100},
		[]int{50, 50, 50, 1100},
	)

	events := d.Demodulate(train)

	assert.Equal(t, 0, events)
	assert.Empty(t, rec.frames)
}

func TestPWMPreciseAbortAfterCompletedFrame(t *testing.T) {
	// Frames already delivered before the violation stay delivered;
	// only the return value is zeroed, since the abort path returns 0
	// outright.
	rec := &frameRecorder{}
	d := NewPWMPrecise(testConfig(100, 200, 1000, rec),
		PreciseTiming{PulseTolerance: 20, PulseSyncWidth: 300})

	train := pulse.NewTrain(
		[]int{100, 150},
		[]int{1100, 1100},
	)

	events := d.Demodulate(train)

	assert.Equal(t, 0, events)
	assert.Len(t, rec.frames, 1)
}

func TestPWMPreciseNoSyncWidth(t *testing.T) {
	// PulseSyncWidth zero disables the sync band entirely; a pulse
	// near zero must abort rather than start a row.
	rec := &frameRecorder{}
	d := NewPWMPrecise(testConfig(100, 200, 1000, rec),
		PreciseTiming{PulseTolerance: 20})

	train := pulse.NewTrain([]int{10}, []int{1100})

	events := d.Demodulate(train)

	assert.Equal(t, 0, events)
	assert.Empty(t, rec.frames)
}
