package pulse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrain(t *testing.T) {
	tr := NewTrain([]int{100, 200}, []int{50, 1000})
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, 100, tr.Pulse(0))
	assert.Equal(t, 50, tr.Gap(0))
	assert.Equal(t, 200, tr.Pulse(1))
	assert.Equal(t, 1000, tr.Gap(1))
}

func TestNewTrainCopiesInput(t *testing.T) {
	pulses := []int{100}
	gaps := []int{50}
	tr := NewTrain(pulses, gaps)
	pulses[0] = 999
	assert.Equal(t, 100, tr.Pulse(0))
}

func TestNewTrainLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		NewTrain([]int{1, 2}, []int{1})
	})
}

func TestReadWriteRoundtrip(t *testing.T) {
	t1 := NewTrain([]int{100, 200, 100}, []int{50, 50, 2000})
	t2 := NewTrain([]int{300}, []int{4000})

	var buf bytes.Buffer
	_, err := t1.WriteTo(&buf)
	require.NoError(t, err)
	_, err = t2.WriteTo(&buf)
	require.NoError(t, err)

	trains, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, trains, 2)

	assert.Equal(t, 3, trains[0].Len())
	assert.Equal(t, 200, trains[0].Pulse(1))
	assert.Equal(t, 2000, trains[0].Gap(2))
	assert.Equal(t, 1, trains[1].Len())
	assert.Equal(t, 300, trains[1].Pulse(0))
}

func TestReadAllCommentsAndBlankLines(t *testing.T) {
	input := `
; capture 2022-01-08 433.92MHz
;train
100 50

200 1000
`
	trains, err := ReadAll(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Equal(t, 2, trains[0].Len())
}

func TestReadAllImplicitFirstTrain(t *testing.T) {
	trains, err := ReadAll(strings.NewReader("100 50\n"))
	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Equal(t, 1, trains[0].Len())
}

func TestReadAllErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too many fields", "100 50 20\n"},
		{"bad pulse", "x 50\n"},
		{"bad gap", "100 x\n"},
		{"negative duration", "-100 50\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAll(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
