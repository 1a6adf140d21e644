package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Resampler_outputCountMatchesRatio(t *testing.T) {
	var r, err = NewResampler(228000, 192000, 48)
	assert.NoError(t, err)

	var total = 0

	for i := 0; i < 228000; i++ {
		total += len(r.Push(0))
	}

	// One second of 228 kHz input should yield close to one second of
	// 192 kHz output; allow slack for the startup transient where
	// Push withholds output until history fills.
	assert.InDelta(t, 192000, total, 200)
}

func Test_Resampler_passesDCThrough(t *testing.T) {
	var r, err = NewResampler(228000, 192000, 48)
	assert.NoError(t, err)

	var last float64

	for i := 0; i < 20000; i++ {
		var out = r.Push(1.0)
		if len(out) > 0 {
			last = out[len(out)-1]
		}
	}

	assert.InDelta(t, 1.0, last, 0.05, "a unity-gain lowpass must pass a constant input through at steady state")
}

func Test_Resampler_rejectsNonPositiveOutputRate(t *testing.T) {
	var _, err = NewResampler(228000, 0, 48)
	assert.ErrorIs(t, err, ErrInvalidOutputRate)

	_, err = NewResampler(228000, -192000, 48)
	assert.ErrorIs(t, err, ErrInvalidOutputRate)
}
