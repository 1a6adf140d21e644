package rds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_Oscillator_pilotFrequencyByZeroCrossings checks the synthesized
// pilot's period against the expected 19 kHz by zero-crossing counting
// over 100 ms worth of samples at the internal rate — a coarse but
// dependency-free way to validate the phase accumulator's step size
// without needing an FFT.
func Test_Oscillator_pilotFrequencyByZeroCrossings(t *testing.T) {
	var osc = NewOscillator(InternalSampleRate)

	var n = int(InternalSampleRate) / 10 // 100ms window
	var crossings = 0
	var prev = osc.Next().Pilot

	for i := 0; i < n; i++ {
		var v = osc.Next().Pilot
		if prev < 0 && v >= 0 {
			crossings++
		}

		prev = v
	}

	var estimatedHz = float64(crossings) / 0.1

	assert.InDelta(t, 19000.0, estimatedHz, 50.0)
}

func Test_Oscillator_carriersStayWithinUnitAmplitude(t *testing.T) {
	var osc = NewOscillator(InternalSampleRate)

	for i := 0; i < 1000; i++ {
		var c = osc.Next()

		// The pilot and every subcarrier must always be finite, unit-ish
		// amplitude values; a phase-accumulator bug that overflows
		// silently would otherwise only show up as subtle drift over a
		// very long run.
		assert.LessOrEqual(t, math.Abs(c.Pilot), 1.0001)
		assert.LessOrEqual(t, math.Abs(c.RDS), 1.0001)
		assert.LessOrEqual(t, math.Abs(c.RDS2Lo), 1.0001)
		assert.LessOrEqual(t, math.Abs(c.RDS2Mid), 1.0001)
		assert.LessOrEqual(t, math.Abs(c.RDS2Hi), 1.0001)
	}
}
