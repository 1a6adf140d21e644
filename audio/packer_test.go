package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_PackStereoPCM_duplicatesChannels(t *testing.T) {
	var out = PackStereoPCM([]float64{0.5, -0.5}, nil)

	assert.Len(t, out, 8)
	assert.Equal(t, out[0:2], out[2:4], "left and right samples must be identical")
	assert.Equal(t, out[4:6], out[6:8], "left and right samples must be identical")
}

func Test_PackStereoPCM_saturatesOutOfRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var v = rapid.Float64Range(-10, 10).Draw(t, "v")

		var out = PackStereoPCM([]float64{v}, nil)

		var sample = int16(uint16(out[0]) | uint16(out[1])<<8) //nolint:gosec

		assert.LessOrEqual(t, sample, int16(32767))
		assert.GreaterOrEqual(t, sample, int16(-32767))
	})
}

func Test_PackStereoPCM_fullScaleRoundTrips(t *testing.T) {
	var out = PackStereoPCM([]float64{1.0}, nil)

	var sample = int16(uint16(out[0]) | uint16(out[1])<<8) //nolint:gosec
	assert.Equal(t, int16(32767), sample)
}
