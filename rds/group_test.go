package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_buildGroup0A_piAlwaysBlockA(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var pi = rapid.Uint16().Draw(t, "pi")
		var p = Params{PI: pi, PS: "MINIRDS "} //nolint:exhaustruct

		var g = buildGroup0A(p, 0, 0)

		assert.Equal(t, pi, g[0])
	})
}

func Test_buildGroup0A_psSegmentsCoverAllFourSlices(t *testing.T) {
	var p = Params{PI: 0x1000, PS: "ABCDEFGH"} //nolint:exhaustruct

	var seen = ""

	for seg := 0; seg < 4; seg++ {
		var g = buildGroup0A(p, seg, 0)
		seen += string(byte(g[3] >> 8))
		seen += string(byte(g[3]))
	}

	assert.Equal(t, "ABCDEFGH", seen)
}

func Test_buildGroup0A_afCountByteReflectsListLength(t *testing.T) {
	var p = Params{PI: 1, AF: []float64{88.0, 91.5, 101.1}} //nolint:exhaustruct

	var g = buildGroup0A(p, 0, 0)

	assert.Equal(t, uint8(0xE0+3), uint8(g[2]>>8))
}

func Test_afCode_withinValidRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var freq = rapid.Float64Range(87.6, 107.9).Draw(t, "freq")

		var code = afCode(freq)

		assert.GreaterOrEqual(t, code, uint8(1))
		assert.LessOrEqual(t, code, uint8(204))
	})
}

func Test_buildGroup2A_rtSegmentsCoverAllSixtyFour(t *testing.T) {
	var text = ""
	for i := 0; i < 64; i++ {
		text += string(rune('A' + i%26))
	}

	var p = Params{PI: 1, RT: text} //nolint:exhaustruct

	var seen = make([]byte, 0, 64)

	for seg := 0; seg < 16; seg++ {
		var g = buildGroup2A(p, seg)
		seen = append(seen, byte(g[2]>>8), byte(g[2]), byte(g[3]>>8), byte(g[3]))
	}

	assert.Equal(t, text, string(seen))
}

func Test_PackGroup_roundTripsEveryBlock(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var pi = rapid.Uint16().Draw(t, "pi")
		var b2 = rapid.Uint16().Draw(t, "b2")
		var b3 = rapid.Uint16().Draw(t, "b3")
		var b4 = rapid.Uint16().Draw(t, "b4")

		var bits = PackGroup([4]uint16{pi, b2, b3, b4})

		assert.Len(t, bits, 104)

		for i, want := range []uint16{pi, b2, b3, b4} {
			var word uint16
			for b := 0; b < 16; b++ {
				word <<= 1
				if bits[i*26+b] {
					word |= 1
				}
			}

			assert.Equal(t, want, word)
		}
	})
}
