package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_Xlat_asciiPassthrough(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var code = rapid.IntRange(0x20, 0x7E).Draw(t, "code")
		var r = rune(code)

		assert.Equal(t, string(r), Xlat(string(r)))
	})
}

func Test_Xlat_idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var s = rapid.String().Draw(t, "s")

		var once = Xlat(s)
		var twice = Xlat(once)

		assert.Equal(t, once, twice, "Xlat must be a fixed point of its own output")
	})
}

func Test_PadGlyphs_exactLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var s = rapid.String().Draw(t, "s")
		var n = rapid.IntRange(0, 64).Draw(t, "n")

		assert.Len(t, PadGlyphs(s, n), n)
	})
}

func Test_PadGlyphs_preservesPrefix(t *testing.T) {
	var out = PadGlyphs("RDS", 8)

	assert.Equal(t, "RDS     ", out)
}
