package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_SetPS_alwaysExactlyEightGlyphs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var s = NewStore()
		var text = rapid.String().Draw(t, "text")

		s.SetPS(text)

		assert.Len(t, s.Snapshot().PS, 8)
	})
}

func Test_SetRT_alwaysExactlySixtyFourGlyphs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var s = NewStore()
		var text = rapid.String().Draw(t, "text")

		s.SetRT(text, true)

		assert.Len(t, s.Snapshot().RT, 64)
	})
}

func Test_SetRT_toggleFlipsOnlyOnChange(t *testing.T) {
	var s = NewStore()

	s.SetRT("first message", true)

	var before = s.Snapshot().RTAB

	s.SetRT("first message", true)

	assert.Equal(t, before, s.Snapshot().RTAB, "identical text must not flip A/B")

	s.SetRT("second message", true)

	assert.NotEqual(t, before, s.Snapshot().RTAB, "changed text must flip A/B")
}

func Test_SetRT_noAutoToggleWhenDisabled(t *testing.T) {
	var s = NewStore()

	s.SetRT("first", true)

	var before = s.Snapshot().RTAB

	s.SetRT("different text entirely", false)

	assert.Equal(t, before, s.Snapshot().RTAB, "abAuto=false must never flip the toggle")
}

func Test_SetPTY_rejectsOutOfRange(t *testing.T) {
	var s = NewStore()

	var err = s.SetPTY(32)

	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, uint8(0), s.Snapshot().PTY, "rejected value must not change the stored PTY")
}

func Test_SetPTY_acceptsInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var s = NewStore()
		var n = rapid.IntRange(0, 31).Draw(t, "n")

		var err = s.SetPTY(n)

		assert.NoError(t, err)
		assert.Equal(t, uint8(n), s.Snapshot().PTY)
	})
}

func Test_AddAF_rejectsOutOfRange(t *testing.T) {
	var s = NewStore()

	var err = s.AddAF(50.0)

	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Empty(t, s.Snapshot().AF)
}

func Test_AddAF_rejectsWhenListFull(t *testing.T) {
	var s = NewStore()

	for i := 0; i < 25; i++ {
		assert.NoError(t, s.AddAF(88.0+float64(i)*0.1))
	}

	var err = s.AddAF(107.9)

	assert.ErrorIs(t, err, ErrAFListFull)
	assert.Len(t, s.Snapshot().AF, 25)
}

func Test_TAOverride_forcesTrueWhileAsserted(t *testing.T) {
	var s = NewStore()

	s.SetTA(false)
	s.SetTAOverride(true)

	assert.True(t, s.Snapshot().TA)

	s.SetTAOverride(false)

	assert.False(t, s.Snapshot().TA)
}

func Test_SetRTPlusTags_rejectsOutOfRange(t *testing.T) {
	var s = NewStore()

	var err = s.SetRTPlusTags(RTPlusTags{
		Tag1: RTPlusTag{Type: 1, Start: 60, Len: 10},
	})

	assert.ErrorIs(t, err, ErrOutOfRange)
}

func Test_SetRFTImage_computesCRC(t *testing.T) {
	var s = NewStore()

	s.SetRFTImage([]byte("hello world"))

	var img = s.RFT()

	assert.Equal(t, crc32Of([]byte("hello world")), img.CRC32)
	assert.Equal(t, 1, img.NumSegments())
}
