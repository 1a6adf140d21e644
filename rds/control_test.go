package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Apply_PS(t *testing.T) {
	var s = NewStore()

	assert.NoError(t, Apply(s, "PS Hello"))
	assert.Equal(t, "Hello   ", s.Snapshot().PS)
}

func Test_Apply_RT(t *testing.T) {
	var s = NewStore()

	assert.NoError(t, Apply(s, "RT Now Playing: Test Track"))
	assert.Contains(t, s.Snapshot().RT, "Now Playing: Test Track")
}

func Test_Apply_PTY_outOfRange(t *testing.T) {
	var s = NewStore()

	var err = Apply(s, "PTY 99")

	assert.ErrorIs(t, err, ErrOutOfRange)
}

func Test_Apply_unknownVerb(t *testing.T) {
	var s = NewStore()

	var err = Apply(s, "FROBNICATE now")

	assert.ErrorIs(t, err, ErrMalformedCommand)
}

func Test_Apply_AFAddAndClear(t *testing.T) {
	var s = NewStore()

	assert.NoError(t, Apply(s, "AF 99.5"))
	assert.Len(t, s.Snapshot().AF, 1)

	assert.NoError(t, Apply(s, "AFC"))
	assert.Empty(t, s.Snapshot().AF)
}

func Test_Apply_TP_onOff(t *testing.T) {
	var s = NewStore()

	assert.NoError(t, Apply(s, "TP ON"))
	assert.True(t, s.Snapshot().TP)

	assert.NoError(t, Apply(s, "TP OFF"))
	assert.False(t, s.Snapshot().TP)
}

func Test_Apply_MS_musicSpeech(t *testing.T) {
	var s = NewStore()

	assert.NoError(t, Apply(s, "MS Speech"))
	assert.False(t, s.Snapshot().MS)

	assert.NoError(t, Apply(s, "MS Music"))
	assert.True(t, s.Snapshot().MS)
}

func Test_Apply_VOL(t *testing.T) {
	var s = NewStore()

	assert.NoError(t, Apply(s, "VOL 50"))
	assert.InDelta(t, 0.5, s.VolumeFraction(), 1e-9)

	assert.ErrorIs(t, Apply(s, "VOL 101"), ErrOutOfRange)
}

func Test_Apply_RESET(t *testing.T) {
	var s = NewStore()

	assert.NoError(t, Apply(s, "PS Hello"))
	assert.NoError(t, Apply(s, "VOL 10"))

	assert.NoError(t, Apply(s, "RESET"))

	assert.Equal(t, "        ", s.Snapshot().PS)
	assert.InDelta(t, 1.0, s.VolumeFraction(), 1e-9)
}

func Test_Apply_RTPlus(t *testing.T) {
	var s = NewStore()

	assert.NoError(t, Apply(s, "RTP+ 1 0 5 4 6 4"))

	var tags = s.Snapshot().RTPlus
	assert.Equal(t, uint8(1), tags.Tag1.Type)
	assert.Equal(t, uint8(4), tags.Tag2.Type)
}

func Test_Apply_emptyLineIsNoop(t *testing.T) {
	var s = NewStore()

	assert.NoError(t, Apply(s, "   "))
}

func Test_FormatError(t *testing.T) {
	assert.Equal(t, "OK", FormatError("PS x", nil))
	assert.Contains(t, FormatError("PTY 99", ErrOutOfRange), "ERR")
}
