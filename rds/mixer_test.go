package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Mixer_RDS2DisabledContributesNothing(t *testing.T) {
	var m = DefaultMixer()

	var withRDS2 = m.Mix(Carriers{Pilot: 1, RDS: 1}, 1, RDS2Signals{Enabled: true, Lo: 1, Mid: 1, Hi: 1}, 1)  //nolint:exhaustruct
	var without = m.Mix(Carriers{Pilot: 1, RDS: 1}, 1, RDS2Signals{Enabled: false, Lo: 1, Mid: 1, Hi: 1}, 1) //nolint:exhaustruct

	assert.Less(t, without, withRDS2)
	assert.InDelta(t, m.PilotLevel+m.RDSLevel, without, 1e-9)
}

func Test_Mixer_VolumeScalesLinearly(t *testing.T) {
	var m = DefaultMixer()

	var full = m.Mix(Carriers{Pilot: 1, RDS: 1}, 1, RDS2Signals{}, 1)  //nolint:exhaustruct
	var half = m.Mix(Carriers{Pilot: 1, RDS: 1}, 1, RDS2Signals{}, 0.5) //nolint:exhaustruct
	var muted = m.Mix(Carriers{Pilot: 1, RDS: 1}, 1, RDS2Signals{}, 0) //nolint:exhaustruct

	assert.InDelta(t, full/2, half, 1e-9)
	assert.Equal(t, 0.0, muted)
}
