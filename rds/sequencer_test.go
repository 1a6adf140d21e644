package rds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func groupType(g [4]uint16) uint8 {
	return uint8(g[1] >> 12)
}

func Test_Sequencer_skips10AWhenPTYNEmpty(t *testing.T) {
	var store = NewStore()
	store.SetPI(0x1000)

	var seq = NewSequencer(store)

	for i := 0; i < len(defaultSchedule); i++ {
		assert.NotEqual(t, uint8(10), groupType(seq.Next()))
	}
}

func Test_Sequencer_emits10AWhenPTYNSet(t *testing.T) {
	var store = NewStore()
	store.SetPI(0x1000)
	store.SetPTYN("ROCK FM ")

	var seq = NewSequencer(store)

	var saw10A = false

	for i := 0; i < len(defaultSchedule); i++ {
		if groupType(seq.Next()) == 10 {
			saw10A = true
		}
	}

	assert.True(t, saw10A)
}

func Test_Sequencer_skips3AWhenRTPlusNotRunning(t *testing.T) {
	var store = NewStore()
	store.SetPI(0x1000)

	var seq = NewSequencer(store)

	for i := 0; i < len(defaultSchedule); i++ {
		var g = seq.Next()
		// 3A and 0A share no group-type collision: groupType 3 only
		// ever comes from buildGroup3A.
		assert.NotEqual(t, uint8(3), groupType(g))
	}
}

func Test_Sequencer_emits3AWhenRTPlusRunning(t *testing.T) {
	var store = NewStore()
	store.SetPI(0x1000)
	store.SetRTPlusFlags(true, false)

	var seq = NewSequencer(store)

	var saw3A = false

	for i := 0; i < len(defaultSchedule); i++ {
		if groupType(seq.Next()) == 3 {
			saw3A = true
		}
	}

	assert.True(t, saw3A)
}

func Test_Sequencer_emits4AOnceThenFallsBackUntilMinuteChanges(t *testing.T) {
	var store = NewStore()
	store.SetPI(0x1000)

	var seq = NewSequencer(store)

	var fixed = time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	seq.clock = func() time.Time { return fixed }

	var count4A = 0

	for cycle := 0; cycle < 3; cycle++ {
		for i := 0; i < len(defaultSchedule); i++ {
			if groupType(seq.Next()) == 4 {
				count4A++
			}
		}
	}

	assert.Equal(t, 1, count4A, "4A must fire once per minute boundary, not once per schedule cycle")

	seq.clock = func() time.Time { return fixed.Add(time.Minute) }

	var sawSecond4A = false

	for i := 0; i < len(defaultSchedule); i++ {
		if groupType(seq.Next()) == 4 {
			sawSecond4A = true
		}
	}

	assert.True(t, sawSecond4A, "4A must fire again after crossing into the next minute")
}
