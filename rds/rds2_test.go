package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Sequencer2_ertSegmentsCoverWholeField(t *testing.T) {
	var store = NewStore()
	store.SetERT("This is an enhanced RadioText message for testing purposes only.", 0)

	var seq = NewSequencer2(store, "ert")

	var seen = ""

	for i := 0; i < ertSegments; i++ {
		var g = seq.Next()
		seen += string(byte(g[2]>>8)) + string(byte(g[2])) + string(byte(g[3]>>8)) + string(byte(g[3]))
	}

	assert.Equal(t, store.Snapshot().ERT, seen[:len(store.Snapshot().ERT)])
}

func Test_Sequencer2_rftAdvancesThroughWholeImage(t *testing.T) {
	var store = NewStore()

	var data = make([]byte, 400)
	for i := range data {
		data[i] = byte(i)
	}

	store.SetRFTImage(data)

	var seq = NewSequencer2(store, "rft")

	var img = store.RFT()
	var totalChunks = img.NumSegments() * rftChunksPerSegment

	var lastSegIdx = -1

	for i := 0; i < totalChunks; i++ {
		var g = seq.Next()
		var segIdx = int(g[1] & 0x0FFF)
		lastSegIdx = segIdx
	}

	assert.Equal(t, img.NumSegments()-1, lastSegIdx)
}

func Test_Sequencer2_rftEmptyImageDoesNotPanic(t *testing.T) {
	var store = NewStore()
	var seq = NewSequencer2(store, "rft")

	assert.NotPanics(t, func() {
		seq.Next()
	})
}
