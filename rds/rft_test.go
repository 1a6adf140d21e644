package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_RFTImage_segmentReconstruction(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var data = rapid.SliceOfN(rapid.Byte(), 0, 2000).Draw(t, "data")

		var img = &RFTImage{Bytes: data, CRC32: crc32Of(data)}

		var reconstructed = make([]byte, 0, len(data))

		for i := 0; i < img.NumSegments(); i++ {
			var seg, ok = img.Segment(i)
			assert.True(t, ok)
			reconstructed = append(reconstructed, seg...)
		}

		assert.Equal(t, data, reconstructed)

		var _, ok = img.Segment(img.NumSegments())
		assert.False(t, ok, "one past the last segment must be out of range")
	})
}

func Test_RFTImage_emptyHasNoSegments(t *testing.T) {
	var img = &RFTImage{} //nolint:exhaustruct

	assert.Equal(t, 0, img.NumSegments())
}
