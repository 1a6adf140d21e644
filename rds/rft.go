package rds

import "hash/crc32"

// RDS File Transfer (RDS2 Open Data Application, component F's data
// source for the subcarrier group stream). No example repo in the
// pack implements chunked binary transfer over a narrowband channel,
// so the segmentation scheme here is grounded directly on the RFT
// group layout, not on a teacher file; crc32Of is the one piece of
// this package built on the standard library rather than a pack
// dependency (see DESIGN.md: no retrieved repo imports a CRC-32
// library, and hash/crc32 is the obvious, already-imported-nowhere,
// correct tool for a whole-file integrity check).

// RFTSegmentSize is the payload carried per RFT segment group, chosen
// to match the 163-byte chunking described in IEC 62106-2 RFT so an
// image transfers in a predictable, countable number of groups.
const RFTSegmentSize = 163

func crc32Of(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// NumSegments returns how many RFTSegmentSize-byte segments img needs,
// rounding up, and 0 for an empty or nil image.
func (img *RFTImage) NumSegments() int {
	if img == nil || len(img.Bytes) == 0 {
		return 0
	}

	return (len(img.Bytes) + RFTSegmentSize - 1) / RFTSegmentSize
}

// Segment returns the i'th RFTSegmentSize-byte chunk of the image
// (the last chunk short if the image length isn't a multiple of
// RFTSegmentSize), and false if i is out of range.
func (img *RFTImage) Segment(i int) ([]byte, bool) {
	var n = img.NumSegments()
	if i < 0 || i >= n {
		return nil, false
	}

	var start = i * RFTSegmentSize
	var end = start + RFTSegmentSize
	if end > len(img.Bytes) {
		end = len(img.Bytes)
	}

	return img.Bytes[start:end], true
}
