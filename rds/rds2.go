package rds

// RDS2 auxiliary group layouts (component F/G): enhanced RadioText
// (eRT), Long PS (LPS) and RFT image segments, each carried on its
// own subcarrier by a dedicated Sequencer2 rather than sharing the
// legacy 57 kHz group stream. Group type codes 13/14/15 are
// MiniRDS-local choices (RDS2's real Open Data registration process
// is out of scope for a synthetic generator with no receiver
// ecosystem to interoperate with); the segment-addressing shape
// follows the same "header word selects a slice, data words carry
// glyphs/bytes" pattern as buildGroup2A/buildGroup10A in group.go.

const ertGlyphsPerGroup = 4
const ertSegments = 128 / ertGlyphsPerGroup

func buildGroupERT(p Params, segAddr int) [4]uint16 {
	var b2 = uint16(13)<<12 | uint16(segAddr&0x1F)

	var base = segAddr * ertGlyphsPerGroup
	var c [4]byte

	for i := range c {
		if base+i < len(p.ERT) {
			c[i] = p.ERT[base+i]
		} else {
			c[i] = ' '
		}
	}

	var b3 = uint16(c[0])<<8 | uint16(c[1])
	var b4 = uint16(c[2])<<8 | uint16(c[3])

	return [4]uint16{p.PI, b2, b3, b4}
}

const lpsGlyphsPerGroup = 4

func buildGroupLPS(p Params, segAddr int) [4]uint16 {
	var b2 = uint16(14)<<12 | uint16(segAddr&0x7)

	var base = segAddr * lpsGlyphsPerGroup
	var c [4]byte

	for i := range c {
		if base+i < len(p.LPS) {
			c[i] = p.LPS[base+i]
		} else {
			c[i] = ' '
		}
	}

	var b3 = uint16(c[0])<<8 | uint16(c[1])
	var b4 = uint16(c[2])<<8 | uint16(c[3])

	return [4]uint16{p.PI, b2, b3, b4}
}

// lpsSegments is how many buildGroupLPS segments cover the 32-glyph
// LPS field.
const lpsSegments = 32 / lpsGlyphsPerGroup

// buildGroupRFT carries 2 bytes of one segment's data per group.
// segIdx addresses the 163-byte RFT segment (component F); chunkIdx
// addresses the 2-byte sub-chunk within it, so a receiver can detect
// a dropped group from a gap in chunkIdx without needing a full
// retransmit of the segment.
func buildGroupRFT(pi uint16, segIdx, chunkIdx int, data []byte) [4]uint16 {
	var b2 = uint16(15)<<12 | uint16(segIdx&0x0FFF)
	var b3 = uint16(chunkIdx)

	var lo, hi byte
	if len(data) > 0 {
		lo = data[0]
	}

	if len(data) > 1 {
		hi = data[1]
	}

	var b4 = uint16(lo)<<8 | uint16(hi)

	return [4]uint16{pi, b2, b3, b4}
}

// rftChunksPerSegment is how many 2-byte groups one 163-byte RFT
// segment takes (82 chunks: 81 full pairs plus one trailing single
// byte padded with zero).
const rftChunksPerSegment = (RFTSegmentSize + 1) / 2

// Sequencer2 drives one RDS2 subcarrier's group stream: eRT, LPS or
// RFT, selected by kind. Each is simple enough (one rotating segment
// address) that, unlike the legacy Sequencer, it needs no weighted
// schedule — a single field occupies the whole subcarrier.
type Sequencer2 struct {
	store *Store
	kind  string

	seg      int
	rftImg   *RFTImage // image rftSeg/rftChunk refer to
	rftSeg   int
	rftChunk int
}

// NewSequencer2 returns a Sequencer2 for kind "ert", "lps" or "rft".
func NewSequencer2(store *Store, kind string) *Sequencer2 {
	return &Sequencer2{store: store, kind: kind} //nolint:exhaustruct
}

func (s *Sequencer2) Next() [4]uint16 {
	var p = s.store.Snapshot()

	switch s.kind {
	case "ert":
		var g = buildGroupERT(p, s.seg)
		s.seg = (s.seg + 1) % ertSegments

		return g
	case "lps":
		var g = buildGroupLPS(p, s.seg)
		s.seg = (s.seg + 1) % lpsSegments

		return g
	case "rft":
		return s.nextRFT(p.PI)
	default:
		return buildGroupERT(p, s.seg)
	}
}

func (s *Sequencer2) nextRFT(pi uint16) [4]uint16 {
	var img = s.store.RFT()
	if img != s.rftImg {
		s.rftImg = img
		s.rftSeg, s.rftChunk = 0, 0
	}

	var n = img.NumSegments()
	if n == 0 {
		return [4]uint16{pi, uint16(15) << 12, 0, 0}
	}

	if s.rftSeg >= n {
		s.rftSeg = 0
	}

	var segData, _ = img.Segment(s.rftSeg)

	var start = s.rftChunk * 2
	var chunk []byte
	if start < len(segData) {
		var end = start + 2
		if end > len(segData) {
			end = len(segData)
		}

		chunk = segData[start:end]
	}

	var g = buildGroupRFT(pi, s.rftSeg, s.rftChunk, chunk)

	s.rftChunk++
	if s.rftChunk >= rftChunksPerSegment {
		s.rftChunk = 0
		s.rftSeg = (s.rftSeg + 1) % n
	}

	return g
}
