package rds

// RDS group assembly (component C / the "group builder" half of
// component E in §4). Each function returns the four 16-bit message
// words of one group, in the layouts fixed by IEC 62106 §3.1.5 for
// groups 0A, 2A, 4A and 10A, and a MiniRDS-local Open Data layout for
// 3A (RT+ AID announcement). Block A is always PI; the checkwords
// that turn these into transmittable blocks are added by Pack, not
// here, so group construction stays pure and easy to property-test
// against the padded/truncated fields Store already guarantees.

// groupHeader packs the group-type/version/TP/PTY fields shared by
// every 0-15 group type's block B, leaving the low bits for the
// caller to OR in.
func groupHeader(groupType uint8, versionB bool, tp bool, pty uint8) uint16 {
	var h = uint16(groupType&0x0F) << 12
	if versionB {
		h |= 1 << 11
	}

	if tp {
		h |= 1 << 10
	}

	h |= uint16(pty&0x1F) << 5

	return h
}

// afCode encodes one Alternative Frequency (87.6..107.9 MHz) to its
// single-byte AF code; afNoFreq (0xCD) marks "no frequency" filler.
const afNoFreq = 0xCD

func afCode(freqMHz float64) uint8 {
	var code = int((freqMHz-87.5)*10 + 0.5)
	if code < 1 {
		code = 1
	}

	if code > 204 {
		code = 204
	}

	return uint8(code)
}

// buildGroup0A builds a 0A group: PI/PS/AF/flags. segAddr (0..3)
// selects which 2-glyph slice of PS this group carries; afIdx selects
// which AF entry (mod list length) rides in block C alongside a
// running count byte, so a receiver sees the whole list's size on
// every group and one new entry each time.
func buildGroup0A(p Params, segAddr int, afIdx int) [4]uint16 {
	var b2 = groupHeader(0, false, p.TP, p.PTY)
	if p.TA {
		b2 |= 1 << 4
	}

	if p.MS {
		b2 |= 1 << 3
	}

	b2 |= uint16(segAddr & 0x3)

	if p.DI {
		b2 |= 1 << 2
	}

	var countByte = uint8(0xE0 + len(p.AF))
	if len(p.AF) > 25 {
		countByte = 0xE0 + 25
	}

	var afByte = uint8(afNoFreq)
	if len(p.AF) > 0 {
		afByte = afCode(p.AF[afIdx%len(p.AF)])
	}

	var b3 = uint16(countByte)<<8 | uint16(afByte)

	var c0, c1 byte = ' ', ' '
	if 2*segAddr < len(p.PS) {
		c0 = p.PS[2*segAddr]
	}

	if 2*segAddr+1 < len(p.PS) {
		c1 = p.PS[2*segAddr+1]
	}

	var b4 = uint16(c0)<<8 | uint16(c1)

	return [4]uint16{p.PI, b2, b3, b4}
}

// buildGroup2A builds a 2A group: one 4-glyph slice of RadioText,
// addressed by segAddr (0..15, covering all 64 glyphs).
func buildGroup2A(p Params, segAddr int) [4]uint16 {
	var b2 = groupHeader(2, false, p.TP, p.PTY)
	if p.RTAB {
		b2 |= 1 << 4
	}

	b2 |= uint16(segAddr & 0xF)

	var base = segAddr * 4
	var c [4]byte

	for i := range c {
		if base+i < len(p.RT) {
			c[i] = p.RT[base+i]
		} else {
			c[i] = ' '
		}
	}

	var b3 = uint16(c[0])<<8 | uint16(c[1])
	var b4 = uint16(c[2])<<8 | uint16(c[3])

	return [4]uint16{p.PI, b2, b3, b4}
}

// buildGroup10A builds a 10A group: one 4-glyph slice of the PTY Name
// (segAddr 0 or 1, covering all 8 glyphs).
func buildGroup10A(p Params, segAddr int) [4]uint16 {
	var b2 = groupHeader(10, false, p.TP, p.PTY)
	if p.PTYNAB {
		b2 |= 1 << 4
	}

	b2 |= uint16(segAddr & 0x1)

	var base = segAddr * 4
	var c [4]byte

	for i := range c {
		if base+i < len(p.PTYN) {
			c[i] = p.PTYN[base+i]
		} else {
			c[i] = ' '
		}
	}

	var b3 = uint16(c[0])<<8 | uint16(c[1])
	var b4 = uint16(c[2])<<8 | uint16(c[3])

	return [4]uint16{p.PI, b2, b3, b4}
}

// ctFields is the Clock-Time payload split into its wire-format parts
// (modified Julian day, UTC hour/minute, and a local offset in
// half-hour steps), so buildGroup4A stays a pure bit-packing function
// over already-computed fields — the wall-clock read lives in the
// caller (the generator loop), not here, which keeps this package
// free of time.Now() and therefore easy to construct deterministic
// test inputs for.
type ctFields struct {
	MJD        uint32 // modified Julian day, 17 bits
	Hour       uint8  // UTC hour, 0..23
	Minute     uint8  // UTC minute, 0..59
	OffsetSign bool   // true = negative (west of UTC)
	OffsetHalf uint8  // local offset in half-hour units, 0..31
}

// buildGroup4A builds a 4A Clock-Time group, a supplemental feature
// (§3's expansion) not excluded by any Non-goal.
func buildGroup4A(p Params, ct ctFields) [4]uint16 {
	var b2 = groupHeader(4, false, p.TP, p.PTY)
	b2 |= uint16((ct.MJD >> 15) & 0x3)

	var b3 = uint16(ct.MJD&0x7FFF) << 1
	b3 |= uint16(ct.Hour>>4) & 0x1

	var b4 = uint16(ct.Hour&0xF) << 12
	b4 |= uint16(ct.Minute&0x3F) << 6

	if ct.OffsetSign {
		b4 |= 1 << 5
	}

	b4 |= uint16(ct.OffsetHalf & 0x1F)

	return [4]uint16{p.PI, b2, b3, b4}
}

// rtPlusAID is the Open Data Application identifier for RadioText+
// (RDS-Forum spec RT+, AID 0x4BD7), announced in a 3A group so a
// receiver knows group type 11A (or whichever app-group MiniRDS picks)
// carries RT+ tags. MiniRDS reuses group 3A itself to carry the tag
// payload directly rather than indirecting through a second app
// group, which keeps the sequencer's group-type table flat.
const rtPlusAID = 0x4BD7

// buildGroup3A builds the 3A ODA group announcing and carrying RT+
// tag data: block C is the AID, block D packs the first tag tuple only
// (low 3 bits of its type, 6-bit start, 6-bit length). The second tag
// tuple is not transmitted.
func buildGroup3A(p Params) [4]uint16 {
	var b2 = groupHeader(3, false, p.TP, p.PTY)

	var b3 = uint16(rtPlusAID)

	var b4 = uint16(p.RTPlus.Tag1.Type&0x7) << 13
	b4 |= uint16(p.RTPlus.Tag1.Start&0x3F) << 7
	b4 |= uint16(p.RTPlus.Tag1.Len & 0x3F)

	return [4]uint16{p.PI, b2, b3, b4}
}
