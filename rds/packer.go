package rds

// Packer turns four raw group message words into the 104-bit frame
// actually transmitted: each word gets its block's checkword (via
// EncodeBlock) and the combined 26 bits are serialized MSB-first, in
// block order A, B, C, D — the wire format CRC.go's offsets already
// name.

var blockOffsets = [4]uint16{OffsetA, OffsetB, OffsetC, OffsetD}

// PackGroup returns the 104 data bits for one group, most significant
// bit of block A first.
func PackGroup(words [4]uint16) []bool {
	var bits = make([]bool, 0, 104)

	for i, w := range words {
		var check = EncodeBlock(w, blockOffsets[i])

		for b := 15; b >= 0; b-- {
			bits = append(bits, (w>>uint(b))&1 == 1)
		}

		for b := 9; b >= 0; b-- {
			bits = append(bits, (check>>uint(b))&1 == 1)
		}
	}

	return bits
}

// BitValue converts a bool bit to the 0/1 int EncodeBit expects.
func BitValue(b bool) int {
	if b {
		return 1
	}

	return 0
}
