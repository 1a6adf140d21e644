package rds

import "unicode/utf8"

// Character-set translation (component N, §9's "xlat" design note).
// Modeled as a pure function from an input glyph sequence to the RDS
// basic character set (IEC 62106 Annex E), grounded on the teacher's
// table-driven glyph lookup idiom in src/deviceid.go. Idempotent on
// already-translated input: every byte Xlat can produce (ASCII
// 0x20-0x7E, or one of rdsExtendedGlyphs' values) is checked for and
// passed through unchanged before any UTF-8 decoding is attempted, so
// re-running Xlat on its own output is always the identity.

// rdsExtendedGlyphs maps a handful of common Western-European
// characters, outside 7-bit ASCII, to their RDS basic-character-set
// code points in the 0xA0-0xFF band. Anything not listed here and
// outside printable ASCII becomes a space — MiniRDS does not attempt
// a full Annex E table (G1/G2 alternates, Arabic/Cyrillic/Greek
// repertoires); stations needing those select a different program-type
// character page, which is out of MiniRDS's scope.
//
// Because Xlat passes these output bytes through before decoding
// UTF-8, a glyph whose UTF-8 encoding starts with one of them (lead
// bytes 0xC4-0xC7, 0xD0, 0xD1, 0xDB, 0xE2, 0xE3) is handled byte by
// byte rather than as one glyph: '€' (E2 82 AC) comes out as 0xE2, a
// space and 0xAC, never as 0x9A.
var rdsExtendedGlyphs = map[rune]byte{
	'á': 0xB4, 'à': 0xB5, 'â': 0xB6, 'ä': 0xB7,
	'é': 0xA4, 'è': 0xA5, 'ê': 0xA6, 'ë': 0xA7,
	'í': 0xB8, 'ì': 0xB9, 'î': 0xBA, 'ï': 0xBB,
	'ó': 0xAC, 'ò': 0xAD, 'ô': 0xAE, 'ö': 0xAF,
	'ú': 0xC4, 'ù': 0xC5, 'û': 0xC6, 'ü': 0xC7,
	'ñ': 0xD1, 'ç': 0xE3,
	'Á': 0x94, 'À': 0x95, 'Â': 0x96, 'Ä': 0x97,
	'É': 0x84, 'È': 0x85, 'Ê': 0x86, 'Ë': 0x87,
	'Ñ': 0xD0, 'Ç': 0xE2,
	'°': 0xDB, '€': 0x9A,
}

// rdsExtendedBytes is the reverse of rdsExtendedGlyphs' value set:
// every single byte Xlat can emit for a non-ASCII glyph. A byte in
// this set is always treated as already-translated, even if it would
// otherwise look like the lead byte of a valid multi-byte UTF-8
// sequence (two already-translated bytes can accidentally form one) —
// checking this set before attempting to decode a rune is what keeps
// Xlat idempotent on its own output.
var rdsExtendedBytes = func() map[byte]bool {
	var set = make(map[byte]bool, len(rdsExtendedGlyphs))
	for _, b := range rdsExtendedGlyphs {
		set[b] = true
	}

	return set
}()

// Xlat translates s into the RDS basic character set, one glyph at a
// time. Bytes already in 0x20..0x7E, or already one of
// rdsExtendedGlyphs' output bytes, pass through unchanged; everything
// else is decoded as UTF-8 and looked up in rdsExtendedGlyphs, falling
// back to a space.
func Xlat(s string) string {
	var data = []byte(s)
	var out = make([]byte, 0, len(data))

	for i := 0; i < len(data); {
		var b = data[i]

		switch {
		case b >= 0x20 && b <= 0x7E:
			out = append(out, b)
			i++
		case rdsExtendedBytes[b]:
			out = append(out, b)
			i++
		default:
			var r, size = utf8.DecodeRune(data[i:])
			if size == 0 {
				size = 1
			}

			if code, ok := rdsExtendedGlyphs[r]; ok && r != utf8.RuneError {
				out = append(out, code)
			} else {
				out = append(out, ' ')
			}

			i += size
		}
	}

	return string(out)
}

// PadGlyphs truncates or space-pads s to exactly n glyphs (bytes, post
// translation — RDS glyphs are single bytes).
func PadGlyphs(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}

	if len(s) == n {
		return s
	}

	var b = make([]byte, n)
	copy(b, s)

	for i := len(s); i < n; i++ {
		b[i] = ' '
	}

	return string(b)
}
