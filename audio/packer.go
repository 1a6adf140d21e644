package audio

// Float-to-interleaved-int16 packing (component G, §4.G): every mono
// MPX sample is duplicated onto both stereo channels (MiniRDS carries
// no genuine stereo program audio — the pilot merely announces stereo
// to a receiver) and quantized with saturating rounding, matching the
// teacher's audio_put byte-framing idiom but generalized from a single
// channel count to the fixed stereo-interleaved contract §6 requires
// of every sink.

// quantizeSample maps f in [-1,1] to int16 via round(f*32767) with
// saturation, per §4.G.
func quantizeSample(f float64) int16 {
	if f > 1 {
		f = 1
	} else if f < -1 {
		f = -1
	}

	var q = f*32767 + sign(f)*0.5 // round-half-away-from-zero

	return int16(q)
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}

	return 1
}

// PackStereoPCM quantizes mono samples and duplicates each one onto
// both channels, returning little-endian int16 stereo frames (4 bytes
// per input sample: L, then R).
func PackStereoPCM(samples []float64, buf []byte) []byte {
	var need = len(samples) * 4
	if cap(buf) < need {
		buf = make([]byte, need)
	}

	buf = buf[:need]

	for i, v := range samples {
		var q = uint16(quantizeSample(v)) //nolint:gosec
		var lo, hi = byte(q), byte(q >> 8)

		buf[i*4+0] = lo
		buf[i*4+1] = hi
		buf[i*4+2] = lo
		buf[i*4+3] = hi
	}

	return buf
}
