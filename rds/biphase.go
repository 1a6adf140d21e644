package rds

import "math"

// Differential biphase encoding of the RDS bitstream (component B),
// grounded on the teacher's dsp.go pulse-shaping idiom (window, rrc,
// gen_rrc_lowpass build a FIR table once and convolve/overlap-add
// against it) adapted from AFSK baseband shaping to RDS's symbol-rate
// biphase pulse. The shape itself approximates the standard
// cosine-rolloff derivative (see biphasePulse) used to band-limit the 1187.5 bit/s biphase symbol
// stream before it modulates the 57 kHz subcarrier.

// BitRate is the RDS data rate in bit/s (IEC 62106).
const BitRate = 1187.5

// biphaseSpanBits is how many bit periods the shaping pulse spans.
// §4.B requires at least 3 symbol-periods of support for the shaping
// pulse; 3 is the minimum that satisfies it while keeping the
// overlap-add buffer small.
const biphaseSpanBits = 3

// BiphaseEncoder turns a stream of RDS bits into shaped baseband
// samples at sampleRate, via differential encoding (IEC 62106 §3:
// a data bit of 0 leaves the biphase symbol's polarity unchanged from
// the previous bit; a 1 flips it) followed by pulse-shaped
// overlap-add.
type BiphaseEncoder struct {
	samplesPerBit int
	pulse         []float64 // length biphaseSpanBits*samplesPerBit
	buf           []float64 // overlap-add ring, same length as pulse
	pos           int
	prevSymbol    bool // current (post-differential) symbol polarity

	// outQueue/outPos cache the samples of the bit currently being
	// drained one internal sample at a time by Generator.nextFromBiphase;
	// EncodeBit itself still produces a whole bit's worth at once.
	outQueue []float64
	outPos   int
}

// NewBiphaseEncoder builds an encoder for sampleRate samples/sec. At
// the reference internal rate of 228 kHz this yields exactly 192
// samples/bit.
func NewBiphaseEncoder(sampleRate float64) *BiphaseEncoder {
	var samplesPerBit = int(math.Round(sampleRate / BitRate))
	var pulse = biphasePulse(samplesPerBit)

	return &BiphaseEncoder{
		samplesPerBit: samplesPerBit,
		pulse:         pulse,
		buf:           make([]float64, len(pulse)),
	}
}

// biphasePulse builds one biphaseSpanBits*samplesPerBit-sample pulse:
// a half-sine envelope (zero at both ends, continuous derivative)
// carrying one polarity transition at its midpoint, which is the
// cosine-rolloff-derivative shape §4.B calls for. Generating it with
// a closed-form envelope rather than differentiating a raised-cosine
// numerically avoids a division-by-zero special case at the symbol
// center, at the cost of being an engineering approximation of the
// IEC reference shape rather than a bit-exact reproduction.
func biphasePulse(samplesPerBit int) []float64 {
	var n = biphaseSpanBits * samplesPerBit
	var pulse = make([]float64, n)

	for i := range pulse {
		var t = float64(i) / float64(n) // 0..1 across the whole pulse
		var envelope = math.Sin(math.Pi * t)
		var carrier = math.Cos(math.Pi * t) // one sign flip at t=0.5
		pulse[i] = envelope * carrier
	}

	return pulse
}

// EncodeBit consumes one RDS data bit and returns samplesPerBit output
// samples. The pulse for this bit overlaps the tail of the preceding
// bits' pulses and the head of the following bits' (biphaseSpanBits
// bit periods of support), so output for bit i isn't final until
// EncodeBit has been called for bit i and the biphaseSpanBits-1 bits
// after it.
func (e *BiphaseEncoder) EncodeBit(bit int) []float64 {
	if bit != 0 {
		e.prevSymbol = !e.prevSymbol
	}

	var sign = 1.0
	if !e.prevSymbol {
		sign = -1.0
	}

	var bufLen = len(e.buf)
	for i, p := range e.pulse {
		var idx = (e.pos + i) % bufLen
		e.buf[idx] += sign * p
	}

	var out = make([]float64, e.samplesPerBit)
	for i := range out {
		var idx = (e.pos + i) % bufLen
		out[i] = e.buf[idx]
		e.buf[idx] = 0
	}

	e.pos = (e.pos + e.samplesPerBit) % bufLen

	return out
}

// SamplesPerBit reports how many internal-rate samples one data bit
// occupies.
func (e *BiphaseEncoder) SamplesPerBit() int {
	return e.samplesPerBit
}
