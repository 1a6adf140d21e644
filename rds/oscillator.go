package rds

import "math"

// Direct digital synthesis of the composite MPX carriers, grounded on
// the teacher's gen_tone.go fixed-point phase accumulator plus
// precomputed sine table idiom (there: one accumulator per AFSK tone;
// here: one shared accumulator driving every harmonically related
// carrier, so the pilot and every subcarrier stay phase-locked by
// construction rather than by periodic resynchronization).

const (
	sineTableBits = 12
	sineTableSize = 1 << sineTableBits // 4096 entries
	sineTableMask = sineTableSize - 1
	phaseBits     = 32
)

var sineTable [sineTableSize]float64

func init() {
	for i := range sineTable {
		sineTable[i] = math.Sin(2 * math.Pi * float64(i) / float64(sineTableSize))
	}
}

func sineLookup(phase uint32) float64 {
	return sineTable[(phase>>(phaseBits-sineTableBits))&sineTableMask]
}

// cosLookup reuses sineTable with a quarter-turn offset rather than
// keeping a second table.
func cosLookup(phase uint32) float64 {
	return sineLookup(phase + 1<<(phaseBits-2))
}

// Carriers holds one sample of every carrier derived from the shared
// 19 kHz phase reference, at harmonic ratios fixed by the RDS/RDS2
// standards: pilot at 1x, the legacy RDS subcarrier at 3x (57 kHz),
// and three RDS2 subcarriers at 3.5x/3.75x/4x (66.5/71.25/76 kHz).
type Carriers struct {
	Pilot   float64
	RDS     float64
	RDS2Lo  float64 // 66.5 kHz
	RDS2Mid float64 // 71.25 kHz
	RDS2Hi  float64 // 76 kHz
}

// Oscillator is the single phase accumulator all MPX carriers derive
// from (§4.A). Advancing it once per internal sample and reading every
// carrier off the same phase value is what keeps them coherent: there
// is structurally no way for the 57 kHz subcarrier to drift relative
// to the 19 kHz pilot, since both are table lookups at different
// multiples of one integer phase.
type Oscillator struct {
	phase uint32
	step  uint32 // fixed-point phase increment per sample at 19 kHz
}

// NewOscillator returns an Oscillator producing a 19 kHz fundamental
// when run at sampleRate samples/sec.
func NewOscillator(sampleRate float64) *Oscillator {
	var step = uint32(19000.0 / sampleRate * (1 << phaseBits))

	return &Oscillator{step: step} //nolint:exhaustruct
}

// Next advances the oscillator by one sample and returns every
// carrier's value at the new phase.
func (o *Oscillator) Next() Carriers {
	// phase runs at a quarter of the pilot frequency (4.75 kHz), so every
	// carrier, including 3.5x and 3.75x of 19 kHz, is an integer multiple
	// of it and stays continuous when phase wraps.
	o.phase += o.step / 4

	return Carriers{
		Pilot:   sineLookup(harmonicPhase(o.phase, 4, 1)),
		RDS:     cosLookup(harmonicPhase(o.phase, 12, 1)),
		RDS2Lo:  cosLookup(harmonicPhase(o.phase, 14, 1)),
		RDS2Mid: cosLookup(harmonicPhase(o.phase, 15, 1)),
		RDS2Hi:  cosLookup(harmonicPhase(o.phase, 16, 1)),
	}
}

// harmonicPhase computes phase*num/den modulo 2^32 in fixed point
// without overflowing. With den=1 this is the phase of the num-th
// harmonic; a den other than 1 gives a result that jumps each time
// phase wraps, which is why Next uses integer multiples only.
func harmonicPhase(phase uint32, num, den uint32) uint32 {
	return uint32((uint64(phase) * uint64(num)) / uint64(den))
}
