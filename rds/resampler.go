package rds

import (
	"errors"
	"math"
)

// Resampler converts the internal 228 kHz generation rate to a
// configurable output rate via rational (L/M) polyphase resampling,
// grounded on the teacher's dsp.go windowed-sinc filter design
// (window, gen_lowpass) — same FIR-by-window construction, decomposed
// here into L polyphase branches instead of applied as one direct
// convolution, since direct convolution at a 16x-upsampled rate would
// cost 16x the multiplies for no benefit.
type Resampler struct {
	l, m            int
	numTapsPerPhase int
	polyphase       [][]float64 // l branches, numTapsPerPhase taps each

	history    []float64 // ring buffer of the last numTapsPerPhase input samples
	historyLen int
	inputIndex int // count of input samples pushed

	outIdx int
}

// ErrInvalidOutputRate is returned by NewResampler when outRate is
// non-positive or reduces to a degenerate L/M ratio.
var ErrInvalidOutputRate = errors.New("rds: invalid output sample rate")

// NewResampler builds a resampler from inRate to outRate samples/sec.
// qualityTaps sets the prototype filter length per polyphase branch;
// §4.F calls for at least 48.
func NewResampler(inRate, outRate float64, qualityTaps int) (*Resampler, error) {
	if outRate <= 0 || inRate <= 0 {
		return nil, ErrInvalidOutputRate
	}

	var l, m = rationalRatio(inRate, outRate)
	if l == 0 || m == 0 {
		return nil, ErrInvalidOutputRate
	}

	if qualityTaps < 48 {
		qualityTaps = 48
	}

	var protoLen = qualityTaps * l
	var cutoff = 0.5 / float64(maxInt(l, m))
	var prototype = genLowpass(protoLen, cutoff)

	var poly = make([][]float64, l)
	for p := 0; p < l; p++ {
		var branch = make([]float64, qualityTaps)
		for k := range branch {
			var idx = p + k*l
			if idx < len(prototype) {
				branch[k] = prototype[idx] * float64(l)
			}
		}

		poly[p] = branch
	}

	return &Resampler{
		l:               l,
		m:               m,
		numTapsPerPhase: qualityTaps,
		polyphase:       poly,
		history:         make([]float64, qualityTaps),
	}, nil
}

// rationalRatio reduces outRate/inRate to a small L/M pair via their
// GCD; for the reference 228000/192000 rates this yields 16/19.
func rationalRatio(inRate, outRate float64) (l, m int) {
	var inHz = int(math.Round(inRate))
	var outHz = int(math.Round(outRate))
	var g = gcd(inHz, outHz)

	return outHz / g, inHz / g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// Push feeds one input-rate sample in and returns the zero or more
// output-rate samples it completes.
func (r *Resampler) Push(sample float64) []float64 {
	r.history[r.inputIndex%r.numTapsPerPhase] = sample
	r.inputIndex++

	if r.historyLen < r.numTapsPerPhase {
		r.historyLen++
	}

	var out []float64

	for {
		var t = r.outIdx * r.m
		var neededInput = t / r.l

		if neededInput > r.inputIndex-1 {
			break
		}

		if r.historyLen < r.numTapsPerPhase {
			// Not enough history yet to produce a meaningful sample;
			// skip ahead without emitting rather than convolving
			// against zeros, which would ring at startup.
			r.outIdx++

			continue
		}

		var phase = t % r.l
		var branch = r.polyphase[phase]

		var acc float64
		for k := 0; k < r.numTapsPerPhase; k++ {
			var srcIdx = neededInput - k
			acc += branch[k] * r.history[srcIdx%r.numTapsPerPhase]
		}

		out = append(out, acc)
		r.outIdx++
	}

	return out
}

// genLowpass builds a length-n windowed-sinc lowpass FIR at
// normalized cutoff (cycles/sample, < 0.5), using a Blackman window
// for low stopband ripple — the same window/gen_lowpass pairing as
// dsp.go, generalized from a fixed audio-band cutoff to an arbitrary
// one driven by the L/M ratio.
func genLowpass(n int, cutoff float64) []float64 {
	var h = make([]float64, n)
	var center = float64(n-1) / 2

	for i := range h {
		var x = float64(i) - center

		var sinc float64
		if x == 0 {
			sinc = 2 * cutoff
		} else {
			sinc = math.Sin(2*math.Pi*cutoff*x) / (math.Pi * x)
		}

		var w = blackman(i, n)
		h[i] = sinc * w
	}

	return h
}

func blackman(i, n int) float64 {
	var a0, a1, a2 = 0.42, 0.5, 0.08
	var x = 2 * math.Pi * float64(i) / float64(n-1)

	return a0 - a1*math.Cos(x) + a2*math.Cos(2*x)
}
