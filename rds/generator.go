package rds

import (
	"context"
	"time"
)

// Sink is anything that accepts finished, resampled MPX audio. Kept
// minimal and defined here (rather than imported from the audio
// package) so rds has no dependency on audio backends — audio.Sink
// implementations satisfy this interface structurally, the same
// inversion the teacher uses between its protocol packages and
// server.go's net.Conn-based transports.
type Sink interface {
	WriteSamples(samples []float64) error
}

// InternalSampleRate is the rate every oscillator, biphase encoder
// and mixer in this package runs at: 228 kHz is exactly 192 samples
// per RDS bit and a clean multiple of the 19, 57 and 76 kHz carriers
// (not of the 66.5 and 71.25 kHz RDS2 carriers), which keeps the direct digital synthesis tables small and
// avoids the phase error that resampling the carriers themselves
// (rather than just the finished composite) would introduce.
const InternalSampleRate = 228000.0

// GeneratorConfig configures a Generator.
type GeneratorConfig struct {
	OutputSampleRate float64
	EnableRDS2       bool
	Mixer            Mixer
	BlockSize        int // samples generated per Run loop iteration
}

// DefaultGeneratorConfig returns a 192 kHz-output, RDS2-disabled
// configuration with the default mixer levels.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputSampleRate: 192000.0,
		EnableRDS2:       false,
		Mixer:            DefaultMixer(),
		BlockSize:        2048,
	}
}

// Generator is the top of the signal chain (component I): it owns the
// phase-locked oscillator, the legacy and RDS2 biphase encoders, the
// group sequencers, the mixer and the output resampler, and drives
// them sample by sample. It holds no command channel of its own —
// control transports write straight to the shared Store, whose mutex
// (pistate.go) is the only synchronization this design needs; the
// generator simply reads a fresh Snapshot whenever a Sequencer needs
// one, which happens once per group, not once per sample.
type Generator struct {
	cfg   GeneratorConfig
	store *Store

	osc    *Oscillator
	rs     *Resampler
	seq    *Sequencer
	seqLo  *Sequencer2
	seqMid *Sequencer2
	seqHi  *Sequencer2

	biphase   *BiphaseEncoder
	biphaseLo *BiphaseEncoder
	biphaseMd *BiphaseEncoder
	biphaseHi *BiphaseEncoder

	bits    []bool
	bitPos  int
	bitsLo  []bool
	bitPosL int
	bitsMd  []bool
	bitPosM int
	bitsHi  []bool
	bitPosH int
}

// NewGenerator builds a Generator reading PI state from store. It
// fails only if the configured output sample rate can't be reduced to
// a usable polyphase ratio (§6's "resampler-init failure").
func NewGenerator(store *Store, cfg GeneratorConfig) (*Generator, error) {
	var rs, err = NewResampler(InternalSampleRate, cfg.OutputSampleRate, 64)
	if err != nil {
		return nil, err
	}

	var g = &Generator{
		cfg:     cfg,
		store:   store,
		osc:     NewOscillator(InternalSampleRate),
		rs:      rs,
		seq:     NewSequencer(store),
		biphase: NewBiphaseEncoder(InternalSampleRate),
	}

	if cfg.EnableRDS2 {
		g.seqLo = NewSequencer2(store, "ert")
		g.seqMid = NewSequencer2(store, "lps")
		g.seqHi = NewSequencer2(store, "rft")
		g.biphaseLo = NewBiphaseEncoder(InternalSampleRate)
		g.biphaseMd = NewBiphaseEncoder(InternalSampleRate)
		g.biphaseHi = NewBiphaseEncoder(InternalSampleRate)
	}

	logDebug("generator initialized", "output_rate", cfg.OutputSampleRate, "rds2", cfg.EnableRDS2, "block_size", cfg.BlockSize)

	return g, nil
}

// nextSample returns the next biphase-shaped sample for the legacy
// channel, refilling its bit/pulse buffers from the Sequencer and
// Packer as they run dry.
func (g *Generator) nextSample() float64 {
	if g.bitPos >= len(g.bits) {
		g.bits = PackGroup(g.seq.Next())
		g.bitPos = 0
	}

	var out = g.nextFromBiphase(g.biphase, g.bits, &g.bitPos)

	return out
}

func (g *Generator) nextFromBiphase(enc *BiphaseEncoder, bits []bool, pos *int) float64 {
	// enc.outQueue caches the samples for the in-progress bit so this
	// is called once per internal sample, not once per bit.
	if enc.outQueue == nil || enc.outPos >= len(enc.outQueue) {
		if *pos >= len(bits) {
			return 0
		}

		enc.outQueue = enc.EncodeBit(BitValue(bits[*pos]))
		enc.outPos = 0
		*pos++
	}

	var v = enc.outQueue[enc.outPos]
	enc.outPos++

	return v
}

func (g *Generator) nextRDS2Sample(seq *Sequencer2, enc *BiphaseEncoder, bits *[]bool, pos *int) float64 {
	if *pos >= len(*bits) {
		*bits = PackGroup(seq.Next())
		*pos = 0
	}

	return g.nextFromBiphase(enc, *bits, pos)
}

// step advances the signal chain by one internal-rate sample and
// returns the output-rate samples the resampler completes with it
// (zero or one when decimating, since polyphase decimation doesn't
// emit one per input sample — callers should drain FillBlock instead
// of calling step directly in a hot loop).
func (g *Generator) step() []float64 {
	var carriers = g.osc.Next()

	var rdsSignal = carriers.RDS * g.nextSample()

	var rds2 = RDS2Signals{Enabled: g.cfg.EnableRDS2}
	if g.cfg.EnableRDS2 {
		rds2.Lo = carriers.RDS2Lo * g.nextRDS2Sample(g.seqLo, g.biphaseLo, &g.bitsLo, &g.bitPosL)
		rds2.Mid = carriers.RDS2Mid * g.nextRDS2Sample(g.seqMid, g.biphaseMd, &g.bitsMd, &g.bitPosM)
		rds2.Hi = carriers.RDS2Hi * g.nextRDS2Sample(g.seqHi, g.biphaseHi, &g.bitsHi, &g.bitPosH)
	}

	var sample = g.cfg.Mixer.Mix(carriers, rdsSignal, rds2, g.store.VolumeFraction())

	return g.rs.Push(sample)
}

// FillBlock generates enough internal-rate samples to produce
// exactly n output-rate samples and returns them.
func (g *Generator) FillBlock(n int) []float64 {
	var out = make([]float64, 0, n)

	for len(out) < n {
		out = append(out, g.step()...)
	}

	if len(out) > n {
		out = out[:n]
	}

	return out
}

// Run drives the generator until ctx is canceled, writing BlockSize
// output samples to sink on every iteration.
func (g *Generator) Run(ctx context.Context, sink Sink) error {
	var blockSize = g.cfg.BlockSize
	if blockSize <= 0 {
		blockSize = 2048
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var block = g.FillBlock(blockSize)
		if err := sink.WriteSamples(block); err != nil {
			return err
		}

		logXmit("output block written", "samples", len(block))
	}
}

// blockInterval is how long one BlockSize-sample block represents at
// the configured output rate — useful for callers pacing a
// file-backed Sink that has no natural backpressure.
func (cfg GeneratorConfig) blockInterval() time.Duration {
	return time.Duration(float64(cfg.BlockSize) / cfg.OutputSampleRate * float64(time.Second))
}
