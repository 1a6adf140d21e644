package rds

// Mixer sums the pilot, legacy RDS and optional RDS2 subcarriers into
// one composite baseband sample, grounded on the teacher's gen_ms.go
// mark/space summing idiom in dsp.go (there: summing two AFSK tones
// at fixed relative levels; here: summing up to five carriers at
// fixed relative injection levels, same shape).
type Mixer struct {
	PilotLevel float64
	RDSLevel   float64
	RDS2Level  float64
}

// DefaultMixer returns the injection levels §4.E names explicitly:
// k_pilot=0.08, k_rds=0.045, and k_rds2 at +0 dB relative to RDS (i.e.
// equal to k_rds) per subcarrier.
func DefaultMixer() Mixer {
	return Mixer{
		PilotLevel: 0.08,
		RDSLevel:   0.045,
		RDS2Level:  0.045,
	}
}

// RDS2Signals holds one sample of each active RDS2 subcarrier's
// biphase-shaped baseband, already multiplied onto its own carrier —
// Mix only needs to sum them.
type RDS2Signals struct {
	Enabled bool
	Lo      float64
	Mid     float64
	Hi      float64
}

// Mix combines one sample of every carrier into a single MPX sample,
// then applies the master volume V (§4.E's "mpx = V * (...)" formula).
// rdsSignal is the legacy 57 kHz channel's shaped baseband, already
// multiplied by carriers.RDS; rds2 carries the same for the three
// RDS2 subcarriers. volume is the lock-free atomic read of
// Store.VolumeFraction, passed in rather than read here so Mixer
// itself stays a pure value with no Store dependency.
func (m Mixer) Mix(carriers Carriers, rdsSignal float64, rds2 RDS2Signals, volume float64) float64 {
	var sample = m.PilotLevel*carriers.Pilot + m.RDSLevel*rdsSignal

	if rds2.Enabled {
		sample += m.RDS2Level * rds2.Lo
		sample += m.RDS2Level * rds2.Mid
		sample += m.RDS2Level * rds2.Hi
	}

	return volume * sample
}
