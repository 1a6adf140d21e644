package rds

import (
	"sync"
	"sync/atomic"
)

// RTPlusTag identifies one RT+ tagged substring: a content type code
// and the [start, start+len) run of characters in RT it covers.
type RTPlusTag struct {
	Type  uint8
	Start uint8
	Len   uint8
}

// RTPlusTags holds the two tag slots RT+ supports per group.
type RTPlusTags struct {
	Tag1 RTPlusTag
	Tag2 RTPlusTag
}

// RFTImage is the currently-loaded RDS2 File Transfer payload: the raw
// image bytes plus the CRC-32 of the whole file, computed once at load
// time so every segment announcement can reference it without
// re-hashing megabytes of data per group.
type RFTImage struct {
	Bytes []byte
	CRC32 uint32
}

// Params is a read-only snapshot of the Program Information Store,
// returned by Store.Snapshot. It is a plain copy safe to read without
// further synchronization; RFT is excluded (see Store.RFT).
type Params struct {
	PI   uint16
	PS   string
	RT   string
	RTAB bool

	PTY     uint8
	PTYN    string
	PTYNAB  bool
	TP      bool
	TA      bool
	MS      bool
	DI      bool
	AF      []float64
	LPS     string
	ERT     string
	ERTCode uint8

	RTPlus      RTPlusTags
	RTPlusRun   bool
	RTPlusTogl  bool
	TAOverriden bool
}

// Store is the Program Information Store (component D): the single
// mutable record of RDS parameters. Exactly one mutex protects it; the
// generator goroutine holds it only long enough to copy out the
// fields needed for one group (the "mutex-guarded" discipline of
// §5, alternative 2 — simpler than a hand-rolled seqlock and cheap
// enough since Params is small). The RFT image is excluded from that
// lock: it is swapped behind an atomic.Pointer so a multi-megabyte
// image replacement never makes the generator wait.
type Store struct {
	mu sync.Mutex

	pi  uint16
	ps  string
	rt  string
	rtAB bool

	pty    uint8
	ptyn   string
	ptynAB bool

	tp, ta, ms, di bool
	taOverride     bool // hardware override (component M) forcing TA high

	af []float64

	lps string

	ert     string
	ertCode uint8

	rtplus     RTPlusTags
	rtplusRun  bool
	rtplusTogl bool

	rft atomic.Pointer[RFTImage]

	// volume is the master volume in percent (0..100), read by the
	// mixer as a lock-free atomic load every sample (§4.E) so turning
	// the volume down never makes the generator wait on Store's mutex.
	volume atomic.Int32
}

// NewStore returns a Store with every text field at its padded empty
// value and no AF entries.
func NewStore() *Store {
	var s = &Store{
		ps:   PadGlyphs("", 8),
		rt:   PadGlyphs("", 64),
		ptyn: PadGlyphs("", 8),
	}
	s.rft.Store(&RFTImage{}) //nolint:exhaustruct
	s.volume.Store(100)

	return s
}

// Snapshot returns a consistent copy of every field except RFT. Safe
// to call from any goroutine (e.g. a GUI monitor), per §5's
// get_params() contract.
func (s *Store) Snapshot() Params {
	s.mu.Lock()
	defer s.mu.Unlock()

	var af = make([]float64, len(s.af))
	copy(af, s.af)

	var ta = s.ta
	if s.taOverride {
		ta = true
	}

	return Params{
		PI:          s.pi,
		PS:          s.ps,
		RT:          s.rt,
		RTAB:        s.rtAB,
		PTY:         s.pty,
		PTYN:        s.ptyn,
		PTYNAB:      s.ptynAB,
		TP:          s.tp,
		TA:          ta,
		MS:          s.ms,
		DI:          s.di,
		AF:          af,
		LPS:         s.lps,
		ERT:         s.ert,
		ERTCode:     s.ertCode,
		RTPlus:      s.rtplus,
		RTPlusRun:   s.rtplusRun,
		RTPlusTogl:  s.rtplusTogl,
		TAOverriden: s.taOverride,
	}
}

// RFT returns the currently-loaded RFT image. The pointer itself is
// swapped atomically by SetRFTImage; callers should treat the
// returned value as immutable.
func (s *Store) RFT() *RFTImage {
	return s.rft.Load()
}

// SetPI sets the Programme Identification code. PI has no invalid
// values within its 16-bit range, so this never fails.
func (s *Store) SetPI(pi uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pi = pi
}

// SetPS sets the 8-glyph Programme Service name. Text is translated
// to the RDS character set, then truncated or space-padded to exactly
// 8 glyphs; this always succeeds, per the testable property that
// set_ps never fails for any ASCII string.
func (s *Store) SetPS(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ps = PadGlyphs(Xlat(text), 8)
}

// SetRT sets RadioText, translating and padding to exactly 64 glyphs.
// When abAuto is true (the normal case, used by the control parser),
// the RT A/B toggle flips iff the padded text actually differs from
// what was stored; when false, the caller is re-asserting the same
// logical text and the toggle is left untouched.
func (s *Store) SetRT(text string, abAuto bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var padded = PadGlyphs(Xlat(text), 64)
	if abAuto && padded != s.rt {
		s.rtAB = !s.rtAB
	}

	s.rt = padded
}

// SetPTY sets the 5-bit Programme Type code (0..31). Out-of-range
// values are rejected and the previous value retained.
func (s *Store) SetPTY(n int) error {
	if n < 0 || n > 31 {
		return ErrOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pty = uint8(n)

	return nil
}

// SetPTYN sets the 8-glyph PTY Name, with the same translate/pad
// behavior as SetPS. The PTYN A/B toggle flips iff the padded text
// changed.
func (s *Store) SetPTYN(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var padded = PadGlyphs(Xlat(text), 8)
	if padded != s.ptyn {
		s.ptynAB = !s.ptynAB
	}

	s.ptyn = padded
}

func (s *Store) SetTP(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tp = v
}

func (s *Store) SetTA(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ta = v
}

func (s *Store) SetMS(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ms = v
}

func (s *Store) SetDI(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.di = v
}

// SetTAOverride is called by the hardware override input (component
// M, a GPIO line). While asserted, Snapshot reports TA as true
// regardless of the stored TA value; on release it reports the
// stored value again untouched.
func (s *Store) SetTAOverride(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taOverride = v
}

// AddAF appends one Alternative Frequency, in MHz, to the AF list.
// Rejected (previous list retained) if freqMHz is outside
// 87.6..107.9 or the list already holds 25 entries.
func (s *Store) AddAF(freqMHz float64) error {
	if freqMHz < 87.6 || freqMHz > 107.9 {
		return ErrOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.af) >= 25 {
		return ErrAFListFull
	}

	s.af = append(s.af, freqMHz)

	return nil
}

// ClearAF empties the AF list.
func (s *Store) ClearAF() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.af = nil
}

// SetLPS sets the RDS2 Long PS field, translated and truncated to at
// most 32 glyphs. Unlike PS, LPS is not padded to a fixed width — it
// is "up to 32 glyphs" per the data model.
func (s *Store) SetLPS(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t = Xlat(text)
	if len(t) > 32 {
		t = t[:32]
	}

	s.lps = t
}

// SetERT sets the RDS2 enhanced RadioText field (up to 128 glyphs)
// along with its character-set indicator.
func (s *Store) SetERT(text string, charsetCode uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t = Xlat(text)
	if len(t) > 128 {
		t = t[:128]
	}

	s.ert = t
	s.ertCode = charsetCode
}

// SetRTPlusTags sets both RT+ tag tuples. Rejected in full (previous
// tags retained) if either tag violates start+len < 64.
func (s *Store) SetRTPlusTags(tags RTPlusTags) error {
	if int(tags.Tag1.Start)+int(tags.Tag1.Len) >= 64 {
		return ErrOutOfRange
	}

	if int(tags.Tag2.Start)+int(tags.Tag2.Len) >= 64 {
		return ErrOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rtplus = tags

	return nil
}

// SetRTPlusFlags sets the RT+ running and toggle flags directly; both
// are explicit (commanded), unlike RT/PTYN's auto-computed A/B bit.
func (s *Store) SetRTPlusFlags(running, toggle bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rtplusRun = running
	s.rtplusTogl = toggle
}

// SetRFTImage atomically replaces the RFT image with data, computing
// its CRC-32. The current transmission restarts from segment 0 —
// Sequencer2 reads RFT() fresh for every group and resets its own
// segment cursor when it sees a different image, so no cursor reset
// is needed here.
func (s *Store) SetRFTImage(data []byte) {
	var img = &RFTImage{
		Bytes: append([]byte(nil), data...),
		CRC32: crc32Of(data),
	}
	s.rft.Store(img)
}

// SetVolume sets the master volume in percent (0..100). Rejected
// (previous value retained) if n is out of range. Stored in an
// atomic.Int32 rather than behind Store's mutex: §4.E requires the
// mixer to read it lock-free once per sample, and a stale read by a
// few samples during a VOL command is harmless.
func (s *Store) SetVolume(n int) error {
	if n < 0 || n > 100 {
		return ErrOutOfRange
	}

	s.volume.Store(int32(n)) //nolint:gosec

	return nil
}

// VolumeFraction returns the current master volume scaled to [0,1],
// the form the mixer actually multiplies samples by.
func (s *Store) VolumeFraction() float64 {
	return float64(s.volume.Load()) / 100.0
}

// Reset restores every mutable RDS field to the value NewStore starts
// with. PI and the currently-loaded RFT image are left untouched:
// PI identifies the station rather than a transient on-air parameter,
// and dropping a multi-megabyte logo on every RESET would defeat the
// point of RFT's atomic-swap design. This is an explicit resolution
// of the control grammar's otherwise-undocumented RESET semantics.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ps = PadGlyphs("", 8)
	s.rt = PadGlyphs("", 64)
	s.rtAB = false

	s.pty = 0
	s.ptyn = PadGlyphs("", 8)
	s.ptynAB = false

	s.tp, s.ta, s.ms, s.di = false, false, false, false
	s.taOverride = false

	s.af = nil
	s.lps = ""
	s.ert = ""
	s.ertCode = 0

	s.rtplus = RTPlusTags{} //nolint:exhaustruct
	s.rtplusRun = false
	s.rtplusTogl = false

	s.volume.Store(100)
}
