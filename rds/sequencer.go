package rds

import (
	"strings"
	"time"
)

// Sequencer schedules which group type to emit next and advances the
// segment-address counters each group type owns, grounded on the
// teacher's tq.go transmit-queue idiom (a small struct holding
// rotation state behind a single, cheaply callable Next method — tq.go
// rotates frames off a priority queue; Sequencer rotates through a
// fixed weighted table since RDS's group schedule is static, not
// queued).
type Sequencer struct {
	store *Store

	step int // position in the weighted schedule

	psSeg   int
	rtSeg   int
	ptynSeg int
	afIdx   int

	// ctLastMinute is the last MJD*1440+hour*60+minute value a 4A
	// group was emitted for, -1 before the first emission. §3's "once
	// per minute boundary crossing" requirement is checked against
	// this rather than emitting 4A every time its schedule slot comes
	// up.
	ctLastMinute int64

	clock func() time.Time
}

// defaultSchedule is one cycle of group types: 0A appears most often
// (PS/AF/flags are the fields receivers poll first), 2A next most,
// with 4A, 10A and 3A filled in at lower rates. Indices are group
// type codes; -1 marks "3A" (handled separately since it shares type
// code 3 with nothing else MiniRDS emits).
var defaultSchedule = []int{0, 0, 2, 0, 2, 4, 0, 0, 2, 10, 0, 2, -1, 0, 2, 0}

// NewSequencer returns a Sequencer reading from store, using the
// system clock for 4A Clock-Time groups.
func NewSequencer(store *Store) *Sequencer {
	return &Sequencer{store: store, clock: time.Now, ctLastMinute: -1} //nolint:exhaustruct
}

// Next returns the raw (pre-checkword) message words for the next
// group in the schedule. Optional-field group types (4A/10A/3A) fall
// back to 0A when their field isn't due or populated, per §4.C: "if
// an optional field is empty, its group is skipped and another
// scheduled group fills the slot."
func (s *Sequencer) Next() [4]uint16 {
	var p = s.store.Snapshot()
	var kind = defaultSchedule[s.step%len(defaultSchedule)]
	s.step++

	switch kind {
	case 0:
		return s.build0A(p)
	case 2:
		var g = buildGroup2A(p, s.rtSeg)
		s.rtSeg = (s.rtSeg + 1) % 16

		return g
	case 4:
		if ct, due := s.dueCT(); due {
			return buildGroup4A(p, ct)
		}

		return s.build0A(p)
	case 10:
		if strings.TrimSpace(p.PTYN) == "" {
			return s.build0A(p)
		}

		var g = buildGroup10A(p, s.ptynSeg)
		s.ptynSeg = (s.ptynSeg + 1) % 2

		return g
	case -1:
		if !p.RTPlusRun {
			return s.build0A(p)
		}

		return buildGroup3A(p)
	default:
		return s.build0A(p)
	}
}

// build0A builds a 0A group and advances its segment/AF counters; also
// used as the fallback slot-filler when an optional group type's
// field isn't due or populated.
func (s *Sequencer) build0A(p Params) [4]uint16 {
	var g = buildGroup0A(p, s.psSeg, s.afIdx)
	s.psSeg = (s.psSeg + 1) % 4

	if len(p.AF) > 0 {
		s.afIdx = (s.afIdx + 1) % len(p.AF)
	}

	return g
}

// dueCT reports whether a 4A group is due: true the first time it's
// called and again each time the wall clock crosses into a new
// minute, false otherwise (§3: "once per minute boundary crossing").
func (s *Sequencer) dueCT() (ctFields, bool) {
	var ct = ctFieldsNow(s.clock())
	var key = int64(ct.MJD)*1440 + int64(ct.Hour)*60 + int64(ct.Minute)

	if key == s.ctLastMinute {
		return ct, false
	}

	s.ctLastMinute = key

	return ct, true
}

// ctFieldsNow converts a wall-clock time to the ctFields wire layout:
// modified Julian day plus UTC hour/minute and local offset, per IEC
// 62106 Annex G's MJD formula.
func ctFieldsNow(t time.Time) ctFields {
	var utc = t.UTC()
	var y, m, d = utc.Date()

	var yy = y - 1900
	var mm = int(m)

	if mm <= 2 {
		yy--
		mm += 12
	}

	var mjd = 14956 + d + int(365.25*float64(yy)) + int(30.6001*float64(mm+1))

	_, offset := t.Zone()
	var offsetHalf = offset / 1800
	var negative = offsetHalf < 0

	if negative {
		offsetHalf = -offsetHalf
	}

	return ctFields{
		MJD:        uint32(mjd),
		Hour:       uint8(utc.Hour()),
		Minute:     uint8(utc.Minute()),
		OffsetSign: negative,
		OffsetHalf: uint8(offsetHalf),
	}
}
