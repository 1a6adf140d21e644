package rds

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Control command parsing (component H), grounded on the teacher's
// kissutil.go line-oriented command tokenizer: split on whitespace,
// switch on an uppercase verb, reject anything unrecognized without
// touching state. Store's own mutex (pistate.go) is what actually
// makes concurrent transports safe to call Apply from, so control.go
// itself holds no locks — it is a pure parse-and-dispatch layer.

// Apply parses one control line and applies it to store. It returns
// ErrMalformedCommand for unparseable input, or whatever the
// underlying setter returned (ErrOutOfRange, ErrAFListFull, ...) for
// a well-formed but invalid command. Either way the line is fully
// consumed; callers should move on to the next line rather than
// retry.
func Apply(store *Store, line string) error {
	var err = apply(store, line)
	if err != nil {
		logError("control command rejected", "line", line, "err", err)
	}

	return err
}

func apply(store *Store, line string) error {
	var fields = strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	var verb = strings.ToUpper(fields[0])
	var args = fields[1:]
	var rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	logRecv("control command received", "verb", verb)

	switch verb {
	case "PI":
		if len(args) != 1 {
			return ErrMalformedCommand
		}

		var pi, err = strconv.ParseUint(args[0], 16, 16)
		if err != nil {
			return ErrMalformedCommand
		}

		store.SetPI(uint16(pi))

		return nil

	case "PS":
		store.SetPS(rest)

		return nil

	case "RT":
		store.SetRT(rest, true)

		return nil

	case "PTY":
		if len(args) != 1 {
			return ErrMalformedCommand
		}

		var n, err = strconv.Atoi(args[0])
		if err != nil {
			return ErrMalformedCommand
		}

		return store.SetPTY(n)

	case "PTYN":
		store.SetPTYN(rest)

		return nil

	case "TP":
		return applyFlag(args, store.SetTP)

	case "TA":
		return applyFlag(args, store.SetTA)

	case "MS":
		return applyMS(args, store.SetMS)

	case "DI":
		return applyFlag(args, store.SetDI)

	case "LPS":
		store.SetLPS(rest)

		return nil

	case "ERT":
		// §4.H's grammar is "ERT text" with no separate charset
		// argument; the character-set indicator the data model
		// carries (§3) defaults to 0 (UTF-8/Basic Latin, matching
		// what Xlat already translates into) for text set this way.
		store.SetERT(rest, 0)

		return nil

	case "AF":
		if len(args) != 1 {
			return ErrMalformedCommand
		}

		var freq, err = strconv.ParseFloat(args[0], 64)
		if err != nil {
			return ErrMalformedCommand
		}

		return store.AddAF(freq)

	case "AFC":
		store.ClearAF()

		return nil

	case "RFT":
		if len(args) != 1 {
			return ErrMalformedCommand
		}

		var data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedCommand, err)
		}

		store.SetRFTImage(data)
		logInfo("RFT image loaded", "path", args[0], "bytes", len(data))

		return nil

	case "VOL":
		if len(args) != 1 {
			return ErrMalformedCommand
		}

		var n, err = strconv.Atoi(args[0])
		if err != nil {
			return ErrMalformedCommand
		}

		return store.SetVolume(n)

	case "RESET":
		store.Reset()

		return nil

	case "RTP+":
		return applyRTPlus(store, args)

	case "RTPF":
		if len(args) != 2 {
			return ErrMalformedCommand
		}

		var running, err1 = strconv.ParseBool(args[0])
		var toggle, err2 = strconv.ParseBool(args[1])

		if err1 != nil || err2 != nil {
			return ErrMalformedCommand
		}

		store.SetRTPlusFlags(running, toggle)

		return nil

	default:
		return ErrMalformedCommand
	}
}

// applyFlag parses a single-argument ON/OFF-style flag per §4.H's
// "TP {ON|OFF|0|1}" grammar: ON/OFF (case-insensitive) plus anything
// strconv.ParseBool already accepts (1/0/true/false/t/f).
func applyFlag(args []string, set func(bool)) error {
	if len(args) != 1 {
		return ErrMalformedCommand
	}

	var v, err = parseOnOff(args[0])
	if err != nil {
		return ErrMalformedCommand
	}

	set(v)

	return nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToUpper(s) {
	case "ON":
		return true, nil
	case "OFF":
		return false, nil
	default:
		return strconv.ParseBool(s)
	}
}

// applyMS parses "MS {Music|Speech|0|1}": Music/Speech spelled out, or
// ParseBool's usual 1/0/true/false forms. MS's convention (unlike the
// other flags) is textual first per §4.H, so it gets its own parser
// rather than reusing applyFlag's ON/OFF form.
func applyMS(args []string, set func(bool)) error {
	if len(args) != 1 {
		return ErrMalformedCommand
	}

	switch strings.ToUpper(args[0]) {
	case "MUSIC":
		set(true)

		return nil

	case "SPEECH":
		set(false)

		return nil

	default:
		var v, err = strconv.ParseBool(args[0])
		if err != nil {
			return ErrMalformedCommand
		}

		set(v)

		return nil
	}
}

// applyRTPlus parses "RTP+ type1 start1 len1 type2 start2 len2".
func applyRTPlus(store *Store, args []string) error {
	if len(args) != 6 {
		return ErrMalformedCommand
	}

	var vals [6]int

	for i, a := range args {
		var v, err = strconv.Atoi(a)
		if err != nil {
			return ErrMalformedCommand
		}

		vals[i] = v
	}

	var tags = RTPlusTags{
		Tag1: RTPlusTag{Type: uint8(vals[0]), Start: uint8(vals[1]), Len: uint8(vals[2])},
		Tag2: RTPlusTag{Type: uint8(vals[3]), Start: uint8(vals[4]), Len: uint8(vals[5])},
	}

	return store.SetRTPlusTags(tags)
}

// FormatError renders an Apply error the way a control transport
// should echo it back to its caller, e.g. over the TCP or FIFO
// transport's reply channel.
func FormatError(line string, err error) string {
	if err == nil {
		return "OK"
	}

	return fmt.Sprintf("ERR %s: %v", line, err)
}
