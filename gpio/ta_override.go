// Package gpio reads a hardware line that forces the Traffic
// Announcement flag (component M), grounded on the teacher's
// cm108.go GPIO-pin-as-hardware-control idiom (there: reading/writing
// USB audio CODEC GPIO lines to drive a PTT relay; here: watching a
// Linux GPIO character-device line for a panel switch forcing TA)
// using github.com/warthog618/go-gpiocdev instead of the teacher's
// cgo CM108 HID path, since MiniRDS's override input is a generic
// GPIO line rather than a specific USB chipset's sideband control.
package gpio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/warthog618/go-gpiocdev"

	"github.com/kc2vhf/minirds/rds"
)

// TAOverride watches one GPIO line and forces Store's TA flag while
// the line is asserted, restoring the caller's own TA value on
// release (Store itself tracks this via SetTAOverride rather than
// overwriting TA directly, so a command setting TA while the line is
// held doesn't get silently lost).
type TAOverride struct {
	line *gpiocdev.Line
}

// ParseChipOffset parses a "<chip>:<offset>" spec like "gpiochip0:17"
// as accepted by the --gpio-ta-line flag.
func ParseChipOffset(spec string) (chip string, offset int, err error) {
	var parts = strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("gpio: malformed chip:offset %q", spec)
	}

	var n, convErr = strconv.Atoi(parts[1])
	if convErr != nil {
		return "", 0, fmt.Errorf("gpio: malformed offset in %q: %w", spec, convErr)
	}

	return parts[0], n, nil
}

// Watch opens chip/offset as an input line with both-edge events and
// starts forwarding its level into store's TA override, until Close
// is called.
func Watch(store *rds.Store, chip string, offset int) (*TAOverride, error) {
	var t = &TAOverride{}

	var line, err = gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			store.SetTAOverride(evt.Type == gpiocdev.LineEventRisingEdge)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("gpio: request %s:%d: %w", chip, offset, err)
	}

	t.line = line

	var val, valErr = line.Value()
	if valErr == nil {
		store.SetTAOverride(val != 0)
	}

	return t, nil
}

// Close releases the GPIO line and clears any forced TA override.
func (t *TAOverride) Close(store *rds.Store) error {
	store.SetTAOverride(false)

	return t.line.Close()
}
