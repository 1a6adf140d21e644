// Package audio provides the output backends a Generator renders MPX
// samples into (component J), grounded structurally on the teacher's
// audio.go device-open/write/close shape (there: one adev_s per OSS/ALSA
// device, opened in audio_open, drained in audio_get/put, closed in
// audio_close). Direwolf's own audio device code is cgo (ALSA/OSS via
// cgo headers), which this module's dependency set deliberately drops
// (see DESIGN.md); the realtime backend here uses the pack's
// gordonklaus/portaudio binding instead, which gets to the same place
// — an open host audio device fed a stream of samples — without cgo.
package audio

import "github.com/kc2vhf/minirds/rds"

// Sink is rds.Sink; redeclared here so callers that only import audio
// don't also need to import rds to name the type they're implementing.
type Sink = rds.Sink
