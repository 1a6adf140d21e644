package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioSink streams samples to the default host output
// device in real time, mirroring the teacher's audio_open/audio_put
// pair: Open acquires the device once, WriteSamples pushes one block
// at a time, Close releases it. portaudio.Stream already buffers and
// paces playback against the device clock, so unlike the teacher's
// OSS/ALSA code this needs no manual ring-buffer bookkeeping.
type PortAudioSink struct {
	stream     *portaudio.Stream
	sampleRate float64
	buf        []float32
}

// OpenPortAudioSink opens the default output device at sampleRate with
// two channels: the mono composite MPX signal duplicated onto left
// and right, per §4.G/§6's stereo-interleaved sink contract (MiniRDS
// emits a stereo pilot but carries no distinct per-channel program
// audio of its own).
func OpenPortAudioSink(sampleRate float64) (*PortAudioSink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: portaudio init: %w", err)
	}

	var s = &PortAudioSink{sampleRate: sampleRate}

	var stream, err = portaudio.OpenDefaultStream(0, 2, sampleRate, 0, &s.buf)
	if err != nil {
		_ = portaudio.Terminate()

		return nil, fmt.Errorf("audio: open stream: %w", err)
	}

	s.stream = stream

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("audio: start stream: %w", err)
	}

	return s, nil
}

// WriteSamples duplicates each mono sample onto both channels and
// writes one interleaved stereo block to the stream, resizing the
// portaudio callback buffer to match block size the first time a
// different size shows up.
func (s *PortAudioSink) WriteSamples(samples []float64) error {
	if len(s.buf) != len(samples)*2 {
		s.buf = make([]float32, len(samples)*2)
	}

	for i, v := range samples {
		var f = float32(v)
		s.buf[i*2] = f
		s.buf[i*2+1] = f
	}

	if err := s.stream.Write(); err != nil {
		return fmt.Errorf("audio: write: %w", err)
	}

	return nil
}

// Close stops the stream and releases the PortAudio library handle.
func (s *PortAudioSink) Close() error {
	var err = s.stream.Close()
	if tErr := portaudio.Terminate(); tErr != nil && err == nil {
		err = tErr
	}

	return err
}
