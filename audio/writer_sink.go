package audio

import "io"

// WriterSink writes samples as signed 16-bit little-endian stereo PCM
// to an arbitrary io.Writer — a plain file, a pipe, or an in-memory
// buffer in tests — the same raw-bytes-out idiom as the teacher's
// audio_put, minus the device-specific framing.
type WriterSink struct {
	w   io.Writer
	buf []byte
}

// NewWriterSink wraps w. Samples are expected in [-1, 1] and are
// clipped before quantizing to int16.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteSamples quantizes samples to 16-bit stereo PCM (both channels
// identical, per §4.G) and writes them to the underlying writer.
func (s *WriterSink) WriteSamples(samples []float64) error {
	s.buf = PackStereoPCM(samples, s.buf)

	var _, err = s.w.Write(s.buf)

	return err
}
