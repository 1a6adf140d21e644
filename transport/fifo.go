package transport

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// FIFOTransport serves control commands from a named pipe, grounded
// on the teacher's ptt.go use of golang.org/x/sys/unix for direct
// syscalls rather than a higher-level wrapper. A FIFO has no natural
// reply channel (nothing reads the writer's own pipe back), so
// replies are discarded rather than echoed (rds.Apply still logs each
// rejected command) — fine for the intended use,
// a shell redirecting text into the pipe with `>`.
type FIFOTransport struct {
	path string
}

// NewFIFOTransport creates (if needed) and wraps the named pipe at
// path.
func NewFIFOTransport(path string) (*FIFOTransport, error) {
	var err = unix.Mkfifo(path, 0o600)
	if err != nil && !os.IsExist(err) {
		return nil, fmt.Errorf("transport: mkfifo %s: %w", path, err)
	}

	return &FIFOTransport{path: path}, nil
}

// Serve opens the FIFO for reading and processes lines with handle
// until the writing end closes, then reopens and repeats — a FIFO
// reader sees EOF every time the last writer closes, not just once,
// so a single open/Scan pass would silently stop serving after the
// first client disconnects.
func (t *FIFOTransport) Serve(handle Handler) error {
	for {
		var f, err = os.OpenFile(t.path, os.O_RDONLY, 0)
		if err != nil {
			return fmt.Errorf("transport: open fifo %s: %w", t.path, err)
		}

		if err := ServeLines(f, nil, handle); err != nil {
			f.Close()

			return err
		}

		f.Close()
	}
}

// Path returns the filesystem path of the FIFO.
func (t *FIFOTransport) Path() string {
	return t.path
}
