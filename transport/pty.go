package transport

import (
	"fmt"
	"os"

	"github.com/creack/pty"
)

// PTYTransport serves control commands over a pseudo-terminal, so a
// MiniRDS instance can be driven from a terminal emulator or a serial
// console the way a real hardware RDS encoder's front panel UART
// would be — the same ptmx/pts pair the teacher's kiss.go opens for
// its pseudo-terminal KISS TNC interface via pty.Open(), kept open on
// the master side here and served with the same line reader as the
// other transports instead of KISS framing.
type PTYTransport struct {
	master    *os.File
	slave     *os.File
	slaveName string
}

// OpenPTY allocates a new pty pair and returns a transport serving
// the master side. SlaveName returns the path a client should open
// (e.g. a terminal emulator, or `cat` for a quick manual test).
func OpenPTY() (*PTYTransport, error) {
	var ptmx, pts, err = pty.Open()
	if err != nil {
		return nil, fmt.Errorf("transport: open pty: %w", err)
	}

	return &PTYTransport{master: ptmx, slave: pts, slaveName: pts.Name()}, nil
}

// SlaveName returns the path of the pty's slave side.
func (t *PTYTransport) SlaveName() string {
	return t.slaveName
}

// Serve processes lines from the pty's master side until it's closed.
func (t *PTYTransport) Serve(handle Handler) error {
	return ServeLines(t.master, t.master, handle)
}

// Close releases both sides of the pty.
func (t *PTYTransport) Close() error {
	var err = t.master.Close()
	if slaveErr := t.slave.Close(); slaveErr != nil && err == nil {
		err = slaveErr
	}

	return err
}
