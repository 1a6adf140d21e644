// Package transport implements the control-command carriers MiniRDS
// accepts: a named pipe, a TCP listener and an optional pty, grounded
// on the teacher's kissutil.go dual TCP-or-serial-port connection
// idiom (same "accept a byte stream, split it into lines, hand each
// line to a command handler" loop, generalized from KISS framing to
// the plain-text grammar rds.Apply parses).
package transport

import (
	"bufio"
	"io"
	"strings"

	"github.com/kc2vhf/minirds/rds"
)

// Handler applies one control line to the shared Store and returns
// the reply text to write back, if the transport supports replies.
type Handler func(line string) string

// NewHandler builds a Handler that calls rds.Apply against store and
// formats the result with rds.FormatError.
func NewHandler(store *rds.Store) Handler {
	return func(line string) string {
		var err = rds.Apply(store, line)

		return rds.FormatError(line, err)
	}
}

// ServeLines reads newline-terminated commands from r (tolerating a
// trailing \r, the way kissutil.go's text-mode reader tolerates
// either line ending from a serial TNC) and writes each reply to w.
// Blank lines and lines starting with # are ignored per the control
// transport's framing contract. It returns when r is exhausted or
// returns an error other than EOF.
func ServeLines(r io.Reader, w io.Writer, handle Handler) error {
	var scanner = bufio.NewScanner(r)

	for scanner.Scan() {
		var line = strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var reply = handle(line)

		if w != nil {
			if _, err := io.WriteString(w, reply+"\n"); err != nil {
				return err
			}
		}
	}

	return scanner.Err()
}
