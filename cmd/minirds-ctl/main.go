// Command minirds-ctl is a small test client for a running minirds
// daemon's control transport, grounded on the teacher's kissutil.go
// (itself described there as "the starting point for an application
// that uses a KISS TNC"): connect to a TCP or pty endpoint, send
// lines from stdin or the command line, print replies.
package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
)

func main() {
	var tcpAddr = pflag.StringP("tcp", "c", "", "Connect to a minirds control TCP address (e.g. localhost:8750).")
	var ptyPath = pflag.StringP("pty", "p", "", "Connect to a minirds control pty slave path.")
	var fifoPath = pflag.StringP("fifo", "f", "", "Write commands to a minirds control FIFO.")
	var oneShot = pflag.StringP("send", "s", "", "Send a single command and exit, instead of reading stdin.")
	var timestampFormat = pflag.StringP("timestamp-format", "T", "", "Precede each reply with a 'strftime' format time stamp.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "minirds-ctl - send control commands to a running minirds daemon.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: minirds-ctl [--tcp addr | --pty path | --fifo path] [--send CMD]\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()

		return
	}

	var conn io.ReadWriteCloser
	var err error

	switch {
	case *tcpAddr != "":
		conn, err = net.Dial("tcp", *tcpAddr)
	case *ptyPath != "":
		conn, err = os.OpenFile(*ptyPath, os.O_RDWR, 0)
	case *fifoPath != "":
		conn, err = os.OpenFile(*fifoPath, os.O_WRONLY, 0)
	default:
		fmt.Fprintln(os.Stderr, "one of --tcp, --pty or --fifo is required")
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "minirds-ctl: connect: %v\n", err)
		os.Exit(1)
	}

	defer conn.Close()

	var stamper *strftime.Strftime

	if *timestampFormat != "" {
		var s, fmtErr = strftime.New(*timestampFormat)
		if fmtErr != nil {
			fmt.Fprintf(os.Stderr, "minirds-ctl: bad --timestamp-format: %v\n", fmtErr)
			os.Exit(1)
		}

		stamper = s
	}

	if *oneShot != "" {
		sendLine(conn, *oneShot)
		printReplies(conn, stamper, 1)

		return
	}

	var scanner = bufio.NewScanner(os.Stdin)

	go printReplies(conn, stamper, 0)

	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sendLine(conn, line)
	}
}

func sendLine(w io.Writer, line string) {
	fmt.Fprintln(w, line)
}

// printReplies copies every line the other end sends back to stdout,
// optionally prefixed with a strftime-formatted timestamp (the same
// --timestamp-format option, and the same "Go's formatting is not
// strftime-y" caveat, as the teacher's kissutil.go), until the
// connection closes or, when limit is positive, limit lines have been
// printed — a FIFO-backed conn has nothing to read and returns
// immediately, which is fine since FIFOTransport never replies.
func printReplies(r io.Reader, stamper *strftime.Strftime, limit int) {
	var scanner = bufio.NewScanner(r)

	for n := 0; (limit <= 0 || n < limit) && scanner.Scan(); n++ {
		if stamper != nil {
			fmt.Printf("[%s] %s\n", stamper.FormatString(time.Now()), scanner.Text())
		} else {
			fmt.Println(scanner.Text())
		}
	}
}
