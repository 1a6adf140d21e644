// Command minirds is the MiniRDS daemon: it generates a composite FM
// MPX baseband signal carrying RDS (and optionally RDS2) data and
// writes it to an audio output, while accepting control commands over
// one or more transports. The flag set and startup sequence follow
// the teacher's cmd/direwolf/main.go: pflag.StringP/BoolP/IntP option
// declarations, a custom pflag.Usage, then a strictly sequential
// series of subsystem-init calls before the long-running loop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/kc2vhf/minirds/audio"
	"github.com/kc2vhf/minirds/gpio"
	"github.com/kc2vhf/minirds/rds"
	"github.com/kc2vhf/minirds/transport"
)

// Exit codes per the CLI contract (§6): 0 success, 1 audio-init
// failure, 2 resampler-init failure, 3 RDS-init failure. Malformed
// --pi/--pty values and a control transport that won't open both
// count as RDS-init failure: they happen while bringing up the RDS
// engine and its control surface, before any audio flows.
const (
	exitOK            = 0
	exitAudioInit     = 1
	exitResamplerInit = 2
	exitRDSInit       = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	var pi = pflag.StringP("pi", "i", "1000", "Programme Identification code, hex.")
	var ps = pflag.StringP("ps", "s", "MINIRDS", "Initial Programme Service name (8 glyphs).")
	var rt = pflag.StringP("rt", "r", "MiniRDS: Software RDS encoder", "Initial RadioText (up to 64 glyphs).")
	var pty = pflag.IntP("pty", "y", 0, "Programme Type code, 0..31.")
	var tp = pflag.BoolP("tp", "T", false, "Traffic Programme flag.")
	var outputRate = pflag.Float64P("mpx", "m", 192000, "Output MPX sample rate, Hz.")
	var wait = pflag.IntP("wait", "w", 0, "0|1: when 1, hold the generator loop until the first control command arrives.")
	var rds2 = pflag.BoolP("rds2", "2", false, "Enable RDS2 subcarriers (eRT/LPS/RFT).")
	var wavFile = pflag.StringP("wav-out", "o", "", "Write raw 16-bit PCM to this file instead of a live audio device.")
	var ctlPath = pflag.StringP("ctl", "f", "", "Open a one-way control transport (named pipe/FIFO) at this path.")
	var port = pflag.IntP("port", "c", 0, "Listen for control commands on this TCP port on localhost (0 disables).")
	var rftPath = pflag.StringP("rft", "F", "", "Path to a station-logo image to load as the initial RFT payload (RDS2 only).")
	var announce = pflag.BoolP("announce", "d", false, "Announce the TCP control port via DNS-SD.")
	var usePTY = pflag.BoolP("use-pty", "p", false, "Serve control commands on a newly allocated pseudo-terminal.")
	var gpioTALine = pflag.String("gpio-ta-line", "", "chip:offset of a GPIO line that forces TA while asserted.")
	var logLevel = pflag.StringP("log-level", "l", "info", "Log level: debug, info, warn, error.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "minirds - a software RDS/RDS2 MPX baseband generator.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: minirds [options]\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()

		return exitOK
	}

	setLogLevel(*logLevel)

	if *wait != 0 && *wait != 1 {
		rds.Logger.Error("invalid --wait, must be 0 or 1", "value", *wait)

		return exitRDSInit
	}

	var piVal, piErr = strconv.ParseUint(*pi, 16, 16)
	if piErr != nil {
		rds.Logger.Error("invalid --pi", "value", *pi, "err", piErr)

		return exitRDSInit
	}

	var store = rds.NewStore()
	store.SetPI(uint16(piVal))
	store.SetPS(*ps)
	store.SetRT(*rt, true)

	if err := store.SetPTY(*pty); err != nil {
		rds.Logger.Error("invalid --pty", "value", *pty, "err", err)

		return exitRDSInit
	}

	store.SetTP(*tp)

	if *rftPath != "" {
		if !*rds2 {
			rds.Logger.Warn("--rft given without --rds2, ignoring")
		} else {
			var data, err = os.ReadFile(*rftPath)
			if err != nil {
				rds.Logger.Error("failed to read --rft image", "path", *rftPath, "err", err)

				return exitRDSInit
			}

			store.SetRFTImage(data)
		}
	}

	var sink rds.Sink
	var closeSink func() error

	if *wavFile != "" {
		var f, err = os.Create(*wavFile)
		if err != nil {
			rds.Logger.Error("failed to open wav-out", "path", *wavFile, "err", err)

			return exitAudioInit
		}

		sink = audio.NewWriterSink(f)
		closeSink = f.Close
	} else {
		var pa, err = audio.OpenPortAudioSink(*outputRate)
		if err != nil {
			rds.Logger.Error("failed to open audio device", "err", err)

			return exitAudioInit
		}

		sink = pa
		closeSink = pa.Close
	}

	defer closeSink() //nolint:errcheck

	var ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	var firstCmd = make(chan struct{})

	if err := startTransports(ctx, store, *ctlPath, *port, *usePTY, *announce, firstCmd); err != nil {
		rds.Logger.Error("failed to start control transport", "err", err)

		return exitRDSInit
	}

	if *gpioTALine != "" {
		var chip, offset, err = gpio.ParseChipOffset(*gpioTALine)
		if err != nil {
			rds.Logger.Error("invalid --gpio-ta-line", "err", err)

			return exitRDSInit
		}

		var watch, watchErr = gpio.Watch(store, chip, offset)
		if watchErr != nil {
			rds.Logger.Error("failed to watch TA override line", "err", watchErr)

			return exitRDSInit
		}

		defer watch.Close(store) //nolint:errcheck
	}

	var sigCh = make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		rds.Logger.Info("shutting down")
		cancel()
	}()

	var cfg = rds.DefaultGeneratorConfig()
	cfg.OutputSampleRate = *outputRate
	cfg.EnableRDS2 = *rds2

	var gen, genErr = rds.NewGenerator(store, cfg)
	if genErr != nil {
		rds.Logger.Error("failed to initialize resampler", "err", genErr)

		return exitResamplerInit
	}

	if *wait == 1 {
		if *ctlPath == "" && *port == 0 && !*usePTY {
			rds.Logger.Warn("--wait 1 given with no control transport configured, starting immediately")
		} else {
			rds.Logger.Info("waiting for the first control command before starting")

			select {
			case <-firstCmd:
			case <-ctx.Done():
				return exitOK
			}
		}
	}

	rds.Logger.Info("minirds started", "pi", *pi, "ps", *ps, "rds2", *rds2, "output_rate", *outputRate)

	if err := gen.Run(ctx, sink); err != nil && err != context.Canceled {
		rds.Logger.Error("generator stopped", "err", err)

		return exitAudioInit
	}

	return exitOK
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		rds.Logger.SetLevel(log.DebugLevel)
	case "warn":
		rds.Logger.SetLevel(log.WarnLevel)
	case "error":
		rds.Logger.SetLevel(log.ErrorLevel)
	default:
		rds.Logger.SetLevel(log.InfoLevel)
	}
}

func startTransports(ctx context.Context, store *rds.Store, ctlPath string, port int, usePTY, announce bool, firstCmd chan struct{}) error {
	var notifyOnce sync.Once
	var inner = transport.NewHandler(store)
	var handle = transport.Handler(func(line string) string {
		notifyOnce.Do(func() { close(firstCmd) })

		return inner(line)
	})

	if ctlPath != "" {
		var fifo, err = transport.NewFIFOTransport(ctlPath)
		if err != nil {
			return err
		}

		go func() {
			if err := fifo.Serve(handle); err != nil {
				rds.Logger.Error("fifo transport stopped", "err", err)
			}
		}()
	}

	if port != 0 {
		var tcp, err = transport.ListenTCP(fmt.Sprintf("localhost:%d", port))
		if err != nil {
			return err
		}

		go func() {
			if err := tcp.Serve(handle); err != nil {
				rds.Logger.Debug("tcp transport stopped", "err", err)
			}
		}()

		if announce {
			if err := tcp.Announce(ctx, "MiniRDS"); err != nil {
				rds.Logger.Error("dns-sd announce failed", "err", err)
			}
		}
	}

	if usePTY {
		var pt, err = transport.OpenPTY()
		if err != nil {
			return err
		}

		rds.Logger.Info("control pty ready", "path", pt.SlaveName())

		go func() {
			if err := pt.Serve(handle); err != nil {
				rds.Logger.Debug("pty transport stopped", "err", err)
			}
		}()
	}

	return nil
}
