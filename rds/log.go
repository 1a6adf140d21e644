package rds

// Leveled logging, replacing the teacher's dw_printf/text_color_set
// taxonomy with github.com/charmbracelet/log. The six DW_COLOR_*
// levels collapse naturally onto Debug/Info/Warn/Error: Info covers
// what the teacher colored DW_COLOR_INFO/REC/DECODED, while XMIT
// (logXmit, called once per output block) logs at Debug. They are kept
// as distinct helper names below so call sites still read as an
// activity log rather than a bag of log.Info calls.

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the package-wide logger. Callers may replace it (e.g. to
// redirect to a file, or raise the level) before starting a Generator.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "minirds",
})

func logInfo(msg string, kv ...any) {
	Logger.Info(msg, kv...)
}

func logRecv(msg string, kv ...any) {
	Logger.Info(msg, kv...)
}

func logXmit(msg string, kv ...any) {
	Logger.Debug(msg, kv...)
}

func logError(msg string, kv ...any) {
	Logger.Error(msg, kv...)
}

func logDebug(msg string, kv ...any) {
	Logger.Debug(msg, kv...)
}
