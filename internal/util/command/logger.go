package command

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/go-xwc/internal/config"
)

// SetupLogger configures the global zerolog logger. Logs go to stderr so
// command output on stdout stays machine readable.
func SetupLogger(cfg config.Logger) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(cfg.Level)

	var out io.Writer = os.Stderr
	if cfg.PrettyPrintConsole {
		out = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
			w.TimeFormat = "15:04:05"
		})
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	return log.Logger
}
