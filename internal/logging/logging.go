// Package logging builds the zerolog logger used across hwsnap.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

type Config struct {
	Level  string
	Format string // auto, console or json
}

// New logs to stderr. In auto format it writes human-readable lines when
// stderr is a terminal and JSON otherwise.
func New(cfg Config) (zerolog.Logger, error) {
	console := strings.EqualFold(cfg.Format, "console")
	if cfg.Format == "" || strings.EqualFold(cfg.Format, "auto") {
		console = term.IsTerminal(int(os.Stderr.Fd()))
	}
	return NewWriter(os.Stderr, cfg.Level, console)
}

func NewWriter(w io.Writer, level string, console bool) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
		}
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Nop discards everything.
func Nop() zerolog.Logger { return zerolog.Nop() }
