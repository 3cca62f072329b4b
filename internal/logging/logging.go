package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/todod/internal/config"
	"github.com/mattn/go-isatty"
)

// New builds a logger writing to w. Format "auto" picks a human-readable
// text handler when w is a terminal and JSON otherwise.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if format == config.LogFormatAuto || format == "" {
		format = config.LogFormatJSON
		if IsTerminal(w) {
			format = config.LogFormatText
		}
	}

	switch format {
	case config.LogFormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case config.LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
