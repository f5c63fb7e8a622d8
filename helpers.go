package psuutils

import (
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// NewLogger returns a Logger backed by charmbracelet/log writing to w.
// level is one of debug, info, warn, error; anything else means info.
func NewLogger(w io.Writer, level string) Logger {
	if w == nil {
		w = os.Stderr
	}
	l := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		Prefix:          "psuutils",
	})
	lvl, err := clog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = clog.InfoLevel
	}
	l.SetLevel(lvl)
	return &charmLogger{l: l}
}

type charmLogger struct {
	l *clog.Logger
}

func (c *charmLogger) Debug(msg string, kv ...any) { c.l.Debug(msg, kv...) }
func (c *charmLogger) Info(msg string, kv ...any)  { c.l.Info(msg, kv...) }
func (c *charmLogger) Warn(msg string, kv ...any)  { c.l.Warn(msg, kv...) }
func (c *charmLogger) Error(msg string, kv ...any) { c.l.Error(msg, kv...) }

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
