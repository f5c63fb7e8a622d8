package psutest

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is one recorded log call.
type Entry struct {
	Level string
	Msg   string
	KV    []any
}

// Logger records log calls for assertions.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
}

func (l *Logger) Debug(msg string, kv ...any) { l.add("debug", msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.add("info", msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.add("warn", msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.add("error", msg, kv) }

func (l *Logger) add(level, msg string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, KV: kv})
}

func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Count returns how many entries were logged at level.
func (l *Logger) Count(level string) int {
	n := 0
	for _, e := range l.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// String renders entries one per line, for test failure messages.
func (l *Logger) String() string {
	var b strings.Builder
	for _, e := range l.Entries() {
		fmt.Fprintf(&b, "%s %s %v\n", e.Level, e.Msg, e.KV)
	}
	return b.String()
}
