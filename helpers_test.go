package psuutils

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger_WritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "debug")

	l.Debug("dbg", "path", "/p0")
	l.Error("mapper call failed", "method", MapperGetObject, "interface", "a.b")

	out := buf.String()
	for _, want := range []string{"dbg", "path=/p0", "mapper call failed", "method=GetObject", "interface=a.b"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output: %s", want, out)
		}
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "warn")
	l.Info("quiet")
	l.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info logged at warn level: %s", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn not logged: %s", out)
	}
}

func TestOwnersFromMap_Sorted(t *testing.T) {
	owners := ownersFromMap(map[string][]string{
		"com.example.B": {"x"},
		"com.example.A": {"y"},
	})
	if len(owners) != 2 || owners[0].Service != "com.example.A" || owners[1].Service != "com.example.B" {
		t.Errorf("owners = %+v", owners)
	}
}
