package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Debugf("[TEST] debug %d", 1)
	l.Infof("[TEST] info %d", 2)
	l.Warnf("[TEST] warn %d", 3)
	l.Errorf("[TEST] error %d", 4)
	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("messages below WARN leaked: %q", out)
	}
	if !strings.Contains(out, "warn 3") || !strings.Contains(out, "error 4") {
		t.Fatalf("expected warn and error lines, got %q", out)
	}
}

func TestSetLevelNoneSilences(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug)
	l.SetLevel(LevelNone)
	l.Errorf("[TEST] should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	if l.Level() != LevelNone {
		t.Fatalf("expected level NONE, got %v", l.Level())
	}
}

func TestLevelFromString(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"Error":   LevelError,
		"none":    LevelNone,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		if got := LevelFromString(in); got != want {
			t.Fatalf("LevelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}
