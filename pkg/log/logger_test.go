package log

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"
)

func newBufferLogger(level Level, f Formatter) (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewLogger(WithLevel(level), WithFormatter(f), WithOutput(NewWriterOutput(buf))), buf
}

func TestLevelGate(t *testing.T) {
	l, buf := newBufferLogger(WarnLevel, &TextFormatter{DisableTimestamp: true})
	l.Info("dropped")
	l.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "WARN  kept") {
		t.Fatalf("expected warn line, got %q", out)
	}
}

func TestTextFieldsSorted(t *testing.T) {
	l, buf := newBufferLogger(DebugLevel, &TextFormatter{DisableTimestamp: true})
	l.With(Component("changelog")).Debug("appended", Uint64("seq", 7), Str("table", "wallet"))
	want := "DEBUG appended component=changelog seq=7 table=wallet\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestJSONFormatter(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel, &JSONFormatter{})
	l.WithError(errors.New("boom")).Error("failed", Int("n", 3))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v (%q)", err, buf.String())
	}
	if m["msg"] != "failed" || m["level"] != "ERROR" || m["error"] != "boom" {
		t.Fatalf("unexpected entry: %v", m)
	}
	if m["n"].(float64) != 3 {
		t.Fatalf("unexpected n: %v", m["n"])
	}
}

func TestSetLevelSharedWithChildren(t *testing.T) {
	l, buf := newBufferLogger(ErrorLevel, &TextFormatter{DisableTimestamp: true})
	child := l.WithComponent("c")
	l.SetLevel(DebugLevel)
	child.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("child should observe parent level change")
	}
	if child.GetLevel() != DebugLevel {
		t.Fatalf("want debug, got %v", child.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", DebugLevel, true},
		{"INFO", InfoLevel, true},
		{"", InfoLevel, true},
		{"warning", WarnLevel, true},
		{"error", ErrorLevel, true},
		{"loud", InfoLevel, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("ParseLevel(%q) err=%v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q)=%v want %v", tt.in, got, tt.want)
		}
	}
}

func TestApplyConfig(t *testing.T) {
	if _, err := ApplyConfig(&Config{Level: "debug", Format: "json", Output: "null"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := ApplyConfig(&Config{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := ApplyConfig(&Config{Output: "syslog"}); err == nil {
		t.Fatalf("expected error for unknown output")
	}
}

func TestApplyConfigWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := ApplyConfig(&Config{Level: "warn", Format: "text", Writer: buf})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	l.Info("dropped")
	l.Warn("kept")
	if out := buf.String(); strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRedirectStdLog(t *testing.T) {
	prev := stdlog.Writer()
	t.Cleanup(func() { stdlog.SetOutput(prev) })

	l, buf := newBufferLogger(InfoLevel, &TextFormatter{DisableTimestamp: true})
	RedirectStdLog(l)
	stdlog.Print("pebble says hi")
	out := buf.String()
	if !strings.Contains(out, "INFO  pebble says hi") || !strings.Contains(out, "component=stdlog") {
		t.Fatalf("unexpected output %q", out)
	}
}
