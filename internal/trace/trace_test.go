package trace

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestNilLoggerIsNoop(t *testing.T) {
	var l *Logger
	done := l.Section("x")
	done()
	l.Printf("%d", 1)
	l.Dump("label", 42)
}

func TestFromConfigDisabled(t *testing.T) {
	if l := FromConfig(false); l != nil {
		t.Fatalf("FromConfig(false) = %v, want nil", l)
	}
}

func TestSectionBracketsStartAndFinish(t *testing.T) {
	var buf bytes.Buffer
	l := New(log.New(&buf, "", 0))

	done := l.Section("lvn")
	if !strings.Contains(buf.String(), "lvn: starting") {
		t.Fatalf("missing start line: %q", buf.String())
	}
	done()
	if !strings.Contains(buf.String(), "lvn: finished") {
		t.Fatalf("missing finish line: %q", buf.String())
	}
}

func TestDumpRendersValue(t *testing.T) {
	var buf bytes.Buffer
	l := New(log.New(&buf, "", 0))

	l.Dump("defuse", []int{1, 2, 3})
	out := buf.String()
	if !strings.Contains(out, "defuse:") {
		t.Fatalf("missing label: %q", out)
	}
	if !strings.Contains(out, "(int) 1") && !strings.Contains(out, "1") {
		t.Fatalf("missing dumped content: %q", out)
	}
}
