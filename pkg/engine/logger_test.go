package engine

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestDefaultLoggerWritesThroughStdLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLogger(log.New(&buf, "", 0))
	l.Printf("sample %d complete\n", 3)

	if !strings.Contains(buf.String(), "sample 3 complete") {
		t.Errorf("DefaultLogger output = %q, want it to contain the formatted message", buf.String())
	}
}

func TestNopLoggerDiscardsOutput(t *testing.T) {
	// NopLogger.Printf should never panic regardless of arguments, and
	// has no observable side effect to assert beyond that.
	NopLogger{}.Printf("ignored %d", 1)
}
