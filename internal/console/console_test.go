package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	log, err := NewLogger(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Warn("shown")
	log.Sync() //nolint:errcheck

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected log output: %s", buf.String())
	}

	if _, err := NewLogger(&buf, "chatty"); err == nil {
		t.Fatal("invalid level accepted")
	}
}

func TestSinkNonTTY(t *testing.T) {
	var logBuf, termBuf bytes.Buffer

	log, err := NewLogger(&logBuf, "debug")
	if err != nil {
		t.Fatal(err)
	}

	s := NewSink(log, &termBuf, true)
	for _, p := range []float64{5, 12, 15, 50, 40, 100} {
		s.OnProgress(p)
	}
	s.OnLog("part written")
	s.Finish()

	if termBuf.Len() != 0 {
		t.Fatalf("inline progress written to a non-terminal: %q", termBuf.String())
	}

	out := logBuf.String()
	for _, want := range []string{"progress 5%", "progress 12%", "progress 50%", "progress 100%", "part written"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in log output:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"progress 15%", "progress 40%"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("unexpected %q in log output:\n%s", unwanted, out)
		}
	}
}

func TestSinkInline(t *testing.T) {
	var logBuf, termBuf bytes.Buffer
	log, _ := NewLogger(&logBuf, "info")

	s := NewSink(log, &termBuf, true)
	s.isTTY = true

	s.OnProgress(100)
	s.Finish()

	if got := termBuf.String(); got != "\r[split] 100.0%\n" {
		t.Fatalf("got %q", got)
	}
}
