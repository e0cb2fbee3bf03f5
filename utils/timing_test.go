package utils

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"
)

func TestDurationUS(t *testing.T) {
	d := 1234*time.Microsecond + 567*time.Nanosecond
	got := DurationUS(d)
	if math.Abs(got-1234.567) > 0.001 {
		t.Fatalf("want 1234.567µs, got %.3f", got)
	}
}

func withOutput(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldVerbose := Output, Verbose
	Output, Verbose = &buf, verbose
	t.Cleanup(func() {
		Output, Verbose = oldOut, oldVerbose
	})
	return &buf
}

func TestLogfRespectsVerbose(t *testing.T) {
	buf := withOutput(t, false)
	Logf("iteration %d\n", 3)
	if buf.Len() != 0 {
		t.Fatalf("expected no output when not verbose, got %q", buf.String())
	}

	Verbose = true
	Logf("iteration %d\n", 3)
	if got := buf.String(); got != "iteration 3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintTimingStats(t *testing.T) {
	buf := withOutput(t, true)
	stats := &TimingStats{
		TotalTime:       10 * time.Millisecond,
		ForwardPassTime: 5 * time.Millisecond,
		Samples:         3,
		Skipped:         1,
	}
	PrintTimingStats(stats, 4)
	out := buf.String()
	for _, want := range []string{"TIMING STATISTICS", "Steps completed: 4 (3 trained, 1 skipped)", "Forward pass: 5ms (50.0%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTimingStatsZeroTotal(t *testing.T) {
	buf := withOutput(t, true)
	PrintTimingStats(&TimingStats{}, 0)
	if strings.Contains(buf.String(), "NaN") {
		t.Fatalf("zero stats produced NaN:\n%s", buf.String())
	}
}
