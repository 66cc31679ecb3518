package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{2, 2, 2}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	got := Sparkline([]float64{0, 5, 10})
	if len(got) != 3 {
		t.Fatalf("expected 3 chars, got %q", got)
	}
	if got[0] != ' ' || got[2] != '@' {
		t.Fatalf("expected min/max extremes, got %q", got)
	}
}

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	series := []Series{{Name: "Score", Values: []float64{1, 3, 2, 5, 4}}}
	if err := PlotSeries(&buf, "Daily Score Trend", series, 20, 4); err != nil {
		t.Fatalf("plot: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Daily Score Trend") {
		t.Fatalf("expected title in output: %q", out)
	}
	if !strings.Contains(out, "Score: min=1.00 max=5.00") {
		t.Fatalf("expected min/max line in output: %q", out)
	}
	plotRows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, axisSeparator) {
			plotRows++
		}
	}
	if plotRows != 4 {
		t.Fatalf("expected 4 plot rows, got %d", plotRows)
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", nil, 20, 4); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series, got %q", buf.String())
	}
}

func TestResampleSeries(t *testing.T) {
	out := resampleSeries([]float64{1, 2, 3, 4}, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 values, got %d", len(out))
	}
	if out[0] != 1.5 || out[1] != 3.5 {
		t.Fatalf("unexpected downsample: %v", out)
	}
	up := resampleSeries([]float64{0, 10}, 3)
	if len(up) != 3 {
		t.Fatalf("expected 3 values, got %d", len(up))
	}
	if up[0] != 0 || up[1] != 5 || up[2] != 10 {
		t.Fatalf("unexpected upsample: %v", up)
	}
}
