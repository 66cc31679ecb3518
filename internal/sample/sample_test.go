package sample

import (
	"bytes"
	"testing"
	"time"

	"github.com/Shasha12oly/growth-tracker/internal/ingest"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	gen := New(42)
	start := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	if err := gen.WriteCSV(&buf, DefaultUsers, start, 14); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	result, err := ingest.Parse(&buf)
	if err != nil {
		t.Fatalf("parse generated csv: %v", err)
	}
	if result.DroppedTimestamps != 0 {
		t.Fatalf("expected no dropped timestamps, got %d", result.DroppedTimestamps)
	}

	seen := map[string]bool{}
	end := start.AddDate(0, 0, 14)
	for _, sub := range result.Submissions {
		seen[sub.Username] = true
		if sub.Timestamp.Before(start) || !sub.Timestamp.Before(end) {
			t.Fatalf("timestamp %v outside window", sub.Timestamp)
		}
	}
	for _, user := range DefaultUsers {
		if !seen[user] {
			t.Fatalf("expected submissions for %s", user)
		}
	}
}

func TestWriteCSVDeterministicForSeed(t *testing.T) {
	var a, b bytes.Buffer
	start := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	if err := New(7).WriteCSV(&a, DefaultUsers, start, 7); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := New(7).WriteCSV(&b, DefaultUsers, start, 7); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("expected identical output for identical seed")
	}
}

func TestWriteCSVValidatesInput(t *testing.T) {
	var buf bytes.Buffer
	start := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	if err := New(1).WriteCSV(&buf, nil, start, 7); err == nil {
		t.Fatalf("expected error for no users")
	}
	if err := New(1).WriteCSV(&buf, DefaultUsers, start, 0); err == nil {
		t.Fatalf("expected error for zero days")
	}
}
