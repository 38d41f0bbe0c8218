package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestLogEventWritesStructuredFields(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	initLogger(&buf, "debug", "json")

	LogEvent(" req-1 ", "AMA", "find", "listed records", "count", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if rec["module"] != "ama" || rec["action"] != "find" || rec["request_id"] != "req-1" {
		t.Fatalf("unexpected fields: %v", rec)
	}
	if rec["msg"] != "listed records" || rec["count"] != float64(3) {
		t.Fatalf("unexpected message or attrs: %v", rec)
	}
}

func TestInitLoggerRespectsLevel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	initLogger(&buf, "ERROR", "text")
	slog.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info line should be filtered at ERROR level, got %q", buf.String())
	}
}
