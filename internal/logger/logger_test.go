package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWithWriterFormats(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json")
	log.Info("trained", "rows", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "trained" {
		t.Errorf("expected msg trained, got %v", entry["msg"])
	}

	buf.Reset()
	log = NewWithWriter(&buf, "info", "text")
	log.Info("trained", "rows", 3)
	if !strings.Contains(buf.String(), "msg=trained") {
		t.Errorf("expected text line, got %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "text")
	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn line should be written")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predmaint.log")
	var buf bytes.Buffer

	log, closer := NewWithOptions(&buf, Options{
		Level:      "info",
		Format:     "text",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
	})
	log.Info("dataset loaded", "rows", 5)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "dataset loaded") {
		t.Errorf("expected line in log file, got %q", data)
	}
	if !strings.Contains(buf.String(), "dataset loaded") {
		t.Errorf("expected line mirrored to writer, got %q", buf.String())
	}
}

func TestNewWithOptionsNoFile(t *testing.T) {
	var buf bytes.Buffer
	log, closer := NewWithOptions(&buf, Options{Level: "info", Format: "text"})
	log.Info("hello")
	if closer.Close() != nil {
		t.Error("nop closer should not fail")
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected output, got %q", buf.String())
	}
}
