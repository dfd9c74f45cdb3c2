package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestBuildJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	log, err := Build(Options{JSON: true, OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	log.Debug("hidden")
	log.Info("candidate scored")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the info entry, got %d lines: %s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["step"] != "candidate scored" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestBuildDebug(t *testing.T) {
	log, err := Build(Options{Debug: true, OutputPaths: []string{filepath.Join(t.TempDir(), "log.txt")}})
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug level to be enabled")
	}
}
