package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jadwal/internal/platform/logging"
)

func TestNewWritesConsoleAndFile(t *testing.T) {
	t.Parallel()
	console := &bytes.Buffer{}
	logFile := filepath.Join(t.TempDir(), "logs", "jadwal.log")

	logger, closeFn, err := logging.New(logging.Options{Level: "debug", Console: console, File: logFile})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("reminder armed", "course", "Metode Penelitian")
	if err := closeFn(); err != nil {
		t.Fatalf("close log file: %v", err)
	}

	if !strings.Contains(console.String(), `"msg":"reminder armed"`) {
		t.Fatalf("console output missing record: %s", console.String())
	}
	raw, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), `"course":"Metode Penelitian"`) {
		t.Fatalf("file output missing attribute: %s", raw)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	t.Parallel()
	console := &bytes.Buffer{}
	logger, _, err := logging.New(logging.Options{Level: "warn", Console: console})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(console.String(), "hidden") || !strings.Contains(console.String(), "shown") {
		t.Fatalf("unexpected level filtering: %s", console.String())
	}
}

func TestParseLevelRejectsUnknown(t *testing.T) {
	t.Parallel()
	if _, err := logging.ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
