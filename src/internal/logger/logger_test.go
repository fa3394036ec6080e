package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestConsoleLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Info("parsed %d files", 3)
	Warn("slow")
	Debug("hidden")
	SetVerbose(true)
	Debug("shown")
	SetVerbose(false)
	Error("failed: %s", "x")

	want := "[INFO] parsed 3 files\n[WARN] slow\n[DEBUG] shown\n[ERROR] failed: x\n"
	if got := buf.String(); got != want {
		t.Errorf("console =\n%q\nwant\n%q", got, want)
	}
}

func TestFileLog(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	dir := t.TempDir()
	if err := InitLogger(dir); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	Debug("only in file")
	Info("also in file")
	path := logFile.Name()
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[DEBUG] only in file", "[INFO] also in file"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file missing %q:\n%s", want, data)
		}
	}
	if strings.Contains(buf.String(), "only in file") {
		t.Errorf("file-only message reached the console: %q", buf.String())
	}
}
