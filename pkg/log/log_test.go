package log

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLoggerIsSafe(t *testing.T) {
	// 未 Init 时调用不应 panic
	Info("hello")
	Infow("hello", "k", "v")
	Error("boom", errors.New("boom"))
	Sync()
}

func TestInit_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	Init("info", "json", dir)
	t.Cleanup(func() { Init("error", "console", "") })

	Infow("salary updated", "employee", "Erzhan", "new", 1300)
	Debugw("hidden at info level")
	Warnw("request rejected", "op", "SetSalary")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "orgchart.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"employee":"Erzhan"`) || !strings.Contains(out, `"new":1300`) {
		t.Fatalf("log file missing structured fields: %s", out)
	}
	if !strings.Contains(out, `"op":"SetSalary"`) {
		t.Fatalf("warn entry missing: %s", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("debug entry should be filtered at info level: %s", out)
	}
}

func TestInit_InvalidLevel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expect panic for invalid level")
		}
	}()
	Init("loud", "json", "")
}
