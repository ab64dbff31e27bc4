package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogToWriter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Disable()

	Log("game", "score=%d", 3)
	if !strings.Contains(buf.String(), "game") || !strings.Contains(buf.String(), "score=3") {
		t.Fatalf("unexpected log line %q", buf.String())
	}
}

func TestLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Disable()
	Log("game", "dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing logged, got %q", buf.String())
	}
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Disable()

	for i := 0; i < 9; i++ {
		LogEvery(3, "sample", "every-test")
	}
	if got := strings.Count(buf.String(), "every-test"); got != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", got, buf.String())
	}
}

func TestEnableWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	if err := Enable(path); err != nil {
		t.Fatal(err)
	}
	Log("test", "hello")
	Disable()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected log file to contain hello, got %q", data)
	}
}
