package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	out      io.Writer
	file     *os.File
	mu       sync.Mutex
	counters = make(map[string]int)
)

// Path returns where Enable writes: ~/.config/go-rhythm/debug.log
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "go-rhythm", "debug.log")
}

// Enable starts logging to path (Path() if empty), truncating it
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if out != nil {
		return nil
	}
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	file = f
	out = f

	// can't call Log - we hold the mutex
	write("debug", "=== Debug logging started ===")
	return nil
}

// SetOutput logs to w instead of a file; nil disables logging
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	out = w
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	out = nil
}

func closeFile() {
	if file != nil {
		file.Close()
		file = nil
	}
}

// Log writes a message under a category
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if out == nil {
		return
	}
	write(category, fmt.Sprintf(format, args...))
}

func write(category, msg string) {
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(out, "[%s] %-10s %s\n", ts, category, msg)
	if file != nil {
		file.Sync() // flush immediately so we see logs even on crash
	}
}

// LogEvery logs only every N calls (use for high-frequency events)
func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if n <= 1 || count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
