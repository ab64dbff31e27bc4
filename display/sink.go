package display

import (
	"strings"
	"sync"
)

// Sink is a character display: it can be cleared and written to
type Sink interface {
	Clear() error
	Write(text string) error
}

// Memory is a display that keeps what was written since the last Clear.
// Reads are safe from other goroutines.
type Memory struct {
	mu     sync.Mutex
	text   strings.Builder
	writes int
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text.Reset()
	return nil
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text.WriteString(text)
	m.writes++
	return nil
}

// Text returns the current contents
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text.String()
}

// Writes returns how many writes have been made
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
