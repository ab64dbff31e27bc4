package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uilive"
)

// Live redraws the display in place on a terminal. Each Write flushes, so
// the caller's loop decides the refresh rate.
type Live struct {
	w     *uilive.Writer
	width int
	text  string
	// Status is printed under the display on every flush
	Status func() string
}

// NewLive returns a Live display of the given width writing to out
func NewLive(out io.Writer, width int) *Live {
	w := uilive.New()
	w.Out = out
	return &Live{w: w, width: width}
}

func (l *Live) Clear() error {
	l.text = ""
	return nil
}

func (l *Live) Write(text string) error {
	l.text += text
	return l.flush()
}

func (l *Live) flush() error {
	text := l.text
	if n := len([]rune(text)); n < l.width {
		text += strings.Repeat(" ", l.width-n)
	}
	fmt.Fprintf(l.w, "[%s]\n", text)
	if l.Status != nil {
		fmt.Fprintln(l.w, l.Status())
	}
	return l.w.Flush()
}
