package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-rhythm/theme"
)

// RenderLCD draws a character display of the given size. Each line is cut
// or padded to width; missing lines are blank.
func RenderLCD(th *theme.Theme, lines []string, width, rows int) string {
	padded := make([]string, rows)
	for i := 0; i < rows; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		padded[i] = fit(line, width)
	}

	screen := lipgloss.NewStyle().
		Foreground(th.Screen()).
		Background(th.Bezel())
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Muted()).
		Padding(0, 1)

	return frame.Render(screen.Render(strings.Join(padded, "\n")))
}

func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// RenderLED renders a labelled feedback LED
func RenderLED(th *theme.Theme, label string, on bool, color lipgloss.Color) string {
	sym := th.Symbols.LEDOff
	style := lipgloss.NewStyle().Foreground(th.Muted())
	if on {
		sym = th.Symbols.LEDOn
		style = style.Foreground(color)
	}
	return fmt.Sprintf("%s %s", style.Render(string(sym)), label)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
