// Package display draws the note track and hands it to a character display.
package display

import "go-rhythm/rhythm"

const (
	DefaultWidth = 16
	NoteGlyph    = '|'
	Blank        = ' '
)

// Render draws the window as a width-cell track. Cell 0 is due now, cell
// width-1 is the furthest visible. Rests and cues width or more ticks away
// leave their cell blank.
func Render(window []rhythm.Upcoming, width int, glyph, blank rune) string {
	if width <= 0 {
		return ""
	}
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = blank
	}
	for _, u := range window {
		if u.Pitch.IsRest() || u.Remaining >= uint32(width) {
			continue
		}
		cells[u.Remaining] = glyph
	}
	return string(cells)
}
