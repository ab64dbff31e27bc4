package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	LEDOn  rune // ● lit feedback LED
	LEDOff rune // ○ dark feedback LED
	Hand   rune // ✋ hand over the sensor
	Empty  rune // · nothing in range
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Default()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			LEDOn:  '●',
			LEDOff: '○',
			Hand:   '✋',
			Empty:  '·',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted   = 0.2
	RoleFG      = 0.5
	RoleAccent  = 0.6
	RoleMiss    = 0.45
	RoleScreen  = 0.9
	RoleHit     = 1.0
	RoleBezel   = 0.1
	RoleWarning = 0.8
)

func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Hit() lipgloss.Color     { return t.Color(RoleHit) }
func (t *Theme) Miss() lipgloss.Color    { return t.Color(RoleMiss) }
func (t *Theme) Screen() lipgloss.Color  { return t.Color(RoleScreen) }
func (t *Theme) Bezel() lipgloss.Color   { return t.Color(RoleBezel) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
