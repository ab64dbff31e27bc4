package widgets

import (
	"strings"
	"testing"

	"go-rhythm/theme"
)

func TestFit(t *testing.T) {
	if got := fit("ab", 4); got != "ab  " {
		t.Fatalf("expected padding, got %q", got)
	}
	if got := fit("abcdef", 4); got != "abcd" {
		t.Fatalf("expected truncation, got %q", got)
	}
}

func TestRenderLCDContainsLines(t *testing.T) {
	out := RenderLCD(theme.New(nil), []string{"|  |"}, 6, 2)
	if !strings.Contains(out, "|  |") {
		t.Fatalf("expected track in %q", out)
	}
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{{Title: "Play", Keys: []KeyBinding{{"space", "hand"}}}})
	if !strings.Contains(out, "Play") || !strings.Contains(out, "space") {
		t.Fatalf("unexpected help %q", out)
	}
}
