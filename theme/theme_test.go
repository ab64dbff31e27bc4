package theme

import (
	"strings"
	"testing"
)

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader("GIMP Palette\nName: duo\n# comment\n0 0 0 black\n255 255 255\n1 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "duo" || len(p.Colors) != 2 {
		t.Fatalf("unexpected palette %+v", p)
	}
	if mid := p.Lookup(0.5); mid != (RGB{127, 127, 127}) {
		t.Fatalf("expected mid grey, got %v", mid)
	}
	if p.Lookup(-1) != p.Colors[0] || p.Lookup(2) != p.Colors[1] {
		t.Fatal("expected lookups to clamp")
	}
}

func TestParseGPLEmpty(t *testing.T) {
	if _, err := ParseGPL(strings.NewReader("GIMP Palette\n")); err == nil {
		t.Fatal("expected error for palette without colors")
	}
}

func TestDefaultTheme(t *testing.T) {
	th := New(nil)
	if th.Palette.Name != "plasma" {
		t.Fatalf("expected plasma, got %q", th.Palette.Name)
	}
	if c := string(th.Hit()); !strings.HasPrefix(c, "#") || len(c) != 7 {
		t.Fatalf("unexpected color %q", c)
	}
}
