package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.Width != 16 || cfg.Game.SampleEvery != 5 || cfg.Tone.Kind != ToneBuzzer {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"song": "scale", "game": {"loopDelayMs": 5, "sampleEvery": 2, "proximityMM": 80, "sensorWaitUs": 500}, "tone": {"kind": "none"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Song != "scale" || cfg.Game.ProximityMM != 80 || cfg.Tone.Kind != ToneNone {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Display.Width != 16 {
		t.Fatalf("expected untouched display defaults, got %+v", cfg.Display)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"display": {"width": 0}}`), 0644)

	_, err := LoadFile(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"loop delay", func(c *Config) { c.Game.LoopDelayMs = 0 }},
		{"sample cadence", func(c *Config) { c.Game.SampleEvery = 0 }},
		{"sensor wait", func(c *Config) { c.Game.SensorWaitUs = 0 }},
		{"max notes", func(c *Config) { c.Display.MaxNotes = 0 }},
		{"glyph", func(c *Config) { c.Display.Glyph = "ab" }},
		{"tone kind", func(c *Config) { c.Tone.Kind = "piano" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Display.Glyph = "#"
	if err := cfg.SaveFile(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if note, _ := loaded.Glyphs(); note != '#' {
		t.Fatalf("expected saved glyph, got %q", note)
	}
}
