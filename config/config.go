package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ToneKind selects where tones are played
type ToneKind string

const (
	ToneBuzzer ToneKind = "buzzer"
	ToneMIDI   ToneKind = "midi"
	ToneNone   ToneKind = "none"
)

// GameConfig tunes the game loop
type GameConfig struct {
	LoopDelayMs  uint32  `json:"loopDelayMs"`  // length of one loop tick
	SampleEvery  uint32  `json:"sampleEvery"`  // loop ticks between sensor samples
	ProximityMM  float64 `json:"proximityMM"`  // a hand closer than this scores
	SensorWaitUs int     `json:"sensorWaitUs"` // ceiling per echo phase
}

// DisplayConfig describes the character display
type DisplayConfig struct {
	Width    int    `json:"width"`
	Horizon  uint32 `json:"horizon"`  // furthest visible cue, in engine ticks
	MaxNotes int    `json:"maxNotes"` // cues drawn at once
	Glyph    string `json:"glyph"`
	Blank    string `json:"blank"`
}

// ToneConfig selects and configures the tone output
type ToneConfig struct {
	Kind     ToneKind `json:"kind"`
	PortName string   `json:"portName,omitempty"`
	Channel  uint8    `json:"channel,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Song    string        `json:"song"`
	Tempo   uint32        `json:"tempo,omitempty"` // overrides the song's tempo
	Game    GameConfig    `json:"game"`
	Display DisplayConfig `json:"display"`
	Tone    ToneConfig    `json:"tone"`
	Palette string        `json:"palette,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Song: "mario",
		Game: GameConfig{
			LoopDelayMs:  10,
			SampleEvery:  5,
			ProximityMM:  150,
			SensorWaitUs: 100000,
		},
		Display: DisplayConfig{
			Width:    16,
			Horizon:  16,
			MaxNotes: 3,
			Glyph:    "|",
			Blank:    " ",
		},
		Tone: ToneConfig{
			Kind:    ToneBuzzer,
			Channel: 1,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-rhythm"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path over the defaults. A missing file
// yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

var ErrInvalid = errors.New("invalid config")

// Validate rejects settings the game loop cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Game.LoopDelayMs == 0:
		return fmt.Errorf("%w: game.loopDelayMs must be positive", ErrInvalid)
	case c.Game.SampleEvery == 0:
		return fmt.Errorf("%w: game.sampleEvery must be positive", ErrInvalid)
	case c.Game.SensorWaitUs <= 0:
		return fmt.Errorf("%w: game.sensorWaitUs must be positive", ErrInvalid)
	case c.Display.Width <= 0:
		return fmt.Errorf("%w: display.width must be positive", ErrInvalid)
	case c.Display.MaxNotes <= 0:
		return fmt.Errorf("%w: display.maxNotes must be positive", ErrInvalid)
	case len([]rune(c.Display.Glyph)) != 1 || len([]rune(c.Display.Blank)) != 1:
		return fmt.Errorf("%w: display glyphs must be single characters", ErrInvalid)
	}
	switch c.Tone.Kind {
	case ToneBuzzer, ToneMIDI, ToneNone:
	default:
		return fmt.Errorf("%w: unknown tone kind %q", ErrInvalid, c.Tone.Kind)
	}
	return nil
}

// Glyphs returns the note and blank runes of the display
func (c *Config) Glyphs() (note, blank rune) {
	return []rune(c.Display.Glyph)[0], []rune(c.Display.Blank)[0]
}
