package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-rhythm/config"
	"go-rhythm/game"
	"go-rhythm/hw"
	"go-rhythm/rhythm"
	"go-rhythm/song"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, debugLog = "", false

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeSong(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "song.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderTimeline(t *testing.T) {
	s, err := song.New("demo", 4, []song.Note{{Pitch: 440, Duration: 2}, {Pitch: song.Rest, Duration: 2}, {Pitch: 494, Duration: 4}})
	if err != nil {
		t.Fatal(err)
	}
	engine, err := rhythm.New(s)
	if err != nil {
		t.Fatal(err)
	}

	out := renderTimeline(s, engine)
	for _, want := range []string{"demo", "3 cues", "8 ticks", "32 loop ticks", "440Hz", "rest", "494Hz", "16"} {
		if !strings.Contains(out, want) {
			t.Errorf("timeline missing %q:\n%s", want, out)
		}
	}
}

func TestTimelineCommand(t *testing.T) {
	out, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.json"), "timeline", "scale")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "scale") || !strings.Contains(out, "261Hz") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.json")
	if _, err := execute(t, "--config", path, "config", "--init"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path, "config", "--init"); err == nil {
		t.Error("second --init without --force succeeded")
	}
	if _, err := execute(t, "--config", path, "config", "--init", "--force"); err != nil {
		t.Errorf("--force: %v", err)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Song != "mario" {
		t.Errorf("song = %q", cfg.Song)
	}
}

func TestConfigInitDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := execute(t, "config", "--init"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(home, ".config", "go-rhythm", "config.json")
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config at %s: %v", path, err)
	}
	if cfg.Tone.Kind != config.ToneBuzzer {
		t.Errorf("tone kind = %q", cfg.Tone.Kind)
	}
}

func TestPlayAutoplayScoresEveryNote(t *testing.T) {
	path := writeSong(t, `{"name":"duet","tempo":5,"notes":[
		{"tone":"a","duration":2},
		{"duration":1},
		{"hz":494,"duration":2}
	]}`)

	out, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.json"),
		"play", "--autoplay", "--tone", "none", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "score 2 / 2 notes") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPlayRejectsBadTone(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.json"),
		"play", "--autoplay", "--tone", "kazoo", "scale")
	if err == nil {
		t.Fatal("expected an error for an unknown tone kind")
	}
}

func TestAutopilotMovesHand(t *testing.T) {
	rig := hw.NewRig()
	a := autopilot{out: game.Mute{}, rig: rig}

	if err := a.Tone(440); err != nil {
		t.Fatal(err)
	}
	if !rig.HandPresent() {
		t.Error("hand not placed on tone")
	}
	if err := a.Silence(); err != nil {
		t.Fatal(err)
	}
	if rig.HandPresent() {
		t.Error("hand still present after silence")
	}
}

func TestGameConfigFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.Glyph = "#"
	cfg.Display.Blank = "."
	cfg.Game.SampleEvery = 7

	gc := gameConfig(cfg)
	if gc.Glyph != '#' || gc.Blank != '.' || gc.SampleEvery != 7 || gc.Width != 16 {
		t.Errorf("gameConfig = %+v", gc)
	}
}

func TestOpenToneNone(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tone.Kind = config.ToneNone

	tone, closeTone, err := openTone(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	defer closeTone()
	if _, ok := tone.(game.Mute); !ok {
		t.Errorf("tone = %T, want game.Mute", tone)
	}
}
