package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bep/debounce"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/eiannone/keyboard"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"go-rhythm/buzzer"
	"go-rhythm/config"
	"go-rhythm/debug"
	"go-rhythm/display"
	"go-rhythm/game"
	"go-rhythm/hw"
	"go-rhythm/midi"
	"go-rhythm/rhythm"
	"go-rhythm/sensor"
	"go-rhythm/song"
	"go-rhythm/theme"
	"go-rhythm/tui"
)

// key repeats arrive about every 30-50ms while held; wait a little longer
// before deciding the hand has left
const releaseAfter = 250 * time.Millisecond

type playOptions struct {
	headless  bool
	autoplay  bool
	tone      string
	port      string
	tempo     uint32
	proximity float64
}

func newPlayCmd() *cobra.Command {
	var opts playOptions
	cmd := &cobra.Command{
		Use:   "play [song]",
		Short: "Play a song on the simulated board",
		Long: `Play a song on the simulated board. A song is a built-in name, a JSON
song file or a Standard MIDI File. On a terminal the board is drawn with a
full-screen UI; space holds your hand over the sensor.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ref := cfg.Song
			if len(args) == 1 {
				ref = args[0]
			}
			return play(cmd, cfg, ref, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.headless, "headless", false, "redraw the display in place instead of the full-screen UI")
	f.BoolVar(&opts.autoplay, "autoplay", false, "let the simulated hand hit every note (implies --headless)")
	f.StringVar(&opts.tone, "tone", "", "tone output: buzzer, midi or none")
	f.StringVar(&opts.port, "port", "", "MIDI output port (substring match) for --tone midi")
	f.Uint32Var(&opts.tempo, "tempo", 0, "loop ticks per song unit")
	f.Float64Var(&opts.proximity, "proximity", 0, "scoring distance in mm")
	return cmd
}

// apply copies explicitly set flags over the config
func (o playOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("tone") {
		cfg.Tone.Kind = config.ToneKind(o.tone)
	}
	if f.Changed("port") {
		cfg.Tone.PortName = o.port
	}
	if f.Changed("tempo") {
		cfg.Tempo = o.tempo
	}
	if f.Changed("proximity") {
		cfg.Game.ProximityMM = o.proximity
	}
}

func gameConfig(cfg *config.Config) game.Config {
	glyph, blank := cfg.Glyphs()
	return game.Config{
		LoopDelayMs: cfg.Game.LoopDelayMs,
		SampleEvery: cfg.Game.SampleEvery,
		ProximityMM: cfg.Game.ProximityMM,
		Width:       cfg.Display.Width,
		Horizon:     cfg.Display.Horizon,
		MaxNotes:    cfg.Display.MaxNotes,
		Glyph:       glyph,
		Blank:       blank,
	}
}

// openTone returns the configured tone output and a function releasing it
func openTone(cfg *config.Config, warn io.Writer) (game.Tone, func(), error) {
	switch cfg.Tone.Kind {
	case config.ToneMIDI:
		send, name, err := midi.OpenOut(cfg.Tone.PortName)
		if err != nil {
			midi.CloseDriver()
			return nil, nil, err
		}
		debug.Log("tone", "midi output %s channel %d", name, cfg.Tone.Channel)
		out := midi.NewToneOut(send, cfg.Tone.Channel)
		return out, func() {
			out.Silence()
			midi.CloseDriver()
		}, nil

	case config.ToneBuzzer:
		b, err := buzzer.New()
		if err != nil {
			// no sound card is not a reason to refuse to play
			fmt.Fprintf(warn, "buzzer unavailable, playing silently: %v\n", err)
			return game.Mute{}, func() {}, nil
		}
		return b, b.Close, nil
	}
	return game.Mute{}, func() {}, nil
}

// monitor keeps the latest loop status for readers on other goroutines
type monitor struct {
	mu sync.Mutex
	st game.Status
}

func (m *monitor) set(st game.Status) {
	m.mu.Lock()
	m.st = st
	m.mu.Unlock()
}

func (m *monitor) get() game.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st
}

// autopilot puts the simulated hand over the sensor for every tone
type autopilot struct {
	out game.Tone
	rig *hw.Rig
}

func (a autopilot) Tone(hz song.Frequency) error {
	a.rig.SetHand(tui.HandDistance)
	return a.out.Tone(hz)
}

func (a autopilot) Silence() error {
	a.rig.RemoveHand()
	return a.out.Silence()
}

func play(cmd *cobra.Command, cfg *config.Config, ref string, opts playOptions) error {
	s, err := song.Open(ref, cfg.Tempo)
	if err != nil {
		return err
	}
	engine, err := rhythm.New(s)
	if err != nil {
		return err
	}

	tone, closeTone, err := openTone(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeTone()

	rig := hw.NewRig()
	rig.Pace = time.Sleep
	sampler := sensor.New(rig.Trigger(), rig.Echo(), rig)
	sampler.MaxWait = cfg.Game.SensorWaitUs

	var green, red hw.Latch
	session := uuid.NewString()
	debug.Log("game", "session %s song %s tempo %d ticks %d", session, s.Name(), s.Tempo(), engine.MaxTicks())

	interactive := !opts.headless && !opts.autoplay && isatty.IsTerminal(os.Stdout.Fd())
	if opts.autoplay || !isatty.IsTerminal(os.Stdin.Fd()) {
		tone = autopilot{out: tone, rig: rig}
	}

	dev := game.Peripherals{
		Tone:     tone,
		Ranger:   sampler,
		Feedback: game.LEDs{Green: &green, Red: &red},
		Delay:    rig,
	}
	mon := &monitor{}

	if interactive {
		lcd := &display.Memory{}
		dev.Display = lcd
		o, err := game.New(engine, gameConfig(cfg), dev)
		if err != nil {
			return err
		}
		o.OnStep = mon.set

		th, err := loadTheme(cfg)
		if err != nil {
			return err
		}
		board := tui.Board{Display: lcd, Rig: rig, Green: &green, Red: &red, Width: cfg.Display.Width}
		return playTUI(cmd.Context(), o, board, th, session, s.Name(), mon)
	}

	live := display.NewLive(cmd.OutOrStdout(), cfg.Display.Width)
	live.Status = func() string {
		st := mon.get()
		return fmt.Sprintf("tick %4d/%d  score %3d  %s", st.Tick, engine.MaxTicks(), st.Score, st.State)
	}
	dev.Display = live
	o, err := game.New(engine, gameConfig(cfg), dev)
	if err != nil {
		return err
	}
	o.OnStep = mon.set
	return playHeadless(cmd, o, rig, session, !opts.autoplay)
}

func loadTheme(cfg *config.Config) (*theme.Theme, error) {
	if cfg.Palette == "" {
		return theme.New(nil), nil
	}
	p, err := theme.LoadGPL(cfg.Palette)
	if err != nil {
		return nil, err
	}
	return theme.New(p), nil
}

func playTUI(parent context.Context, o *game.Orchestrator, board tui.Board, th *theme.Theme, session, name string, mon *monitor) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	done := make(chan tui.RunResult, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		res, err := o.Run(ctx)
		done <- tui.RunResult{Result: res, Err: err}
	}()

	m := tui.NewModel(board, th, done, cancel)
	m.Session = session
	m.Song = name
	m.Status = mon.get
	m.Release = debounce.New(releaseAfter)

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	cancel()
	wg.Wait()

	res := o.Result()
	fmt.Printf("%s: %d / %d notes (session %s)\n", name, res.Score, res.Notes, session)
	return err
}

func playHeadless(cmd *cobra.Command, o *game.Orchestrator, rig *hw.Rig, session string, keys bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if keys && isatty.IsTerminal(os.Stdin.Fd()) {
		events, err := keyboard.GetKeys(10)
		if err != nil {
			return fmt.Errorf("open keyboard: %w", err)
		}
		defer keyboard.Close()

		ctx2, cancel := context.WithCancel(ctx)
		defer cancel()
		ctx = ctx2

		release := debounce.New(releaseAfter)
		go func() {
			for ev := range events {
				if ev.Err != nil {
					debug.Log("keys", "keyboard: %v", ev.Err)
					continue
				}
				switch {
				case ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC || ev.Rune == 'q':
					cancel()
					return
				case ev.Key == keyboard.KeySpace || ev.Key == keyboard.KeyEnter:
					rig.SetHand(tui.HandDistance)
					release(rig.RemoveHand)
				}
			}
		}()
		fmt.Fprintln(cmd.OutOrStdout(), "space: hand over the sensor   q: quit")
	}

	res, err := o.Run(ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "score %d / %d notes (session %s)\n", res.Score, res.Notes, session)
	if err == context.Canceled {
		return nil
	}
	return err
}
