package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"go-rhythm/rhythm"
	"go-rhythm/song"
)

func newTimelineCmd() *cobra.Command {
	var tempo uint32
	cmd := &cobra.Command{
		Use:   "timeline [song]",
		Short: "Print a song's cues with their absolute ticks",
		Long:  "Print a song's cues with their absolute ticks. A song is a built-in name (" + fmt.Sprint(song.Builtins()) + ") or a .json/.mid file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ref := cfg.Song
			if len(args) == 1 {
				ref = args[0]
			}
			if tempo == 0 {
				tempo = cfg.Tempo
			}

			s, err := song.Open(ref, tempo)
			if err != nil {
				return err
			}
			engine, err := rhythm.New(s)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTimeline(s, engine))
			return nil
		},
	}
	cmd.Flags().Uint32Var(&tempo, "tempo", 0, "loop ticks per song unit (default: song or config)")
	return cmd
}

func renderTimeline(s *song.Song, engine *rhythm.Engine) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "pitch", "tick", "length", "loop tick")

	period := engine.TickPeriod()
	for i, c := range engine.Timeline() {
		t.Row(
			strconv.Itoa(i),
			c.Pitch.String(),
			strconv.FormatUint(uint64(c.Offset), 10),
			strconv.FormatUint(uint64(c.Length), 10),
			strconv.FormatUint(uint64(c.Offset)*uint64(period), 10),
		)
	}

	return fmt.Sprintf("%s  tempo %d  %d cues  %d ticks  %d loop ticks\n%s\n",
		s.Name(), period, s.Len(), s.Duration(), uint64(engine.MaxTicks())*uint64(period), t.String())
}
