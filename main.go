package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-rhythm/config"
	"go-rhythm/debug"
)

var (
	configPath string
	debugLog   bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "go-rhythm",
		Short: "Tick-driven rhythm game for a buzzer, a 16x2 LCD and an ultrasonic sensor",
		Long: `go-rhythm scrolls a song's notes across a character display and plays
them on a buzzer or MIDI synth. Hold your hand over the distance sensor while
a note sounds to score it. Without hardware the board is simulated.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debugLog {
				if err := debug.Enable(""); err != nil {
					return fmt.Errorf("enable debug log: %w", err)
				}
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/go-rhythm/config.json)")
	root.PersistentFlags().BoolVar(&debugLog, "debug", false, "write a debug log to "+debug.Path())

	root.AddCommand(
		newPlayCmd(),
		newPortsCmd(),
		newTimelineCmd(),
		newConfigCmd(),
	)
	return root
}

// loadConfig reads --config, or the default config path
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

func main() {
	defer debug.Disable()
	cobra.CheckErr(newRootCmd().Execute())
}
