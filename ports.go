package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-rhythm/midi"
)

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List MIDI output ports usable with --tone midi",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer midi.CloseDriver()

			names, err := midi.OutPorts()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "no MIDI output ports")
				return nil
			}
			fmt.Fprintln(out, "=== MIDI Output Ports ===")
			for i, name := range names {
				fmt.Fprintf(out, "  %d: %s\n", i, name)
			}
			return nil
		},
	}
}
