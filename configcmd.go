package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-rhythm/config"
)

func newConfigCmd() *cobra.Command {
	var initFile, force bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective config, or write the defaults with --init",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if initFile {
				return writeDefaults(cmd, force)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&initFile, "init", false, "write the default config")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config with --init")
	return cmd
}

func writeDefaults(cmd *cobra.Command, force bool) error {
	path := configPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force)", path)
	}

	cfg := config.DefaultConfig()
	save := cfg.Save
	if configPath != "" {
		save = func() error { return cfg.SaveFile(configPath) }
	}
	if err := save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
