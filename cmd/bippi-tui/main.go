package main

import (
	"fmt"
	"os"

	"github.com/landonrogers/bippi/internal/alias"
	"github.com/landonrogers/bippi/internal/config"
	"github.com/landonrogers/bippi/internal/tui"
	"github.com/spf13/cobra"
)

func main() {
	config.LoadDotEnv()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:           "bippi-tui",
		Short:         "Interactive terminal UI for bippi",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, aliases, err := load(configDir)
			if err != nil {
				return err
			}
			return tui.Run(settings, aliases)
		},
	}

	cmd.Flags().StringVar(&configDir, "config-dir", "", "directory holding config.yaml and aliases.json")
	return cmd
}

// load reads the settings, with environment overrides, and the alias
// store from configDir.
func load(configDir string) (*config.Settings, *alias.Store, error) {
	dir := config.Dir(configDir)

	store, err := config.OpenStore(config.SettingsPath(dir))
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settings, err := store.Settings().ApplyEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	aliases, err := alias.Load(config.AliasesPath(dir))
	if err != nil {
		return nil, nil, fmt.Errorf("loading aliases: %w", err)
	}
	return settings, aliases, nil
}
