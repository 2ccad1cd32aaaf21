package main

import (
	"github.com/landonrogers/bippi/internal/alias"
	"github.com/landonrogers/bippi/internal/config"
	"github.com/spf13/cobra"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	configDir string
	verbose   bool

	store   *config.Store
	aliases *alias.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "bippi",
		Short: "Download tagged albums and tracks with yt-dlp and MusicBrainz",
		Long: "bippi resolves a search query, URL or saved alias into audio sources,\n" +
			"downloads them with yt-dlp and tags them with MusicBrainz metadata.\n\n" +
			"For interactive mode, use: bippi-tui",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "directory holding config.yaml and aliases.json")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "show verbose output")

	cmd.AddCommand(
		cmdSingle(a),
		cmdAlbum(a),
		cmdAlias(a),
		cmdConfig(a),
	)
	return cmd
}

// load opens the persisted stores once per invocation.
func (a *app) load() error {
	dir := config.Dir(a.configDir)

	store, err := config.OpenStore(config.SettingsPath(dir))
	if err != nil {
		return err
	}
	aliases, err := alias.Load(config.AliasesPath(dir))
	if err != nil {
		return err
	}

	a.store = store
	a.aliases = aliases
	return nil
}
