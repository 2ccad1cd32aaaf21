// Package config provides configuration management for bippi.
//
// This package handles:
//   - Loading and saving settings as YAML
//   - Default configuration values and validation
//   - Run-time overrides from BIPPI_* environment variables and .env
//   - Locating the config directory (XDG config home)
//
// # Store lifecycle
//
// Commands receive an explicit Store. It is loaded at start and flushed
// at the end; Flush is a no-op unless a setter ran:
//
//	store, err := config.OpenStore(config.SettingsPath(config.Dir("")))
//	if err != nil {
//	    return err
//	}
//	if _, err := store.SetDest("/srv/music"); err != nil {
//	    return err
//	}
//	return store.Flush()
//
// # Effective settings
//
// Environment overrides never reach the file:
//
//	settings, err := store.Settings().ApplyEnv()
//	dest := settings.Destination() // configured, else XDG music dir, else ~/music
//	format := settings.Format()    // configured, else mp3
//
// # Configuration Options
//
// Settings includes options for:
//   - Default destination and audio format
//   - Sequential or bounded-parallel downloads (workers, 1 to 4)
//   - Title matching threshold
//   - Album folder, playlist and cover art naming
//   - Cover art embedding and playlist generation
//   - Paths of external tools
package config
