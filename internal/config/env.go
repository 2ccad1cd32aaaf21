package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override settings for a single run.
const (
	EnvDestination = "BIPPI_DEST"
	EnvFormat      = "BIPPI_FORMAT"
	EnvYtDlp       = "BIPPI_YTDLP"
	EnvWorkers     = "BIPPI_WORKERS"
)

// LoadDotEnv reads an optional .env file from the working directory into
// the process environment. Variables already set are not overridden.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv returns a copy of s with BIPPI_* environment overrides
// applied. s itself is left untouched so overrides are never persisted.
func (s *Settings) ApplyEnv() (*Settings, error) {
	return s.applyEnv(os.Getenv)
}

func (s *Settings) applyEnv(getenv func(string) string) (*Settings, error) {
	out := s.Clone()

	if v := getenv(EnvDestination); v != "" {
		out.DefaultDestination = v
	}
	if v := getenv(EnvFormat); v != "" {
		out.DefaultFormat = v
	}
	if v := getenv(EnvYtDlp); v != "" {
		out.YtDlpPath = v
	}
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &ConfigError{Message: fmt.Sprintf("%s=%q is not a number", EnvWorkers, v), Original: err}
		}
		out.Workers = n
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
