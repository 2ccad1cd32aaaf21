package config

import "fmt"

// ConfigError represents an invalid or unreadable configuration.
type ConfigError struct {
	Message  string
	Original error
}

func (e *ConfigError) Error() string {
	if e.Original != nil {
		return fmt.Sprintf("config: %s: %v", e.Message, e.Original)
	}
	return fmt.Sprintf("config: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Original
}
