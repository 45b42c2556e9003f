// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Flow      FlowConfig      `toml:"flow"`
	Questions QuestionsConfig `toml:"questions"`
	Server    ServerConfig    `toml:"server"`
	Log       LogConfig       `toml:"log"`
}

// FlowConfig maps terminal flow timing.
type FlowConfig struct {
	Splash          *string `toml:"splash"`
	AdvanceDelay    *string `toml:"advance-delay"`
	QuestionTimeout *string `toml:"question-timeout"`
	Reveal          *string `toml:"reveal"`
}

// QuestionsConfig maps the question API client.
type QuestionsConfig struct {
	APIURL  *string `toml:"api-url"`
	Timeout *string `toml:"timeout"`
}

// ServerConfig maps the HTTP API server.
type ServerConfig struct {
	Addr           *string   `toml:"addr"`
	AllowedOrigins *[]string `toml:"allowed-origins"`
	DB             *string   `toml:"db"`
}

// LogConfig maps logger settings.
type LogConfig struct {
	Mode  *string `toml:"mode"`
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ParseDuration parses a non-negative duration for the named setting.
func ParseDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid --%s value: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("--%s must be >= 0", name)
	}
	return d, nil
}
