package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the storyspec CLI configuration.
type Config struct {
	Output    string `yaml:"output,omitempty"`    // console, text, json, junit, tap
	NoColor   *bool  `yaml:"noColor,omitempty"`
	Verbose   *bool  `yaml:"verbose,omitempty"`
	HistoryDB string `yaml:"historyDb,omitempty"` // path to the SQLite run store
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetOutput returns the output format, defaulting to console
func (c *Config) GetOutput() string {
	if c.Output == "" {
		return "console"
	}
	return c.Output
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetHistoryDB returns the run store path, defaulting to .storyspec/history.db
func (c *Config) GetHistoryDB() string {
	if c.HistoryDB == "" {
		return filepath.Join(".storyspec", "history.db")
	}
	return c.HistoryDB
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".storyspec.yaml",
	".storyspec.yml",
	"storyspec.yaml",
	"storyspec.yml",
}

// LoadConfig loads configuration from the specified path or searches for
// config files in the current directory. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return &Config{}, nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return config, nil
}
