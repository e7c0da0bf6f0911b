// Package config handles configuration loading for the storyspec CLI.
//
// It provides functionality for:
//   - Loading configuration from .storyspec.yaml files
//   - Default values for anything left unset
package config
