package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the config file name looked up in each location.
const FileName = "estimator.yml"

// GlobalPath returns $XDG_CONFIG_HOME/estimator/estimator.yml, falling back
// to ~/.config.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "estimator", FileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "estimator", FileName)
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return FileName
}

// Write saves cfg as YAML at path, creating parent directories. It refuses
// to overwrite an existing file unless force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
