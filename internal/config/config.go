// Package config loads estimator settings with viper. Precedence, lowest
// first: defaults, the XDG global file, ./estimator.yml, an explicit --config
// file, then ESTIMATOR_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full estimator configuration.
type Config struct {
	API  APIConfig  `mapstructure:"api" yaml:"api"`
	Stub StubConfig `mapstructure:"stub" yaml:"stub"`
	Log  LogConfig  `mapstructure:"log" yaml:"log"`
}

// APIConfig locates the intake backend.
type APIConfig struct {
	BaseURL       string        `mapstructure:"base_url" yaml:"base_url"`
	CataloguePath string        `mapstructure:"catalogue_path" yaml:"catalogue_path"`
	SubmitPath    string        `mapstructure:"submit_path" yaml:"submit_path"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// MarshalYAML writes the timeout as a duration string.
func (a APIConfig) MarshalYAML() (any, error) {
	return struct {
		BaseURL       string `yaml:"base_url"`
		CataloguePath string `yaml:"catalogue_path"`
		SubmitPath    string `yaml:"submit_path"`
		Timeout       string `yaml:"timeout"`
	}{a.BaseURL, a.CataloguePath, a.SubmitPath, a.Timeout.String()}, nil
}

// StubConfig configures the development backend started by `estimator serve`.
type StubConfig struct {
	Addr          string `mapstructure:"addr" yaml:"addr"`
	CatalogueFile string `mapstructure:"catalogue_file" yaml:"catalogue_file"`
	InboxDir      string `mapstructure:"inbox_dir" yaml:"inbox_dir"`
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	File   string `mapstructure:"file" yaml:"file"`
	Format string `mapstructure:"format" yaml:"format"`
}

var defaults = map[string]any{
	"api.base_url":        "http://localhost:8080",
	"api.catalogue_path":  "/services/for-project-form",
	"api.submit_path":     "/contact",
	"api.timeout":         15 * time.Second,
	"stub.addr":           ":8080",
	"stub.catalogue_file": "catalogue.json",
	"stub.inbox_dir":      ".estimator/inbox",
	"log.level":           "info",
	"log.file":            "",
	"log.format":          "console",
}

// Keys returns every configuration key, sorted.
func Keys() []string {
	return []string{
		"api.base_url", "api.catalogue_path", "api.submit_path", "api.timeout",
		"log.file", "log.format", "log.level",
		"stub.addr", "stub.catalogue_file", "stub.inbox_dir",
	}
}

var (
	loaded     *Config
	loadedFrom []string
	mu         sync.RWMutex
)

// Load builds the configuration. explicit, when non-empty, must exist.
func Load(explicit string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix("ESTIMATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range Keys() {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", k, err)
		}
	}

	var sources []string
	read := false
	merge := func(path string) error {
		v.SetConfigFile(path)
		var err error
		if !read {
			err = v.ReadInConfig()
		} else {
			err = v.MergeInConfig()
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		read = true
		sources = append(sources, path)
		return nil
	}

	for _, path := range []string{GlobalPath(), ProjectPath()} {
		if fileExists(path) {
			if err := merge(path); err != nil {
				return nil, err
			}
		}
	}
	if explicit != "" {
		if !fileExists(explicit) {
			return nil, fmt.Errorf("config file %s not found", explicit)
		}
		if err := merge(explicit); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	mu.Lock()
	loaded = &cfg
	loadedFrom = sources
	mu.Unlock()
	return &cfg, nil
}

// Get returns the most recently loaded config. It panics if Load has not
// been called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if loaded == nil {
		panic("config.Get() called before config.Load()")
	}
	return loaded
}

// Sources returns the files merged by the last Load, in order.
func Sources() []string {
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), loadedFrom...)
}

// Default returns the configuration with no files or environment applied.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:       defaults["api.base_url"].(string),
			CataloguePath: defaults["api.catalogue_path"].(string),
			SubmitPath:    defaults["api.submit_path"].(string),
			Timeout:       defaults["api.timeout"].(time.Duration),
		},
		Stub: StubConfig{
			Addr:          defaults["stub.addr"].(string),
			CatalogueFile: defaults["stub.catalogue_file"].(string),
			InboxDir:      defaults["stub.inbox_dir"].(string),
		},
		Log: LogConfig{
			Level:  defaults["log.level"].(string),
			Format: defaults["log.format"].(string),
		},
	}
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
