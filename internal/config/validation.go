package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ValidationError describes a single config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for a single validation error.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// Validate checks cfg and returns every issue found rather than stopping at
// the first one.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// --- API ---
	if cfg.API.BaseURL == "" {
		add("api.base_url", "required field is empty")
	} else if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		add("api.base_url", "must be an absolute http(s) URL, got %q", cfg.API.BaseURL)
	}
	if !strings.HasPrefix(cfg.API.CataloguePath, "/") {
		add("api.catalogue_path", "must start with '/', got %q", cfg.API.CataloguePath)
	}
	if !strings.HasPrefix(cfg.API.SubmitPath, "/") {
		add("api.submit_path", "must start with '/', got %q", cfg.API.SubmitPath)
	}
	if cfg.API.Timeout <= 0 {
		add("api.timeout", "must be > 0, got %s", cfg.API.Timeout)
	} else if cfg.API.Timeout > 5*time.Minute {
		add("api.timeout", "must be at most 5m, got %s", cfg.API.Timeout)
	}

	// --- Stub ---
	if _, _, err := net.SplitHostPort(cfg.Stub.Addr); err != nil {
		add("stub.addr", "must be host:port, got %q", cfg.Stub.Addr)
	}
	if cfg.Stub.CatalogueFile == "" {
		add("stub.catalogue_file", "required field is empty")
	}
	if cfg.Stub.InboxDir == "" {
		add("stub.inbox_dir", "required field is empty")
	}

	// --- Log ---
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level)); err != nil || cfg.Log.Level == "" {
		add("log.level", "unknown level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		add("log.format", "must be console or json, got %q", cfg.Log.Format)
	}

	return errs
}
