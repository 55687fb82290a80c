package types

import (
	"log/slog"

	"github.com/lepinkainen/pngsqueeze/config"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Config  *config.Config
	// Logger writes to the configured log file, or stderr without one
	Logger *slog.Logger
}

// Unpack returns the context values, substituting defaults for a nil or partial context
func (c *AppContext) Unpack() (string, *config.Config, *slog.Logger) {
	version := DefaultVersion
	var cfg *config.Config
	var logger *slog.Logger
	if c != nil {
		if c.Version != "" {
			version = c.Version
		}
		cfg = c.Config
		logger = c.Logger
	}
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return version, cfg, logger
}
