package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/leapstack-labs/launchdash/internal/launch"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}

	if !launch.IsRegistered(c.Data.Loader) {
		return &launch.UnknownLoaderError{Name: c.Data.Loader, Available: launch.ListLoaders()}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range (0-65535)", c.Server.Port)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: want text or json", c.Log.Format)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}

	for _, color := range c.Dashboard.Palette {
		if !hexColorPattern.MatchString(color) {
			return fmt.Errorf("dashboard.palette: %q is not a #rrggbb color", color)
		}
	}

	return nil
}

// ValidateDataFile checks that the data file exists.
func (c *Config) ValidateDataFile() error {
	if _, err := os.Stat(c.Data.Path); os.IsNotExist(err) {
		return fmt.Errorf("data file does not exist: %s\nHint: use --data to specify a different path", c.Data.Path)
	}
	return nil
}
