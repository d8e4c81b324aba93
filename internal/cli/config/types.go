// Package config provides configuration management for the launchdash CLI.
//
// Values are layered with koanf, lowest to highest precedence: built-in
// defaults, launchdash.yaml, LAUNCHDASH_ environment variables, and
// explicitly set command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Server    ServerConfig    `koanf:"server"`
	Dashboard DashboardConfig `koanf:"dashboard"`
	Log       LogConfig       `koanf:"log"`
	Verbose   bool            `koanf:"verbose"`
}

// DataConfig locates the launch data file.
type DataConfig struct {
	Path   string `koanf:"path"`
	Loader string `koanf:"loader"` // csv, duckdb
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Host          string `koanf:"host"`
	Port          int    `koanf:"port"`
	Debug         bool   `koanf:"debug"`
	AutoOpen      bool   `koanf:"auto_open"`
	SessionSecret string `koanf:"session_secret"`
}

// DashboardConfig controls page text and filter behavior.
type DashboardConfig struct {
	Title           string   `koanf:"title"`
	PageTitle       string   `koanf:"page_title"`
	InclusiveBounds bool     `koanf:"inclusive_bounds"`
	Palette         []string `koanf:"palette"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

// Default configuration values.
const (
	DefaultDataPath  = "Downloads/spacex_launch_dash.csv"
	DefaultLoader    = "csv"
	DefaultHost      = "127.0.0.1"
	DefaultPort      = 8050
	DefaultTitle     = "SpaceX Launch Records Dashboard"
	DefaultPageTitle = "SpaceX Launch Dashboard"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// ConfigFileName is the config file looked up in the working directory.
	ConfigFileName = "launchdash.yaml"

	// ConfigFileNameAlt is the alternate config file name.
	ConfigFileNameAlt = "launchdash.yml"

	// EnvPrefix prefixes environment overrides. A double underscore
	// separates nesting levels: LAUNCHDASH_SERVER__PORT sets server.port.
	EnvPrefix = "LAUNCHDASH_"
)

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// URL returns the browser URL of the dashboard.
func (s ServerConfig) URL() string {
	host := s.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + joinHostPort(host, s.Port)
}
