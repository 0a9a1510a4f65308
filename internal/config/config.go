package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the main application configuration structure
// containing all configuration sections
type Config struct {
	Server   ServerConfig   `toml:"server"`   // HTTP server settings
	Feed     FeedConfig     `toml:"feed"`     // Live state-vector feed settings
	Airports AirportsConfig `toml:"airports"` // Airport reference table settings
	Airlines AirlinesConfig `toml:"airlines"` // Airline directory settings
	Cache    CacheConfig    `toml:"cache"`    // Pipeline result caching settings
	Map      MapConfig      `toml:"map"`      // Flight map rendering settings
	Logging  LoggingConfig  `toml:"logging"`  // Application logging settings
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port               int      `toml:"port"`                  // HTTP port for the server
	Host               string   `toml:"host"`                  // Host address to bind to (e.g., 127.0.0.1 for localhost only, 0.0.0.0 for all interfaces)
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`  // List of origins allowed for CORS requests (use ["*"] for all origins)
	ReadTimeoutSecs    int      `toml:"read_timeout_seconds"`  // Maximum duration for reading the entire request
	WriteTimeoutSecs   int      `toml:"write_timeout_seconds"` // Maximum duration for writing the response
	IdleTimeoutSecs    int      `toml:"idle_timeout_seconds"`  // Maximum duration to wait for the next request when keep-alives are enabled
	StaticFilesDir     string   `toml:"static_files_dir"`      // Directory to serve static files from (empty disables static serving)
}

// FeedConfig contains settings for the live state-vector feed source
type FeedConfig struct {
	// URL of the global state snapshot endpoint (OpenSky /states/all format:
	// JSON object with a "states" array of fixed-position value arrays).
	SourceURL string `toml:"source_url"`

	// Optional bearer token sent with feed requests. Anonymous requests work
	// but are rate-limited by the provider.
	AccessToken string `toml:"access_token"`

	TimeoutSecs int `toml:"timeout_seconds"` // HTTP timeout for feed requests
}

// AirportsConfig contains settings for the airport reference table
type AirportsConfig struct {
	// Source is either a local CSV snapshot path or an http(s) URL.
	// The table must be in OurAirports format with at least the
	// ident, name, latitude_deg, longitude_deg and type columns.
	Source      string `toml:"source"`
	TimeoutSecs int    `toml:"timeout_seconds"` // HTTP timeout when the source is a URL
}

// AirlinesConfig contains settings for the airline directory source
type AirlinesConfig struct {
	// SourceURL points at an OpenFlights-format airlines CSV with positional
	// columns [AirlineID, Name, Alias, IATA, ICAO, Callsign, Country, Active].
	SourceURL   string `toml:"source_url"`
	TimeoutSecs int    `toml:"timeout_seconds"` // HTTP timeout for directory requests
}

// CacheConfig contains settings for per-airline pipeline result caching
type CacheConfig struct {
	TTLSecs int `toml:"ttl_seconds"` // How long a processed snapshot stays valid for the selected airline
}

// MapConfig contains flight map rendering settings
type MapConfig struct {
	DefaultZoom int `toml:"default_zoom"` // Zoom level for the empty wide-view map
	FocusedZoom int `toml:"focused_zoom"` // Zoom level when centered on a flight set
}

// LoggingConfig contains application logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // Log level: "debug", "info", "warn", or "error"
	Format string `toml:"format"` // Log format: "json" (structured) or "console" (human-readable)
}

// Default endpoints match the public data sources the app was built against.
const (
	defaultFeedURL     = "https://opensky-network.org/api/states/all"
	defaultAirlinesURL = "https://raw.githubusercontent.com/jpatokal/openflights/master/data/airlines.dat"
)

// Load loads the configuration from the specified file path
func Load(path string) (*Config, error) {
	var config Config

	// Check if the file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Read the config file
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &config, nil
}

// LoadWithFallback loads the configuration by checking multiple locations in order of preference
func LoadWithFallback(preferredPath string) (*Config, error) {
	searchPaths := []string{
		preferredPath,         // User-specified path (if provided)
		"configs/config.toml", // Location in configs/ folder
		"config.toml",         // Root directory
	}

	// Remove duplicates while preserving order
	uniquePaths := make([]string, 0, len(searchPaths))
	seen := make(map[string]bool)
	for _, path := range searchPaths {
		if path != "" && !seen[path] {
			uniquePaths = append(uniquePaths, path)
			seen[path] = true
		}
	}

	var lastErr error
	for _, path := range uniquePaths {
		if _, err := os.Stat(path); err == nil {
			config, err := Load(path)
			if err != nil {
				lastErr = fmt.Errorf("failed to load config from %s: %w", path, err)
				continue
			}
			return config, nil
		}
		lastErr = fmt.Errorf("config file not found: %s", path)
	}

	return nil, fmt.Errorf("config file not found in any of the expected locations: %v. Last error: %w", uniquePaths, lastErr)
}

// Validate validates the configuration and applies defaults
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.ReadTimeoutSecs <= 0 {
		c.Server.ReadTimeoutSecs = 30
	}
	if c.Server.WriteTimeoutSecs <= 0 {
		c.Server.WriteTimeoutSecs = 60
	}
	if c.Server.IdleTimeoutSecs <= 0 {
		c.Server.IdleTimeoutSecs = 120
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}

	// Static file serving is optional, but a configured directory must exist
	if c.Server.StaticFilesDir != "" {
		if _, err := os.Stat(c.Server.StaticFilesDir); os.IsNotExist(err) {
			return fmt.Errorf("static files directory does not exist: %s", c.Server.StaticFilesDir)
		}
	}

	// Validate feed config
	if c.Feed.SourceURL == "" {
		c.Feed.SourceURL = defaultFeedURL
	}
	if !strings.HasPrefix(c.Feed.SourceURL, "http://") && !strings.HasPrefix(c.Feed.SourceURL, "https://") {
		return fmt.Errorf("invalid feed source_url: %s", c.Feed.SourceURL)
	}
	if c.Feed.TimeoutSecs <= 0 {
		c.Feed.TimeoutSecs = 30
	}

	// Validate airports config
	if c.Airports.Source == "" {
		return fmt.Errorf("airports source is required")
	}
	if c.Airports.TimeoutSecs <= 0 {
		c.Airports.TimeoutSecs = 30
	}

	// Validate airlines config
	if c.Airlines.SourceURL == "" {
		c.Airlines.SourceURL = defaultAirlinesURL
	}
	if !strings.HasPrefix(c.Airlines.SourceURL, "http://") && !strings.HasPrefix(c.Airlines.SourceURL, "https://") {
		return fmt.Errorf("invalid airlines source_url: %s", c.Airlines.SourceURL)
	}
	if c.Airlines.TimeoutSecs <= 0 {
		c.Airlines.TimeoutSecs = 30
	}

	// Validate cache config
	if c.Cache.TTLSecs <= 0 {
		c.Cache.TTLSecs = 300
	}

	// Validate map config
	if c.Map.DefaultZoom <= 0 {
		c.Map.DefaultZoom = 2
	}
	if c.Map.FocusedZoom <= 0 {
		c.Map.FocusedZoom = 6
	}

	// Validate logging config
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid log level
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	switch c.Logging.Format {
	case "json", "console":
		// Valid log format
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}
