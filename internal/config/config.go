package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimeout = 30 * time.Second

	configPathEnv     = "NEWSTOCHAT_CONFIG"
	backendURLEnv     = "FASTAPI_URL"
	backendTimeoutEnv = "BACKEND_TIMEOUT"
	feedURLEnv        = "NEWS_FEED_URL"
	defaultSourceEnv  = "ARTICLE_SOURCE"
	serverPortEnv     = "PORT"
	serverCSVEnv      = "ARTICLES_CSV"
	simulateTunnelEnv = "SIMULATE_TUNNEL_WARNING"
	refreshEnv        = "FEED_REFRESH_SCHEDULE"
	logLevelEnv       = "LOG_LEVEL"
	logFormatEnv      = "LOG_FORMAT"
	logFileEnv        = "LOG_FILE"
)

// Source names understood by the article source registry.
const (
	SourceStatic  = "static"
	SourceBackend = "backend"
	SourceFeed    = "feed"
)

// Config holds high-level settings required across the application.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Sources SourceConfig  `yaml:"sources"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig describes the default inference backend.
type BackendConfig struct {
	// DefaultURL is used when no interactive connection is active. Empty means no backend.
	DefaultURL        string        `yaml:"defaultUrl"`
	Timeout           time.Duration `yaml:"timeout"`
	SkipTunnelWarning *bool         `yaml:"skipTunnelWarning"`
}

// SendSkipWarningHeader reports whether requests carry the tunnel bypass header.
func (b BackendConfig) SendSkipWarningHeader() bool {
	return b.SkipTunnelWarning == nil || *b.SkipTunnelWarning
}

// SourceConfig selects where the initial article list comes from.
type SourceConfig struct {
	Default  string `yaml:"default"`
	FeedURL  string `yaml:"feedUrl"`
	FeedSize int    `yaml:"feedSize"`
}

// ServerConfig configures the local demo backend.
type ServerConfig struct {
	Addr                  string `yaml:"addr"`
	CSVPath               string `yaml:"csvPath"`
	SimulateTunnelWarning bool   `yaml:"simulateTunnelWarning"`
	// RefreshSchedule is a cron expression; with sources.feedUrl set the server
	// serves feed articles refreshed on this schedule.
	RefreshSchedule       string `yaml:"refreshSchedule"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Load reads YAML configuration (if present), an optional .env file, and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if fileCfg, err := Parse(raw); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg.applyEnvOverrides(os.Getenv)
	cfg.normalize()
	return cfg
}

// Parse decodes a YAML document without applying defaults.
func Parse(raw []byte) (Config, error) {
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, err
	}
	return fileCfg, nil
}

func (c *Config) applyEnvOverrides(getenv func(string) string) {
	if v := getenv(backendURLEnv); v != "" {
		c.Backend.DefaultURL = v
	}

	if v := getenv(backendTimeoutEnv); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Backend.Timeout = d
		} else {
			log.Printf("config: invalid %s=%q: %v", backendTimeoutEnv, v, err)
		}
	}

	if v := getenv(feedURLEnv); v != "" {
		c.Sources.FeedURL = v
	}

	if v := getenv(defaultSourceEnv); v != "" {
		c.Sources.Default = v
	}

	if v := getenv(serverPortEnv); v != "" {
		c.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}

	if v := getenv(serverCSVEnv); v != "" {
		c.Server.CSVPath = v
	}

	if v := getenv(simulateTunnelEnv); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Server.SimulateTunnelWarning = b
		}
	}

	if v := getenv(refreshEnv); v != "" {
		c.Server.RefreshSchedule = v
	}

	if v := getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := getenv(logFormatEnv); v != "" {
		c.Logging.Format = v
	}

	if v := getenv(logFileEnv); v != "" {
		c.Logging.File = v
	}
}

func (c *Config) normalize() {
	c.Backend.DefaultURL = strings.TrimSpace(c.Backend.DefaultURL)
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = defaultTimeout
	}

	switch c.Sources.Default {
	case SourceStatic, SourceBackend, SourceFeed:
	default:
		log.Printf("config: unknown article source %q, reverting to %s", c.Sources.Default, SourceBackend)
		c.Sources.Default = SourceBackend
	}
	if c.Sources.FeedSize <= 0 {
		c.Sources.FeedSize = 10
	}
}

func mergeConfig(base, override Config) Config {
	if override.Backend.DefaultURL != "" {
		base.Backend.DefaultURL = override.Backend.DefaultURL
	}
	if override.Backend.Timeout != 0 {
		base.Backend.Timeout = override.Backend.Timeout
	}
	if override.Backend.SkipTunnelWarning != nil {
		base.Backend.SkipTunnelWarning = override.Backend.SkipTunnelWarning
	}

	if override.Sources.Default != "" {
		base.Sources.Default = override.Sources.Default
	}
	if override.Sources.FeedURL != "" {
		base.Sources.FeedURL = override.Sources.FeedURL
	}
	if override.Sources.FeedSize != 0 {
		base.Sources.FeedSize = override.Sources.FeedSize
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.CSVPath != "" {
		base.Server.CSVPath = override.Server.CSVPath
	}
	if override.Server.SimulateTunnelWarning {
		base.Server.SimulateTunnelWarning = true
	}
	if override.Server.RefreshSchedule != "" {
		base.Server.RefreshSchedule = override.Server.RefreshSchedule
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Backend: BackendConfig{Timeout: defaultTimeout},
		Sources: SourceConfig{Default: SourceBackend, FeedSize: 10},
		Server:  ServerConfig{Addr: ":8000"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}
