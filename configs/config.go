package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FillDefaults are the static auto-fill values a deployment can override in
// the config file. Nil means "keep the built-in default". Useful when the
// Bexio account's default user or base currency is not id 1.
type FillDefaults struct {
	UserID        *int `yaml:"user_id"`
	OwnerID       *int `yaml:"owner_id"`
	ContactTypeID *int `yaml:"contact_type_id"`
	CurrencyID    *int `yaml:"currency_id"`
}

// FileConfig is the structure of the optional YAML configuration file.
type FileConfig struct {
	Defaults FillDefaults `yaml:"defaults"`
}

// Config holds the final application configuration. Fields are loaded from
// environment variables with the prefix "BEXIO_"; env vars override file
// settings.
type Config struct {
	// ConfigFilePath points at an optional YAML file with fill-default
	// overrides. Loaded first from env.
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	AccessToken string        `envconfig:"ACCESS_TOKEN" required:"true"`
	APIURL      string        `envconfig:"API_URL" default:"https://api.bexio.com"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"120s"`

	ListenAddr      string        `envconfig:"LISTEN_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`

	SearchFallbackLimit int `envconfig:"SEARCH_FALLBACK_LIMIT" default:"200"`

	OtelExporterOtlpEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`

	// File-loaded fields (not settable via env).
	Defaults FillDefaults `ignored:"true"`
}

// ParsedLogLevel returns the slog.Level for the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Load reads configuration from environment variables, then merges in the
// optional YAML file, then processes the environment again so env vars win.
// A missing access token fails here; the server cannot start without one.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("bexio", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if cfg.ConfigFilePath != "" {
		yamlFile, err := os.ReadFile(cfg.ConfigFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", cfg.ConfigFilePath, err)
		}
		var fileCfg FileConfig
		if err := yaml.Unmarshal(yamlFile, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", cfg.ConfigFilePath, err)
		}
		cfg.Defaults = fileCfg.Defaults

		// Process env again so env vars override anything the file set.
		if err := envconfig.Process("bexio", &cfg); err != nil {
			return nil, fmt.Errorf("failed to process overriding environment variables: %w", err)
		}
	}

	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, fmt.Errorf("missing BEXIO_ACCESS_TOKEN; set it in the environment or your MCP client config")
	}

	return &cfg, nil
}
