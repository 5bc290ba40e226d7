package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Analytics AnalyticsConfig `yaml:"analytics" envconfig:"ANALYTICS"`
	Insights  InsightsConfig  `yaml:"insights" envconfig:"INSIGHTS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// AnalyticsConfig contains analytics engine configuration
type AnalyticsConfig struct {
	// TopK is the number of leading tickers used for the volume
	// concentration metric.
	TopK int `yaml:"top_k" envconfig:"TOP_K"`
}

// InsightsConfig contains insight generation configuration
type InsightsConfig struct {
	Provider    string        `yaml:"provider" envconfig:"PROVIDER"`
	Model       string        `yaml:"model" envconfig:"MODEL"`
	MaxTokens   int           `yaml:"max_tokens" envconfig:"MAX_TOKENS"`
	Temperature float64       `yaml:"temperature" envconfig:"TEMPERATURE"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	// APIKeyEnv names the environment variable holding the provider key.
	// The key itself is never stored in configuration.
	APIKeyEnv string `yaml:"api_key_env" envconfig:"API_KEY_ENV"`
}

// defaultConfig returns the built-in defaults. File and environment values
// layer on top of these.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxUploadBytes:  10 << 20,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
		Analytics: AnalyticsConfig{
			TopK: 3,
		},
		Insights: InsightsConfig{
			Provider:    "local",
			MaxTokens:   900,
			Temperature: 0.2,
			Timeout:     30 * time.Second,
		},
	}
}

// Load builds the configuration by layering, in order of increasing
// precedence: built-in defaults, an optional config.yaml, then environment
// variables with the INSIGHT prefix.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if data, err := os.ReadFile(configFilePath()); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("INSIGHT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configFilePath returns the config file location, overridable for tests
func configFilePath() string {
	if path := os.Getenv("INSIGHT_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// validate checks configuration invariants
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Analytics.TopK < 1 {
		return fmt.Errorf("analytics top_k must be positive, got %d", c.Analytics.TopK)
	}

	switch strings.ToLower(c.Insights.Provider) {
	case "local", "anthropic", "openai":
	default:
		return fmt.Errorf("invalid insights provider: %s", c.Insights.Provider)
	}

	return nil
}

// APIKey resolves the API key for the given provider. An explicit
// api_key_env setting wins; otherwise the provider's conventional
// environment variable is read. Returns "" when unset, which forces
// the local provider.
func (c *InsightsConfig) APIKey(provider string) string {
	env := c.APIKeyEnv
	if env == "" {
		switch strings.ToLower(provider) {
		case "anthropic":
			env = "ANTHROPIC_API_KEY"
		case "openai":
			env = "OPENAI_API_KEY"
		default:
			return ""
		}
	}
	return os.Getenv(env)
}
