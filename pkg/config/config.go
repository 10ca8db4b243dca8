package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	JWTSecretKey string `mapstructure:"jwt_secret_key"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional storage settings
	DBPath string `mapstructure:"db_path"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "text" or "json"

	// Optional JWT settings
	JWTAlgorithm string        `mapstructure:"jwt_algorithm"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`

	// Optional content settings
	ParagraphMaxChars int `mapstructure:"paragraph_max_chars"`

	ConfigPath string
}

const (
	DefaultConfigPath        = "/etc/typesprint/config.yml"
	DefaultDBPath            = "/var/lib/typesprint/db.sqlite3"
	DefaultAPIHost           = "0.0.0.0"
	DefaultAPIPort           = 8336
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultJWTAlgorithm      = "HS256"
	DefaultTokenTTL          = 15 * time.Minute
	DefaultParagraphMaxChars = 500

	EnvPrefix = "TYPESPRINT"
)

// Load reads the YAML config file at configPath and applies TYPESPRINT_*
// environment overrides. An empty configPath means the default location,
// which may be absent.
func Load(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("jwt_algorithm", DefaultJWTAlgorithm)
	v.SetDefault("token_ttl", DefaultTokenTTL)
	v.SetDefault("paragraph_max_chars", DefaultParagraphMaxChars)
	v.SetDefault("jwt_secret_key", "")
	v.SetDefault("ssl_cert", "")
	v.SetDefault("ssl_key", "")
	v.SetDefault("log_file", "")
	v.SetDefault("cors_origins", []string{})

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("jwt_secret_key is required")
	}

	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("jwt_algorithm must be one of HS256, HS384, HS512")
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port must be between 1 and 65535")
	}

	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if c.ParagraphMaxChars < 50 || c.ParagraphMaxChars > 5000 {
		return fmt.Errorf("paragraph_max_chars must be between 50 and 5000")
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be 'text' or 'json'")
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return os.Getenv(EnvPrefix+"_DEV_MODE") == "1"
}
