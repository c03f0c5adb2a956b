package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/username/date-picker/internal/calendar"
	"go.uber.org/zap/zapcore"
)

// Availability source types
const (
	AvailabilityNone      = "none"
	AvailabilityFile      = "file"
	AvailabilityIsDayOff  = "isdayoff"
	AvailabilityComposite = "composite"
)

// Config represents application configuration
type Config struct {
	Locale       string             `mapstructure:"locale"`
	Availability AvailabilityConfig `mapstructure:"availability"`
	Log          LogConfig          `mapstructure:"log"`
}

// AvailabilityConfig selects where the selectable-date predicate comes from
type AvailabilityConfig struct {
	Type        string `mapstructure:"type"` // "none", "file", "isdayoff" or "composite"
	File        string `mapstructure:"file"`
	APIURL      string `mapstructure:"api_url"`
	FallbackURL string `mapstructure:"fallback_url"` // xmlcalendar URL with {year}
	Country     string `mapstructure:"country"`
	CacheTTL    string `mapstructure:"cache_ttl"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. With an empty path the default
// locations are searched and a missing file leaves the defaults in place.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("locale", "de-DE")
	v.SetDefault("availability.type", AvailabilityNone)
	v.SetDefault("availability.api_url", calendar.DefaultIsDayOffURL)
	v.SetDefault("availability.country", "ru")
	v.SetDefault("availability.cache_ttl", "24h")
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.date-picker")
		v.AddConfigPath("/etc/date-picker")
	}

	v.SetEnvPrefix("DATEPICKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Locale == "" {
		return fmt.Errorf("locale is required")
	}

	switch c.Availability.Type {
	case "", AvailabilityNone:
	case AvailabilityFile:
		if c.Availability.File == "" {
			return fmt.Errorf("availability.file is required for file type")
		}
	case AvailabilityIsDayOff:
		if c.Availability.APIURL == "" {
			return fmt.Errorf("availability.api_url is required for isdayoff type")
		}
	case AvailabilityComposite:
		if c.Availability.APIURL == "" {
			return fmt.Errorf("availability.api_url is required for composite type")
		}
		if c.Availability.File == "" {
			return fmt.Errorf("availability.file is required for composite type")
		}
	default:
		return fmt.Errorf("availability.type must be one of none, file, isdayoff, composite, got '%s'", c.Availability.Type)
	}

	if c.Log.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	return nil
}

// GetCacheTTL returns cache TTL duration
func (c *AvailabilityConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}
