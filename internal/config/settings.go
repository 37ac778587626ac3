package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds application-level configuration, as opposed to the
// simulation files read by InputParser.
type Settings struct {
	Logging LoggingSettings `mapstructure:"logging"`
	Cache   CacheSettings   `mapstructure:"cache"`
	Server  ServerSettings  `mapstructure:"server"`
	Report  ReportSettings  `mapstructure:"report"`
	SMTP    SMTPSettings    `mapstructure:"smtp"`
}

// LoggingSettings holds logging configuration options
type LoggingSettings struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"` // optional file output
}

// CacheSettings selects the result cache backend.
type CacheSettings struct {
	Backend   string        `mapstructure:"backend"` // none, memory, redis
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type ServerSettings struct {
	Address string `mapstructure:"address"`
}

type ReportSettings struct {
	Currency  string `mapstructure:"currency"`
	OutputDir string `mapstructure:"output_dir"`
	Company   string `mapstructure:"company"`
}

// SMTPSettings configures delivery of client reports by e-mail. The password
// is best supplied through INVSIM_SMTP_PASSWORD.
type SMTPSettings struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"` // used when the client file names no advisor email
}

// Configured reports whether enough is set to attempt a delivery.
func (s SMTPSettings) Configured() bool { return s.Host != "" && s.Port > 0 }

// EnvPrefix prefixes environment overrides, e.g. INVSIM_CACHE_BACKEND.
const EnvPrefix = "INVSIM"

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_file", "")
	v.SetDefault("cache.backend", "none")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("report.currency", "FCFA")
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("report.company", "CGF Gestion")
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
}

// LoadSettings reads settings from path, if given, layered over defaults and
// environment variables. A missing path is not an error.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks enumerated settings.
func (s *Settings) Validate() error {
	switch s.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", s.Logging.Level)
	}
	switch s.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	switch s.Cache.Backend {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("invalid cache backend: %s", s.Cache.Backend)
	}
	if s.Cache.TTL < 0 {
		return errors.New("cache ttl cannot be negative")
	}
	if s.Report.Currency == "" {
		return errors.New("report currency is required")
	}
	if s.SMTP.Port < 0 || s.SMTP.Port > 65535 {
		return fmt.Errorf("invalid smtp port: %d", s.SMTP.Port)
	}
	return nil
}
