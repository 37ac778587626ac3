package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "info", s.Logging.Level)
	assert.Equal(t, "console", s.Logging.Format)
	assert.Equal(t, "none", s.Cache.Backend)
	assert.Equal(t, 24*time.Hour, s.Cache.TTL)
	assert.Equal(t, ":8080", s.Server.Address)
	assert.Equal(t, "FCFA", s.Report.Currency)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	content := "logging:\n" +
		"  level: debug\n" +
		"  format: json\n" +
		"cache:\n" +
		"  backend: redis\n" +
		"  redis_addr: cache:6379\n" +
		"  ttl: 90m\n" +
		"report:\n" +
		"  currency: EUR\n"
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("INVSIM_SERVER_ADDRESS", "127.0.0.1:9999")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.Logging.Level)
	assert.Equal(t, "json", s.Logging.Format)
	assert.Equal(t, "redis", s.Cache.Backend)
	assert.Equal(t, "cache:6379", s.Cache.RedisAddr)
	assert.Equal(t, 90*time.Minute, s.Cache.TTL)
	assert.Equal(t, "EUR", s.Report.Currency)
	assert.Equal(t, "127.0.0.1:9999", s.Server.Address)
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0644))
	_, err = LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestSettingsValidate(t *testing.T) {
	base := func() Settings {
		return Settings{
			Logging: LoggingSettings{Level: "info", Format: "json"},
			Cache:   CacheSettings{Backend: "memory"},
			Report:  ReportSettings{Currency: "FCFA"},
		}
	}

	s := base()
	assert.NoError(t, s.Validate())

	s = base()
	s.Logging.Format = "xml"
	assert.ErrorContains(t, s.Validate(), "invalid log format")

	s = base()
	s.Cache.Backend = "memcached"
	assert.ErrorContains(t, s.Validate(), "invalid cache backend")

	s = base()
	s.Cache.TTL = -time.Second
	assert.ErrorContains(t, s.Validate(), "ttl")

	s = base()
	s.Report.Currency = ""
	assert.ErrorContains(t, s.Validate(), "currency")
}

func TestLoadSettings_SMTP(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, 587, s.SMTP.Port)
	assert.False(t, s.SMTP.Configured())

	content := "smtp:\n" +
		"  host: smtp.example.com\n" +
		"  port: 2525\n" +
		"  username: reports\n" +
		"  from: reports@example.com\n"
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("INVSIM_SMTP_PASSWORD", "s3cret")

	s, err = LoadSettings(path)
	require.NoError(t, err)
	assert.True(t, s.SMTP.Configured())
	assert.Equal(t, "smtp.example.com", s.SMTP.Host)
	assert.Equal(t, 2525, s.SMTP.Port)
	assert.Equal(t, "reports", s.SMTP.Username)
	assert.Equal(t, "s3cret", s.SMTP.Password)
	assert.Equal(t, "reports@example.com", s.SMTP.From)

	require.NoError(t, os.WriteFile(path, []byte("smtp:\n  port: 70000\n"), 0644))
	_, err = LoadSettings(path)
	assert.ErrorContains(t, err, "invalid smtp port")
}
