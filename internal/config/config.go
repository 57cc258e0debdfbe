package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (FAIRAPI_SERVER_PORT, ...).
const EnvPrefix = "FAIRAPI"

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields, keep these in sync:
	// - viper keys and defaults in SetDefaults
	// - CLI flags in internal/cli (see internal/flags)
	Server  Server
	GitHub  GitHub
	Scorer  Scorer
	Log     Log
	Verbose bool
}

type Server struct {
	// Host is the interface to bind (empty = all interfaces).
	Host string

	// Port is the TCP port to listen on. Must be in 1..65535.
	Port int

	// ReadTimeout bounds reading a full request including the body.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the response. It must be larger than
	// Scorer.Timeout or slow assessments are cut off mid-response.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
	ShutdownTimeout time.Duration
}

type GitHub struct {
	// Token is an optional GitHub access token. When empty, GITHUB_TOKEN and
	// the gh CLI are consulted; anonymous access is used as a last resort.
	Token string

	// BaseURL overrides the REST API base URL (GitHub Enterprise, tests).
	// Empty means https://api.github.com/.
	BaseURL string
}

type Scorer struct {
	// Timeout bounds a single assessment. Must be > 0.
	Timeout time.Duration

	// Concurrency bounds parallel GitHub requests within one assessment. Must be >= 1.
	Concurrency int
}

type Log struct {
	// Level is one of debug, info, warn, error.
	Level string

	// Format is text or json.
	Format string
}

func New() *Config {
	return &Config{
		Server: Server{
			Port:            80,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Scorer: Scorer{
			Timeout:     30 * time.Second,
			Concurrency: 4,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers the defaults of New() with v so that config files and
// environment variables only need to carry overrides.
func SetDefaults(v *viper.Viper) {
	d := New()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("github.token", "")
	v.SetDefault("github.base_url", "")
	v.SetDefault("scorer.timeout", d.Scorer.Timeout)
	v.SetDefault("scorer.concurrency", d.Scorer.Concurrency)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("verbose", false)
}

// Load reads the effective configuration out of v (defaults, config file,
// environment, bound flags) and validates it.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, errors.New("config: viper instance is nil")
	}
	c := &Config{
		Server: Server{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		GitHub: GitHub{
			Token:   v.GetString("github.token"),
			BaseURL: v.GetString("github.base_url"),
		},
		Scorer: Scorer{
			Timeout:     v.GetDuration("scorer.timeout"),
			Concurrency: v.GetInt("scorer.concurrency"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Verbose: v.GetBool("verbose"),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	c.Server.Host = strings.TrimSpace(c.Server.Host)
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return errors.New("server.read_timeout must be > 0")
	}
	if c.Server.WriteTimeout < 0 {
		return errors.New("server.write_timeout must be >= 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be > 0")
	}

	c.GitHub.Token = strings.TrimSpace(c.GitHub.Token)
	if c.GitHub.BaseURL != "" {
		base, err := normalizeBaseURL(c.GitHub.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid github.base_url: %w", err)
		}
		c.GitHub.BaseURL = base
	}

	if c.Scorer.Timeout <= 0 {
		return errors.New("scorer.timeout must be > 0")
	}
	if c.Scorer.Concurrency <= 0 {
		return errors.New("scorer.concurrency must be >= 1")
	}
	if c.Server.WriteTimeout > 0 && c.Server.WriteTimeout <= c.Scorer.Timeout {
		return fmt.Errorf("server.write_timeout (%s) must exceed scorer.timeout (%s)", c.Server.WriteTimeout, c.Scorer.Timeout)
	}

	c.Log.Level = normalizeEnumValue(c.Log.Level)
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Level != "debug" && c.Log.Level != "info" && c.Log.Level != "warn" && c.Log.Level != "error" {
		return fmt.Errorf("unsupported log.level: %s (must be one of: debug, info, warn, error)", c.Log.Level)
	}
	c.Log.Format = normalizeEnumValue(c.Log.Format)
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported log.format: %s (must be one of: text, json)", c.Log.Format)
	}
	if c.Verbose {
		c.Log.Level = "debug"
	}

	return nil
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%q: missing host", raw)
	}
	// go-github requires a trailing slash on BaseURL.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
