package types

import (
	"errors"
	"time"
)

// DefaultSiteName is the registry entry served when no site is configured.
const DefaultSiteName = "日本の主な山岳一覧 (国土地理院データ)"

// DefaultSiteURL is the GSI page listing Japan's major mountains.
const DefaultSiteURL = "https://www.gsi.go.jp/kihonjohochousa/kihonjohochousa41139.html"

// DefaultMaxCount is the upper bound on page size when none is configured.
const DefaultMaxCount = 100

// Site is one entry of the static site registry.
type Site struct {
	Name string `mapstructure:"name" json:"name" yaml:"name"`
	URL  string `mapstructure:"url" json:"url" yaml:"url"`
}

// RateLimit configures per-client request throttling. A zero
// RequestsPerMinute disables the limiter.
type RateLimit struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" json:"requests_per_minute" yaml:"requests_per_minute"`
	Burst             int `mapstructure:"burst" json:"burst" yaml:"burst"`
}

// LogConfig selects the log level, output format, and optional Seq sink.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
	SeqURL string `mapstructure:"seq_url" json:"seq_url" yaml:"seq_url"`
}

// Config holds everything the service needs at startup.
type Config struct {
	Site         string        `mapstructure:"site" json:"site" yaml:"site"`
	Sites        []Site        `mapstructure:"sites" json:"sites" yaml:"sites"`
	DataDir      string        `mapstructure:"data_dir" json:"data_dir" yaml:"data_dir"`
	MaxCount     int           `mapstructure:"max_count" json:"max_count" yaml:"max_count"`
	Listen       string        `mapstructure:"listen" json:"listen" yaml:"listen"`
	RootPath     string        `mapstructure:"root_path" json:"root_path" yaml:"root_path"`
	CORSOrigin   string        `mapstructure:"cors_origin" json:"cors_origin" yaml:"cors_origin"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" json:"fetch_timeout" yaml:"fetch_timeout"`
	RateLimit    RateLimit     `mapstructure:"rate_limit" json:"rate_limit" yaml:"rate_limit"`
	Log          LogConfig     `mapstructure:"log" json:"log" yaml:"log"`
}

// DefaultConfig returns the configuration used when config.yaml and the
// environment set nothing.
func DefaultConfig() Config {
	return Config{
		Site:         DefaultSiteName,
		Sites:        []Site{{Name: DefaultSiteName, URL: DefaultSiteURL}},
		MaxCount:     DefaultMaxCount,
		Listen:       ":8000",
		CORSOrigin:   "*",
		FetchTimeout: 30 * time.Second,
		RateLimit:    RateLimit{RequestsPerMinute: 0, Burst: 10},
		Log:          LogConfig{Level: "info", Format: "text"},
	}
}

// Config validation errors.
var (
	ErrSiteEmpty        = errors.New("site must not be empty")
	ErrSiteUnknown      = errors.New("site is not in the registry")
	ErrSiteURLEmpty     = errors.New("site url must not be empty")
	ErrMaxCountInvalid  = errors.New("max_count must be positive")
	ErrListenEmpty      = errors.New("listen address must not be empty")
	ErrRateLimitInvalid = errors.New("rate limit must not be negative")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Site == "" {
		return ErrSiteEmpty
	}
	for _, s := range c.Sites {
		if s.URL == "" {
			return ErrSiteURLEmpty
		}
	}
	if _, ok := c.SiteURL(c.Site); !ok {
		return ErrSiteUnknown
	}
	if c.MaxCount <= 0 {
		return ErrMaxCountInvalid
	}
	if c.Listen == "" {
		return ErrListenEmpty
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return ErrRateLimitInvalid
	}
	return nil
}

// SiteURL resolves a site name through the registry.
func (c Config) SiteURL(name string) (string, bool) {
	for _, s := range c.Sites {
		if s.Name == name {
			return s.URL, true
		}
	}
	return "", false
}
