package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"newsproxy/pkg/news"
)

const (
	configPathEnv      = "NEWSPROXY_CONFIG"
	apiKeyEnv          = "RAPIDAPI_KEY"
	apiHostEnv         = "RAPIDAPI_HOST"
	upstreamBaseURLEnv = "UPSTREAM_BASE_URL"
	apifyTokenEnv      = "APIFY_TOKEN"
	apifyActorEnv      = "APIFY_ACTOR_ID"
	apifyBaseURLEnv    = "APIFY_BASE_URL"
	portEnv            = "PORT"
	publicURLEnv       = "PUBLIC_URL"
	logLevelEnv        = "LOG_LEVEL"

	defaultPort     = "6901"
	defaultLogLevel = "info"
)

// Config is built once at start and passed by value to the components that need it.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	LogLevel string         `yaml:"logLevel"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	PublicURL string `yaml:"publicUrl"`
}

// UpstreamConfig points at the Bloomberg Finance API on RapidAPI.
type UpstreamConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Host    string        `yaml:"host"`
	APIKey  string        `yaml:"apiKey"`
	Timeout time.Duration `yaml:"timeout"`
}

// ScraperConfig describes the Apify actor used by /article.
type ScraperConfig struct {
	BaseURL         string        `yaml:"baseUrl"`
	ActorID         string        `yaml:"actorId"`
	Token           string        `yaml:"token"`
	Timeout         time.Duration `yaml:"timeout"`
	PublisherDomain string        `yaml:"publisherDomain"`
}

// Load reads the YAML file named by NEWSPROXY_CONFIG (if any) over the
// defaults and then applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			slog.Warn("cannot read config file, falling back to defaults", "path", path, "error", err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				slog.Warn("cannot parse config file, falling back to defaults", "path", path, "error", err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = "https://" + cfg.Upstream.Host
	}
	if cfg.Server.PublicURL == "" {
		cfg.Server.PublicURL = "http://localhost:" + cfg.Server.Port
	}
	cfg.Server.PublicURL = strings.TrimSuffix(cfg.Server.PublicURL, "/")

	return cfg
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Server.Port
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: defaultPort,
		},
		Upstream: UpstreamConfig{
			Host:    news.DefaultBloombergHost,
			Timeout: news.DefaultNewsTimeout,
		},
		Scraper: ScraperConfig{
			BaseURL:         news.DefaultApifyBaseURL,
			Timeout:         news.DefaultArticleTimeout,
			PublisherDomain: news.PublisherDomain,
		},
		LogLevel: defaultLogLevel,
	}
}

func mergeConfig(base, override Config) Config {
	setString(&base.Server.Port, override.Server.Port)
	setString(&base.Server.PublicURL, override.Server.PublicURL)

	setString(&base.Upstream.BaseURL, override.Upstream.BaseURL)
	setString(&base.Upstream.Host, override.Upstream.Host)
	setString(&base.Upstream.APIKey, override.Upstream.APIKey)
	setDuration(&base.Upstream.Timeout, override.Upstream.Timeout)

	setString(&base.Scraper.BaseURL, override.Scraper.BaseURL)
	setString(&base.Scraper.ActorID, override.Scraper.ActorID)
	setString(&base.Scraper.Token, override.Scraper.Token)
	setDuration(&base.Scraper.Timeout, override.Scraper.Timeout)
	setString(&base.Scraper.PublisherDomain, override.Scraper.PublisherDomain)

	setString(&base.LogLevel, override.LogLevel)
	return base
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Upstream.APIKey, os.Getenv(apiKeyEnv))
	setString(&c.Upstream.Host, os.Getenv(apiHostEnv))
	setString(&c.Upstream.BaseURL, os.Getenv(upstreamBaseURLEnv))
	setString(&c.Scraper.Token, os.Getenv(apifyTokenEnv))
	setString(&c.Scraper.ActorID, os.Getenv(apifyActorEnv))
	setString(&c.Scraper.BaseURL, os.Getenv(apifyBaseURLEnv))
	setString(&c.Server.Port, os.Getenv(portEnv))
	setString(&c.Server.PublicURL, os.Getenv(publicURLEnv))
	setString(&c.LogLevel, os.Getenv(logLevelEnv))
}

func setString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}

func setDuration(dst *time.Duration, value time.Duration) {
	if value > 0 {
		*dst = value
	}
}
