// Package config loads the web server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/net/idna"

	"gndzkrkc.com/site/internal/routing"
)

// Config is populated from SITE_* variables. PORT follows the Cloud Run
// convention and is only used when SITE_ADDR is empty.
type Config struct {
	Env          string        `env:"SITE_ENV" envDefault:"development"`
	Addr         string        `env:"SITE_ADDR"`
	Port         string        `env:"PORT" envDefault:"8080"`
	Origin       string        `env:"SITE_ORIGIN" envDefault:"https://gndzkrkc.com"`
	LocalePrefix string        `env:"SITE_LOCALE_PREFIX" envDefault:"always"`
	TemplatesDir string        `env:"SITE_TEMPLATES_DIR" envDefault:"templates"`
	PublicDir    string        `env:"SITE_PUBLIC_DIR" envDefault:"public"`
	LocalesDir   string        `env:"SITE_LOCALES_DIR" envDefault:"locales"`
	ContentDir   string        `env:"SITE_CONTENT_DIR" envDefault:"content"`
	RoutesFile   string        `env:"SITE_ROUTES_FILE" envDefault:"routes.yaml"`
	LogLevel     string        `env:"SITE_LOG_LEVEL" envDefault:"info"`
	ContentTTL   time.Duration `env:"SITE_CONTENT_CACHE_TTL" envDefault:"5m"`

	// Policy is parsed from LocalePrefix by Validate.
	Policy routing.PrefixPolicy
}

// Load reads an optional .env file (never overriding real variables), parses
// the environment and validates the result.
func Load(dotenv ...string) (Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalizes derived fields and rejects unusable values.
func (c *Config) Validate() error {
	origin, err := NormalizeOrigin(c.Origin)
	if err != nil {
		return err
	}
	c.Origin = origin

	p, err := routing.ParsePrefixPolicy(c.LocalePrefix)
	if err != nil {
		return fmt.Errorf("config: SITE_LOCALE_PREFIX: %w", err)
	}
	c.Policy = p

	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	}
	if c.ContentTTL <= 0 {
		c.ContentTTL = time.Minute
	}
	return nil
}

// Dev reports whether the server runs in development mode.
func (c Config) Dev() bool {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "prod", "production":
		return false
	default:
		return true
	}
}

// NormalizeOrigin checks that origin is an absolute http(s) URL without path,
// converts an internationalized host to its ASCII form and drops any trailing slash.
func NormalizeOrigin(origin string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return "", fmt.Errorf("config: SITE_ORIGIN: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", fmt.Errorf("config: SITE_ORIGIN %q must use http or https", origin)
	}
	if u.Host == "" {
		return "", fmt.Errorf("config: SITE_ORIGIN %q has no host", origin)
	}
	if p := strings.Trim(u.Path, "/"); p != "" || u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("config: SITE_ORIGIN %q must not carry a path, query or fragment", origin)
	}
	host, err := idna.Lookup.ToASCII(u.Hostname())
	if err != nil {
		return "", fmt.Errorf("config: SITE_ORIGIN host: %w", err)
	}
	if port := u.Port(); port != "" {
		host += ":" + port
	}
	return u.Scheme + "://" + host, nil
}
