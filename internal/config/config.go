package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = 8080
	defaultDatabasePort   = 5432
	defaultSchema         = "public"
	defaultPartnerTimeout = 10 * time.Second
)

var defaultCORSOrigins = []string{"http://localhost:5173"}

type Config struct {
	Debug    bool
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Partners PartnersConfig
}

type ServerConfig struct {
	Port        int
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	Schema   string
}

// DSN returns the postgres connection string for pgx. Credentials and
// names are escaped, so reserved characters in a password are safe.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Database,
		RawQuery: url.Values{"sslmode": {"disable"}, "search_path": {d.Schema}}.Encode(),
	}
	return u.String()
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type PartnersConfig struct {
	SouthURL string
	Timeout  time.Duration
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applies defaults and validates it.
func FromEnv(getenv func(string) string) (*Config, error) {
	var cfg Config
	var err error
	p := parser{getenv: getenv}

	cfg.Debug = p.boolean("APP_DEBUG")
	cfg.Server.Port = p.integer("PORT", defaultPort)
	cfg.Server.CORSOrigins = p.list("CORS_ORIGINS", defaultCORSOrigins)

	cfg.Database = DatabaseConfig{
		Host:     getenv("DB_HOST"),
		Port:     p.integer("DB_PORT", defaultDatabasePort),
		Username: getenv("DB_USERNAME"),
		Password: getenv("DB_PASSWORD"),
		Database: getenv("DB_DATABASE"),
		Schema:   p.str("DB_SCHEMA", defaultSchema),
	}

	cfg.Auth = AuthConfig{
		JWTSecret: getenv("JWT_SECRET"),
		TokenTTL:  p.duration("JWT_TTL", 72*time.Hour),
	}

	cfg.Partners = PartnersConfig{
		SouthURL: getenv("SOUTH_PARTNER_URL"),
		Timeout:  p.duration("PARTNER_TIMEOUT", defaultPartnerTimeout),
	}

	if p.err != nil {
		return nil, p.err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return errors.New("PORT must be positive")
	}
	if c.Database.Host == "" {
		return errors.New("DB_HOST is required")
	}
	if c.Database.Username == "" {
		return errors.New("DB_USERNAME is required")
	}
	if c.Database.Database == "" {
		return errors.New("DB_DATABASE is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Partners.Timeout <= 0 {
		return errors.New("PARTNER_TIMEOUT must be positive")
	}
	return nil
}

// parser reads typed values and keeps the first failure.
type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) str(key, def string) string {
	if v := p.getenv(key); v != "" {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return n
}

func (p *parser) boolean(key string) bool {
	v := p.getenv(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return b
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return d
}

func (p *parser) list(key string, def []string) []string {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
