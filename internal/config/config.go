package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Callback modes accepted by CALLBACK_MODE.
const (
	CallbackAmbient  = "ambient"
	CallbackFragment = "fragment"
)

// Session backends accepted by SESSION_BACKEND.
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// Profile backends accepted by PROFILE_BACKEND.
const (
	ProfileSupabase = "supabase"
	ProfileMongo    = "mongo"
	ProfileMemory   = "memory"
)

// Config is the full process configuration, read from the environment.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	BaseURL string `env:"BASE_URL"`

	SupabaseURL     string        `env:"SUPABASE_URL"`
	SupabaseAnonKey string        `env:"SUPABASE_ANON_KEY"`
	SupabaseTimeout time.Duration `env:"SUPABASE_TIMEOUT" envDefault:"10s"`

	StateSecret  string `env:"STATE_SECRET"`
	CallbackMode string `env:"CALLBACK_MODE" envDefault:"ambient"`

	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"memory"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	RedisURL       string        `env:"REDIS_URL"`

	ProfileBackend string `env:"PROFILE_BACKEND" envDefault:"supabase"`
	MongoURI       string `env:"MONGODB_URI"`
	DBName         string `env:"DB_NAME" envDefault:"learnpath"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromEmail    string `env:"FROM_EMAIL"`

	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	// Missing .env is fine; production sets variables directly.
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment without touching .env.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.SupabaseURL = strings.TrimRight(strings.TrimSpace(c.SupabaseURL), "/")
	c.CallbackMode = strings.ToLower(strings.TrimSpace(c.CallbackMode))
	c.SessionBackend = strings.ToLower(strings.TrimSpace(c.SessionBackend))
	c.ProfileBackend = strings.ToLower(strings.TrimSpace(c.ProfileBackend))

	origins := make([]string, 0, len(c.CORSOrigins))
	for _, o := range c.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSOrigins = origins
}

// Validate reports the first missing or invalid setting.
func (c Config) Validate() error {
	if c.SupabaseURL == "" {
		return errors.New("SUPABASE_URL is required")
	}
	if _, err := url.ParseRequestURI(c.SupabaseURL); err != nil {
		return fmt.Errorf("SUPABASE_URL is invalid: %w", err)
	}
	if c.SupabaseAnonKey == "" {
		return errors.New("SUPABASE_ANON_KEY is required")
	}
	if c.StateSecret == "" {
		return errors.New("STATE_SECRET is required")
	}
	switch c.CallbackMode {
	case CallbackAmbient, CallbackFragment:
	default:
		return fmt.Errorf("CALLBACK_MODE %q is not one of ambient, fragment", c.CallbackMode)
	}
	switch c.SessionBackend {
	case SessionMemory:
	case SessionRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when SESSION_BACKEND=redis")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND %q is not one of memory, redis", c.SessionBackend)
	}
	switch c.ProfileBackend {
	case ProfileSupabase, ProfileMemory:
	case ProfileMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required when PROFILE_BACKEND=mongo")
		}
	default:
		return fmt.Errorf("PROFILE_BACKEND %q is not one of supabase, mongo, memory", c.ProfileBackend)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

// CallbackURL is the absolute post-authorization redirect target.
func (c Config) CallbackURL(requestBase, path string) string {
	base := c.BaseURL
	if base == "" {
		base = requestBase
	}
	return base + path
}
