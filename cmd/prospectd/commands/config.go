package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xraph/prospect"
)

// Store drivers accepted by --store and store.driver.
const (
	driverMemory   = "memory"
	driverPostgres = "postgres"
	driverBun      = "bun"
	driverSQLite   = "sqlite"
	driverRedis    = "redis"
	driverMongo    = "mongo"
)

// Config is the prospectd configuration file.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Workflow  WorkflowConfig  `yaml:"workflow"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// StoreConfig selects and connects the persistence backend.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`

	// Database names the MongoDB database; other drivers ignore it.
	Database    string `yaml:"database"`
	AutoMigrate bool   `yaml:"autoMigrate"`

	// PingAttempts bounds how many times serve pings the store before
	// giving up. Values below 1 mean a single attempt.
	PingAttempts int `yaml:"pingAttempts"`
}

// WorkflowConfig mirrors prospect.Config in the config file.
type WorkflowConfig struct {
	Industries        []string      `yaml:"industries"`
	Outcome           string        `yaml:"outcome"`
	TransitionTimeout time.Duration `yaml:"transitionTimeout"`
}

// AuthConfig enables JWT bearer authentication on the API.
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Secret  string `yaml:"secret"`
}

// RateLimitConfig caps the API request rate. RPS zero disables it.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// LogConfig sets the slog level and handler ("text" or "json").
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// defaultConfig returns the configuration used when nothing is set.
func defaultConfig() Config {
	wf := prospect.DefaultConfig()
	return Config{
		Server: ServerConfig{
			Addr:            ":3000",
			ShutdownTimeout: 15 * time.Second,
		},
		Store: StoreConfig{
			Driver:       driverMemory,
			Database:     "prospect",
			AutoMigrate:  true,
			PingAttempts: 5,
		},
		Workflow: WorkflowConfig{
			Industries: wf.AllowedIndustries,
			Outcome:    string(wf.Outcome),
		},
		RateLimit: RateLimitConfig{Burst: 20},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// loadConfig reads path over the defaults, then applies environment
// overrides via getenv. An empty path skips the file.
func loadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg, getenv)
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("DATABASE_URL"); v != "" {
		cfg.Store.DSN = v
	}
	if v := getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := getenv("JWT_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
}

// validate rejects configurations the server cannot start with.
func (c Config) validate() error {
	switch c.Store.Driver {
	case driverMemory:
	case driverPostgres, driverBun, driverSQLite, driverRedis, driverMongo:
		if c.Store.DSN == "" {
			return fmt.Errorf("required environment variable is missing: DATABASE_URL (store driver %q)", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch prospect.OutcomePolicy(c.Workflow.Outcome) {
	case "", prospect.OutcomeLenient, prospect.OutcomeStrict:
	default:
		return fmt.Errorf("unknown outcome policy %q", c.Workflow.Outcome)
	}

	if c.Auth.Enabled && c.Auth.Secret == "" {
		return errors.New("auth enabled without a secret: set auth.secret or JWT_SECRET")
	}
	return nil
}

// workflowConfig converts the file section to the engine's configuration.
func (c Config) workflowConfig() prospect.Config {
	return prospect.Config{
		AllowedIndustries: c.Workflow.Industries,
		Outcome:           prospect.OutcomePolicy(c.Workflow.Outcome),
		TransitionTimeout: c.Workflow.TransitionTimeout,
	}
}

func newLogger(c LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
