package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage engines accepted by STORE_ENGINE.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineJSON     = "json"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port           string   `env:"PORT" envDefault:"5200"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Storage
	StoreEngine string `env:"STORE_ENGINE" envDefault:"sqlite"`
	DatabaseURL string `env:"DATABASE_URL"`
	DataFile    string `env:"DATA_FILE" envDefault:"./data/hunter.db"`

	// Day boundaries for the daily quest cycle are computed in this zone.
	Timezone string `env:"HUNTER_TIMEZONE" envDefault:"Local"`

	// Optional AI flavor text
	AIEnabled     bool          `env:"AI_ENABLED" envDefault:"false"`
	OllamaURL     string        `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel   string        `env:"OLLAMA_MODEL" envDefault:"llama3"`
	FlavorTimeout time.Duration `env:"FLAVOR_TIMEOUT" envDefault:"5s"`

	// Optional R2 snapshots
	CloudflareAccountID string        `env:"CLOUDFLARE_ACCOUNT_ID"`
	R2AccessKeyID       string        `env:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret   string        `env:"R2_ACCESS_KEY_SECRET"`
	R2BucketName        string        `env:"R2_BUCKET_NAME"`
	SnapshotInterval    time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"1h"`
}

// Load reads an optional .env file, then parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}
	return Parse()
}

// Parse reads the configuration from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreEngine = strings.ToLower(strings.TrimSpace(cfg.StoreEngine))
	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects inconsistent settings.
func (c Config) Validate() error {
	switch c.StoreEngine {
	case EngineSQLite, EngineJSON:
		if strings.TrimSpace(c.DataFile) == "" {
			return fmt.Errorf("DATA_FILE is required for the %s engine", c.StoreEngine)
		}
	case EnginePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres engine")
		}
	default:
		return fmt.Errorf("unsupported STORE_ENGINE %q", c.StoreEngine)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.AIEnabled && c.FlavorTimeout <= 0 {
		return fmt.Errorf("FLAVOR_TIMEOUT must be positive")
	}
	return nil
}

// Location resolves the configured time zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid HUNTER_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// R2Enabled reports whether snapshot uploads are configured.
func (c Config) R2Enabled() bool {
	return c.CloudflareAccountID != "" && c.R2AccessKeyID != "" &&
		c.R2AccessKeySecret != "" && c.R2BucketName != ""
}

// AllowedOriginsString joins the origins the way fiber's cors config expects.
func (c Config) AllowedOriginsString() string {
	return strings.Join(c.AllowedOrigins, ",")
}
