// Package config reads the bot settings from the environment. A .env file in
// the working directory is loaded first if present.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	ScopeGuild  = "guild"
	ScopeGlobal = "global"
)

type Config struct {
	DiscordToken      string `env:"DISCORD_TOKEN"`
	DiscordClientID   string `env:"DISCORD_CLIENT_ID"`
	DiscordGuildID    string `env:"DISCORD_GUILD_ID"`
	RegistrationScope string `env:"REGISTRATION_SCOPE" envDefault:"guild"`
	InitSlashCommands bool   `env:"INIT_SLASH_COMMANDS" envDefault:"true"`

	MapAPIURL    string `env:"HIVE_API_URL"`
	ModelsAPIURL string `env:"HIVE_MODELS_API_URL"`
	ModelsScheme string `env:"HIVE_MODELS_SCHEME" envDefault:"json"`

	CatalogTimeout     time.Duration `env:"CATALOG_TIMEOUT" envDefault:"8s"`
	CatalogRetries     int           `env:"CATALOG_RETRIES" envDefault:"2"`
	CatalogRate        float64       `env:"CATALOG_RATE" envDefault:"5"`
	CatalogProxy       string        `env:"CATALOG_PROXY"`
	AutocompleteBudget time.Duration `env:"AUTOCOMPLETE_BUDGET" envDefault:"2500ms"`

	StoragePath string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	HealthAddr  string `env:"HEALTH_ADDR"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
}

// Load reads .env (if any) and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, falling back to system environment variables")
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.RegistrationScope = strings.ToLower(strings.TrimSpace(cfg.RegistrationScope))
	if err := cfg.validateCatalog(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GuildScoped reports whether commands are registered to one guild only.
func (c *Config) GuildScoped() bool {
	return c.RegistrationScope == ScopeGuild
}

// ValidateBot reports settings the Discord bot needs but the CLI does not.
func (c *Config) ValidateBot() error {
	var errs []error
	if c.DiscordToken == "" {
		errs = append(errs, errors.New("DISCORD_TOKEN is not set"))
	}
	if c.GuildScoped() && c.DiscordGuildID == "" {
		errs = append(errs, errors.New("DISCORD_GUILD_ID is required when REGISTRATION_SCOPE=guild"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateCatalog() error {
	var errs []error
	if c.MapAPIURL == "" && c.ModelsAPIURL == "" {
		errs = append(errs, errors.New("neither HIVE_API_URL nor HIVE_MODELS_API_URL is set"))
	}
	if c.RegistrationScope != ScopeGuild && c.RegistrationScope != ScopeGlobal {
		errs = append(errs, fmt.Errorf("REGISTRATION_SCOPE must be %q or %q, got %q", ScopeGuild, ScopeGlobal, c.RegistrationScope))
	}
	if c.CatalogRetries < 1 {
		errs = append(errs, fmt.Errorf("CATALOG_RETRIES must be at least 1, got %d", c.CatalogRetries))
	}
	if c.CatalogRate <= 0 {
		errs = append(errs, fmt.Errorf("CATALOG_RATE must be positive, got %v", c.CatalogRate))
	}
	if c.AutocompleteBudget <= 0 || c.AutocompleteBudget >= 3*time.Second {
		errs = append(errs, fmt.Errorf("AUTOCOMPLETE_BUDGET must be between 0 and 3s, got %v", c.AutocompleteBudget))
	}
	return errors.Join(errs...)
}
