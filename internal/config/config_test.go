package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// unset clears key for the test; t.Setenv restores it afterwards.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}

func setBase(t *testing.T) {
	t.Helper()
	t.Setenv("HIVE_API_URL", "https://maps.example.com/exec")
	for _, key := range []string{
		"HIVE_MODELS_API_URL", "REGISTRATION_SCOPE", "AUTOCOMPLETE_BUDGET",
		"CATALOG_RETRIES", "CATALOG_RATE", "INIT_SLASH_COMMANDS",
	} {
		unset(t, key)
	}
}

func TestParseDefaults(t *testing.T) {
	setBase(t)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.RegistrationScope != ScopeGuild || !cfg.GuildScoped() {
		t.Fatalf("expected guild scope by default, got %q", cfg.RegistrationScope)
	}
	if cfg.AutocompleteBudget != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s autocomplete budget, got %v", cfg.AutocompleteBudget)
	}
	if cfg.CatalogRetries != 2 || cfg.CatalogRate != 5 {
		t.Fatalf("unexpected catalog defaults: retries=%d rate=%v", cfg.CatalogRetries, cfg.CatalogRate)
	}
	if !cfg.InitSlashCommands {
		t.Fatalf("slash command registration should default on")
	}
}

func TestParseRequiresACatalog(t *testing.T) {
	setBase(t)
	unset(t, "HIVE_API_URL")

	if _, err := Parse(); err == nil || !strings.Contains(err.Error(), "HIVE_API_URL") {
		t.Fatalf("expected missing catalog error, got %v", err)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"REGISTRATION_SCOPE":  "everywhere",
		"AUTOCOMPLETE_BUDGET": "5s",
		"CATALOG_RETRIES":     "0",
		"CATALOG_RATE":        "-1",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			setBase(t)
			t.Setenv(key, val)
			if _, err := Parse(); err == nil || !strings.Contains(err.Error(), key) {
				t.Fatalf("expected an error naming %s, got %v", key, err)
			}
		})
	}
}

func TestValidateBot(t *testing.T) {
	setBase(t)
	unset(t, "DISCORD_TOKEN")
	unset(t, "DISCORD_GUILD_ID")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = cfg.ValidateBot()
	if err == nil {
		t.Fatalf("expected missing token error")
	}
	if !strings.Contains(err.Error(), "DISCORD_TOKEN") || !strings.Contains(err.Error(), "DISCORD_GUILD_ID") {
		t.Fatalf("both missing settings should be reported, got %v", err)
	}

	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("REGISTRATION_SCOPE", "Global")
	cfg, err = Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.GuildScoped() {
		t.Fatalf("scope should be global")
	}
	if err := cfg.ValidateBot(); err != nil {
		t.Fatalf("global scope needs no guild id, got %v", err)
	}
}
