package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Settle   SettleConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path           string
	MigrationsPath string `mapstructure:"migrations_path"`
}

// SettleConfig holds projection settings.
type SettleConfig struct {
	WindowDays   int      `mapstructure:"window_days"`
	BlockLabel   string   `mapstructure:"block_label"`
	BlockAliases []string `mapstructure:"block_aliases"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Timezone       string
}

// Load reads configuration from file and env. Env var overrides use prefix BANKSETTLE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "banksettle", "banksettle.db"))
	v.SetDefault("database.migrations_path", "internal/database/migrations")
	v.SetDefault("settle.window_days", 30)
	v.SetDefault("settle.block_label", "SFA")
	v.SetDefault("settle.block_aliases", []string{"물류"})
	v.SetDefault("ui.currency_symbol", "₩")
	v.SetDefault("ui.timezone", "Asia/Seoul")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BANKSETTLE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "banksettle"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BANKSETTLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings actions.
func Save(cfg Config) error {
	path := os.Getenv("BANKSETTLE_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "banksettle", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations_path", cfg.Database.MigrationsPath)
	v.Set("settle.window_days", cfg.Settle.WindowDays)
	v.Set("settle.block_label", cfg.Settle.BlockLabel)
	v.Set("settle.block_aliases", cfg.Settle.BlockAliases)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.timezone", cfg.UI.Timezone)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
