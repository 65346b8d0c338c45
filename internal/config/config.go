package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type SyncConfig struct {
	Branch string `mapstructure:"branch"` // push/pull target, default "main"
}

type ReminderConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Interval int  `mapstructure:"interval"` // minutes between overdue checks
}

type Config struct {
	VaultPath string         `mapstructure:"vault_path"`
	Theme     string         `mapstructure:"theme"`
	Sync      SyncConfig     `mapstructure:"sync"`
	Reminder  ReminderConfig `mapstructure:"reminder"`
}

func Default() Config {
	return Config{
		VaultPath: "",
		Theme:     "default",
		Sync: SyncConfig{
			Branch: "main",
		},
		Reminder: ReminderConfig{
			Enabled:  true,
			Interval: 1,
		},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "notevault")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Load() (Config, error) {
	path, err := xdgConfigPath()
	if err != nil {
		return Default(), err
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// defaults
	v.SetDefault("vault_path", cfg.VaultPath)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("sync.branch", cfg.Sync.Branch)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.interval", cfg.Reminder.Interval)

	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.VaultPath = strings.TrimSpace(cfg.VaultPath)
	if cfg.Sync.Branch == "" {
		cfg.Sync.Branch = "main"
	}
	if cfg.Reminder.Interval <= 0 {
		cfg.Reminder.Interval = 1
	}
	return cfg, nil
}
