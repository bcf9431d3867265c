package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Configuration defaults.
const (
	DefaultHistoryLimit = 10
	DefaultBaseTemplate = "coachella"
	DefaultExportName   = "My Festival Checklist"
)

// StoreConfig locates the persistent key-value store.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// CatalogConfig controls where templates come from.
type CatalogConfig struct {
	// Path is an optional YAML file replacing the built-in templates.
	Path string `mapstructure:"path" yaml:"path"`

	// BaseTemplate is the template whose items form the base checklist.
	BaseTemplate string `mapstructure:"base_template" yaml:"base_template"`
}

// HistoryConfig bounds the template view history.
type HistoryConfig struct {
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// ExportConfig holds export payload settings.
type ExportConfig struct {
	// DefaultName names exported checklists when the event has no name.
	DefaultName string `mapstructure:"default_name" yaml:"default_name"`
}

// LogConfig controls where diagnostics are written while the TUI runs.
type LogConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
	History HistoryConfig `mapstructure:"history" yaml:"history"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Export  ExportConfig  `mapstructure:"export" yaml:"export"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// configDir returns ~/.config/festpack, or the working directory when the
// home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "festpack")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/festpack/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := configDir()
	return &AppConfig{
		Store:   StoreConfig{Path: filepath.Join(dir, "festpack.db")},
		Catalog: CatalogConfig{BaseTemplate: DefaultBaseTemplate},
		History: HistoryConfig{Limit: DefaultHistoryLimit},
		Display: DisplayConfig{Theme: "default"},
		Export:  ExportConfig{DefaultName: DefaultExportName},
		Log:     LogConfig{Path: filepath.Join(dir, "festpack.log")},
	}
}

// SetDefaults registers the configuration defaults on v so missing keys
// resolve to sensible values.
func SetDefaults(v *viper.Viper) {
	d := defaultAppConfig()
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.base_template", d.Catalog.BaseTemplate)
	v.SetDefault("history.limit", d.History.Limit)
	v.SetDefault("display.theme", d.Display.Theme)
	v.SetDefault("export.default_name", d.Export.DefaultName)
	v.SetDefault("log.path", d.Log.Path)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return DecodeConfig(v)
}

// DecodeConfig unmarshals an already populated Viper instance, for callers
// that layer flags and environment variables on top of the file.
func DecodeConfig(v *viper.Viper) (*AppConfig, error) {
	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.History.Limit <= 0 {
		cfg.History.Limit = DefaultHistoryLimit
	}
	if cfg.Catalog.BaseTemplate == "" {
		cfg.Catalog.BaseTemplate = DefaultBaseTemplate
	}
	if cfg.Export.DefaultName == "" {
		cfg.Export.DefaultName = DefaultExportName
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("store", cfg.Store)
	v.Set("catalog", cfg.Catalog)
	v.Set("history", cfg.History)
	v.Set("display", cfg.Display)
	v.Set("export", cfg.Export)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
