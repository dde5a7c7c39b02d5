package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Provider type identifiers accepted in the configuration.
const (
	ProviderTypeIMAP = "imap"
	ProviderTypeMock = "mock"
)

// ProviderConfig holds the connection parameters for the mail provider.
type ProviderConfig struct {
	// Type selects the provider implementation ("imap" or "mock").
	Type string `mapstructure:"type" yaml:"type"`

	// Server is the mail server hostname.
	Server string `mapstructure:"server" yaml:"server"`

	// Port is the server port ("993" for IMAPS).
	Port string `mapstructure:"port" yaml:"port"`

	// Email is the account address used to log in.
	Email string `mapstructure:"email" yaml:"email"`

	// Mailbox is the mailbox to display (default "INBOX").
	Mailbox string `mapstructure:"mailbox" yaml:"mailbox"`

	// TLS selects implicit TLS; when false, STARTTLS is used.
	TLS bool `mapstructure:"tls" yaml:"tls"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	// StatusTimeoutSec is how long status bar messages stay visible.
	StatusTimeoutSec int `mapstructure:"status_timeout_sec" yaml:"status_timeout_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/mailterm/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "mailterm", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Provider: ProviderConfig{
			Server:  "outlook.office365.com",
			Port:    "993",
			Mailbox: "INBOX",
			TLS:     true,
		},
		Display: DisplayConfig{
			StatusTimeoutSec: 5,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Values can be overridden through MAILTERM_* environment variables. If the
// file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("provider.server", "outlook.office365.com")
	v.SetDefault("provider.port", "993")
	v.SetDefault("provider.mailbox", "INBOX")
	v.SetDefault("provider.tls", true)
	v.SetDefault("display.status_timeout_sec", 5)

	v.SetEnvPrefix("MAILTERM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
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

	v.Set("provider", cfg.Provider)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
