// Package config handles configuration for the startup mentor.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/diogo/startupmentor/internal/models"
)

// EnvEndpoint overrides the configured chat endpoint
const EnvEndpoint = "MENTOR_ENDPOINT"

// DefaultMarkdownStyle lets the chat style follow its TUI theme
const DefaultMarkdownStyle = "dark"

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`             // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`        // Enable word wrap in table cells
	EmphasizeLabels  bool   `json:"emphasize_labels"`  // Bold the section labels of a reply
}

// Config represents the user configuration
type Config struct {
	// Endpoint is the full URL of the Ollama chat endpoint.
	Endpoint string `json:"endpoint"`
	Model    string `json:"model"`
	// TimeoutSeconds bounds a single request. Zero waits forever.
	TimeoutSeconds     int            `json:"timeout_seconds"`
	Proxy              string         `json:"proxy,omitempty"`
	InsecureSkipVerify bool           `json:"insecure_skip_verify"`
	CopyToClipboard    bool           `json:"copy_to_clipboard"`
	TUITheme           string         `json:"tui_theme,omitempty"` // TUI color theme
	Markdown           MarkdownConfig `json:"markdown,omitempty"`
	LogLevel           string         `json:"log_level,omitempty"`
	// LogFile receives logs while the TUI owns the terminal. Empty disables it.
	LogFile string `json:"log_file,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            DefaultMarkdownStyle,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		EmphasizeLabels:  true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:        models.DefaultChatURL,
		Model:           models.DefaultModel,
		TimeoutSeconds:  0,
		CopyToClipboard: false,
		TUITheme:        "tokyonight",
		Markdown:        DefaultMarkdownConfig(),
		LogLevel:        "info",
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".startupmentor"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// DefaultLogPath returns the log file used when log_file is "default"
func DefaultLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "mentor.log"), nil
}

// LoadConfig loads the configuration from disk.
// A missing file yields the defaults. Environment overrides are applied last.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = models.DefaultChatURL
	}
	if cfg.Model == "" {
		cfg.Model = models.DefaultModel
	}

	return applyEnv(cfg), nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads environment variables from a dotenv file.
// A missing file is not an error. Variables already set are kept.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg Config) Config {
	if endpoint := os.Getenv(EnvEndpoint); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	return cfg
}

// Validate checks that the configuration can be used to build a client
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", c.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", c.Endpoint)
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds cannot be negative")
	}
	return nil
}
