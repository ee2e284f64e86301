package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFileName = "config.yml"
	defaultConfigDirName  = ".config/mtodo"
	defaultDataDirName    = ".local/share/mtodo"

	// DriverFile stores tasks in a single JSON or YAML document
	DriverFile = "file"
	// DriverSQLite stores tasks in a sqlite database
	DriverSQLite = "sqlite"

	// DefaultReminderInterval is how often reminders are re-evaluated
	DefaultReminderInterval = 30 * time.Minute
)

// ErrInvalidConfig is returned when a loaded config fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration
type Config struct {
	Storage     StorageConfig     `yaml:"storage" toml:"storage"`
	Reminders   RemindersConfig   `yaml:"reminders" toml:"reminders"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
	Display     DisplayConfig     `yaml:"display" toml:"display"`
	TUI         TUIConfig         `yaml:"tui" toml:"tui"`
	Keybindings KeybindingsConfig `yaml:"keybindings" toml:"keybindings"`
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	DataDir string `yaml:"data_dir" toml:"data_dir"`
	// FileName is the store file inside DataDir. Empty selects the
	// driver default (todos.json or todos.db).
	FileName      string `yaml:"file_name" toml:"file_name"`
	Driver        string `yaml:"driver" toml:"driver"`
	Profile       string `yaml:"profile" toml:"profile"`
	BackupOnStart bool   `yaml:"backup_on_start" toml:"backup_on_start"`
}

// RemindersConfig holds reminder scheduling configuration
type RemindersConfig struct {
	Enabled              bool   `yaml:"enabled" toml:"enabled"`
	Interval             string `yaml:"interval" toml:"interval"`
	MaxListed            int    `yaml:"max_listed" toml:"max_listed"`
	DesktopNotifications bool   `yaml:"desktop_notifications" toml:"desktop_notifications"`
}

// IntervalDuration parses Interval, falling back to the default
func (r RemindersConfig) IntervalDuration() time.Duration {
	d, err := time.ParseDuration(r.Interval)
	if err != nil || d <= 0 {
		return DefaultReminderInterval
	}
	return d
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// DisplayConfig holds presentation settings shared by CLI and TUI
type DisplayConfig struct {
	DateFormat string `yaml:"date_format" toml:"date_format"`
}

// TUIConfig holds TUI styling configuration
type TUIConfig struct {
	Styles StylesConfig `yaml:"styles" toml:"styles"`
}

// StylesConfig holds color and styling configuration
type StylesConfig struct {
	Title          TextStyle      `yaml:"title" toml:"title"`
	Task           TextStyle      `yaml:"task" toml:"task"`
	SelectedTask   TextStyle      `yaml:"selected_task" toml:"selected_task"`
	CompletedTask  TextStyle      `yaml:"completed_task" toml:"completed_task"`
	Category       TextStyle      `yaml:"category" toml:"category"`
	Stats          TextStyle      `yaml:"stats" toml:"stats"`
	Reminder       TextStyle      `yaml:"reminder" toml:"reminder"`
	Help           TextStyle      `yaml:"help" toml:"help"`
	Priority       PriorityColors `yaml:"priority" toml:"priority"`
	DueDateUrgency DueDateColors  `yaml:"due_date_urgency" toml:"due_date_urgency"`
}

// TextStyle represents text styling
type TextStyle struct {
	Foreground        string `yaml:"foreground,omitempty" toml:"foreground,omitempty"`
	Background        string `yaml:"background,omitempty" toml:"background,omitempty"`
	Bold              bool   `yaml:"bold,omitempty" toml:"bold,omitempty"`
	Italic            bool   `yaml:"italic,omitempty" toml:"italic,omitempty"`
	Strikethrough     bool   `yaml:"strikethrough,omitempty" toml:"strikethrough,omitempty"`
	PaddingVertical   int    `yaml:"padding_vertical,omitempty" toml:"padding_vertical,omitempty"`
	PaddingHorizontal int    `yaml:"padding_horizontal,omitempty" toml:"padding_horizontal,omitempty"`
}

// PriorityColors holds colors for different priority levels
type PriorityColors struct {
	High   string `yaml:"high" toml:"high"`
	Medium string `yaml:"medium" toml:"medium"`
	Low    string `yaml:"low" toml:"low"`
}

// DueDateColors holds colors for different due date urgency levels
type DueDateColors struct {
	Overdue  string `yaml:"overdue" toml:"overdue"`
	DueSoon  string `yaml:"due_soon" toml:"due_soon"`
	Upcoming string `yaml:"upcoming" toml:"upcoming"`
}

// KeybindingsConfig holds keybinding configuration
type KeybindingsConfig struct {
	Up             []string `yaml:"up" toml:"up"`
	Down           []string `yaml:"down" toml:"down"`
	Add            []string `yaml:"add" toml:"add"`
	Edit           []string `yaml:"edit" toml:"edit"`
	Toggle         []string `yaml:"toggle" toml:"toggle"`
	Delete         []string `yaml:"delete" toml:"delete"`
	ClearCompleted []string `yaml:"clear_completed" toml:"clear_completed"`
	Search         []string `yaml:"search" toml:"search"`
	Category       []string `yaml:"category" toml:"category"`
	Priority       []string `yaml:"priority" toml:"priority"`
	Backup         []string `yaml:"backup" toml:"backup"`
	Quit           []string `yaml:"quit" toml:"quit"`
}

// Loader handles loading and saving configuration
type Loader struct {
	configPath string
	custom     bool
}

// NewLoader creates a loader for the default config location
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return &Loader{
		configPath: filepath.Join(homeDir, defaultConfigDirName, defaultConfigFileName),
	}, nil
}

// NewLoaderFrom creates a loader for an explicit config file. A missing
// file is not created; defaults are used instead.
func NewLoaderFrom(path string) *Loader {
	return &Loader{configPath: path, custom: true}
}

// Load loads the configuration. At the default location a missing file is
// created with defaults.
func (l *Loader) Load() (*Config, error) {
	if _, err := os.Stat(l.configPath); errors.Is(err, os.ErrNotExist) {
		if l.custom {
			return l.finish(Default())
		}
		return l.createDefaultConfig()
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := decode(l.configPath, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return l.finish(cfg)
}

func (l *Loader) finish(cfg *Config) (*Config, error) {
	ApplyEnv(cfg, os.Getenv)
	cfg.Storage.DataDir = expandHome(cfg.Storage.DataDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save persists the configuration to disk in the format implied by the
// file extension
func (l *Loader) Save(config *Config) error {
	configDir := filepath.Dir(l.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := encode(l.configPath, config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// createDefaultConfig creates and saves a default configuration
func (l *Loader) createDefaultConfig() (*Config, error) {
	config := Default()
	if err := l.Save(config); err != nil {
		return nil, err
	}
	return l.finish(config)
}

// GetConfigPath returns the path to the config file
func (l *Loader) GetConfigPath() string {
	return l.configPath
}

// Validate checks values that cannot be defaulted silently
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("%w: storage.driver must be %q or %q, got %q", ErrInvalidConfig, DriverFile, DriverSQLite, c.Storage.Driver)
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("%w: storage.data_dir is empty", ErrInvalidConfig)
	}
	if c.Reminders.Interval != "" {
		d, err := time.ParseDuration(c.Reminders.Interval)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: reminders.interval %q is not a positive duration", ErrInvalidConfig, c.Reminders.Interval)
		}
	}
	if c.Reminders.MaxListed < 0 {
		return fmt.Errorf("%w: reminders.max_listed must not be negative", ErrInvalidConfig)
	}
	return nil
}

func decode(path string, data []byte, cfg *Config) error {
	if isTOML(path) {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func encode(path string, cfg *Config) ([]byte, error) {
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(cfg)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
