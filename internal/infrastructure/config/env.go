package config

import "strings"

// Environment variables that override file settings
const (
	EnvDataDir          = "MTODO_DATA_DIR"
	EnvStorageDriver    = "MTODO_STORAGE_DRIVER"
	EnvProfile          = "MTODO_PROFILE"
	EnvLogLevel         = "MTODO_LOG_LEVEL"
	EnvReminderInterval = "MTODO_REMINDER_INTERVAL"
)

// ApplyEnv overrides config values from the environment. getenv is
// usually os.Getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvDataDir)); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := strings.TrimSpace(getenv(EnvStorageDriver)); v != "" {
		cfg.Storage.Driver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvProfile)); v != "" {
		cfg.Storage.Profile = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvReminderInterval)); v != "" {
		cfg.Reminders.Interval = v
	}
}
