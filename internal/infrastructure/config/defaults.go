package config

import (
	"os"
	"path/filepath"
)

// Default returns the built-in configuration
func Default() *Config {
	dataDir := filepath.Join("~", defaultDataDirName)
	if homeDir, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(homeDir, defaultDataDirName)
	}

	return &Config{
		Storage: StorageConfig{
			DataDir: dataDir,
			Driver:  DriverFile,
		},
		Reminders: RemindersConfig{
			Enabled:   true,
			Interval:  DefaultReminderInterval.String(),
			MaxListed: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Display: DisplayConfig{
			DateFormat: "Jan 02, 2006",
		},
		TUI: TUIConfig{
			Styles: StylesConfig{
				Title: TextStyle{
					Foreground:        "99",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				Task: TextStyle{
					Foreground:        "252",
					PaddingHorizontal: 1,
				},
				SelectedTask: TextStyle{
					Foreground:        "230",
					Background:        "62",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				CompletedTask: TextStyle{
					Foreground:        "241",
					Strikethrough:     true,
					PaddingHorizontal: 1,
				},
				Category: TextStyle{
					Foreground: "#A8DADC",
				},
				Stats: TextStyle{
					Foreground:        "245",
					PaddingHorizontal: 1,
				},
				Reminder: TextStyle{
					Foreground:        "#FFE66D",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				Help: TextStyle{
					Foreground:        "241",
					PaddingVertical:   1,
					PaddingHorizontal: 1,
				},
				Priority: PriorityColors{
					High:   "#FF6B6B",
					Medium: "#FFE66D",
					Low:    "#95E1D3",
				},
				DueDateUrgency: DueDateColors{
					Overdue:  "#FF6B6B",
					DueSoon:  "#FFE66D",
					Upcoming: "#999999",
				},
			},
		},
		Keybindings: KeybindingsConfig{
			Up:             []string{"up", "k"},
			Down:           []string{"down", "j"},
			Add:            []string{"a"},
			Edit:           []string{"e"},
			Toggle:         []string{" ", "x"},
			Delete:         []string{"d"},
			ClearCompleted: []string{"C"},
			Search:         []string{"/"},
			Category:       []string{"c"},
			Priority:       []string{"p"},
			Backup:         []string{"b"},
			Quit:           []string{"q", "ctrl+c"},
		},
	}
}
