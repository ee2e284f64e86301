package commands

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mtodo/internal/infrastructure/logging"
	"mtodo/tui"
	"mtodo/tui/style"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal user interface",
	Long: `Launch the interactive TUI for managing your todos.

Keyboard shortcuts (defaults, see keybindings in the config):
  ↑/k, ↓/j   - Move selection
  a          - Add todo
  e          - Edit selected todo
  space/x    - Toggle completed
  d          - Delete selected todo
  C          - Delete all completed todos
  /          - Search title and description
  c          - Cycle category filter
  p          - Cycle priority filter
  b          - Back up the store
  esc        - Dismiss reminder or clear filters
  ?          - Toggle full help
  q/Ctrl+C   - Quit

While the TUI runs, log output goes to mtodo.log in the data directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		style.InitStyles(cfg)
		tui.InitKeybindings(cfg)

		logPath := filepath.Join(cfg.Storage.DataDir, "mtodo.log")
		closer, err := logging.RedirectToFile(container.Logger, logPath)
		if err != nil {
			printer.Warning("Could not open log file %s: %v", logPath, err)
		} else {
			defer closer.Close()
		}

		m := tui.NewModel(container.Session, tui.Options{
			RemindersEnabled: cfg.Reminders.Enabled,
			ReminderInterval: cfg.Reminders.IntervalDuration(),
		})

		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
