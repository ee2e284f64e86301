package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mtodo/internal/application/dto"
	"mtodo/internal/application/reminder"
	"mtodo/internal/infrastructure/notify"
)

// remindCmd evaluates overdue and due-soon reminders
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Show overdue and due-soon todos",
	Long: `Evaluate reminders for overdue todos and todos due today or tomorrow.

With --watch the check repeats every reminders.interval (default 30m) and
whenever the data file changes, until interrupted. Desktop notifications are
sent as well when reminders.desktop_notifications is enabled.

Examples:
  mtodo remind
  mtodo remind --output json
  mtodo remind --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		if watch {
			ctx, stop := signal.NotifyContext(getContext(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if !quiet {
				printer.Info("Watching %s every %s (Ctrl+C to stop)",
					container.Session.Location(), cfg.Reminders.IntervalDuration())
			}
			return container.Watcher.Run(ctx)
		}

		report := container.Session.EvaluateReminders()
		if formatter.IsStructured() {
			return formatter.Print(dto.ReminderReportToDTO(report))
		}
		if report == nil {
			if !quiet {
				printer.Success("Nothing overdue or due soon")
			}
			return nil
		}
		return container.Notifier.Notify(context.Background(), notify.Notification{
			Title: reminder.NotificationTitle,
			Body:  report.Message(),
		})
	},
}

// backupCmd copies the store to a timestamped sibling
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the todo store",
	Long: `Copy the todo store next to itself with a timestamp suffix,
for example todos_backup_20260209_140533.json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := container.Session.Backup(getContext())
		if err != nil {
			return err
		}
		if path == "" {
			printer.Info("Nothing to back up yet: %s does not exist", container.Session.Location())
			return nil
		}
		if formatter.IsStructured() {
			return formatter.Print(map[string]string{"path": path})
		}
		printer.Success("Backup written to %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(backupCmd)

	remindCmd.Flags().BoolP("watch", "w", false, "Keep checking until interrupted")
}
