package commands

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"mtodo/cmd/mtodo/output"
	"mtodo/internal/di"
	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
	"mtodo/internal/domain/service"
	"mtodo/internal/domain/valueobject"
	"mtodo/internal/infrastructure/config"
)

// annotationNoContainer marks commands that must run without loading the store
const annotationNoContainer = "mtodo/no-container"

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags
	outputFormat string
	configPath   string
	quiet        bool

	// Shared instances
	cfg       *config.Config
	container *di.Container
	cleanup   func()
	printer   *output.Printer
	formatter *output.Formatter
)

var taskIDLikeRE = regexp.MustCompile(`^[0-9a-fA-F][0-9a-fA-F-]{3,35}$`)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mtodo",
	Short: "Terminal todo list with due dates and reminders",
	Long: `mtodo is a terminal todo list with categories, priorities, due dates and reminders.

Features:
  - Tasks with title, description, category, priority and due date
  - Search, category and priority filters
  - Overdue and due-soon reminders
  - JSON, YAML or sqlite storage with timestamped backups
  - Interactive TUI and scriptable CLI

Examples:
  # Launch interactive TUI
  mtodo
  mtodo tui

  # Add a todo due tomorrow
  mtodo add "Pay rent" --category Home --priority high

  # List open todos in a category
  mtodo list --category Work --pending

  # Complete a todo by id prefix
  mtodo toggle 0b7e

  # Check reminders every 30 minutes
  mtodo remind --watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		formatter = output.NewFormatter(format, os.Stdout)
		printer = output.DefaultPrinter()

		if cmd.Annotations[annotationNoContainer] == "true" {
			return nil
		}

		container, cleanup, err = di.InitializeContainer(di.ConfigPath(configPath))
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		cfg = container.Config

		ctx := getContext()
		if err := container.Session.Load(ctx); err != nil {
			printer.Warning("Could not load todos, starting with an empty list: %v", err)
		}

		if cfg.Storage.BackupOnStart {
			path, err := container.Session.Backup(ctx)
			if err != nil {
				printer.Warning("Backup failed: %v", err)
			} else if path != "" && !quiet {
				printer.Subtle("Backup written to %s", path)
			}
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if cleanup != nil {
			cleanup()
		}
		printer := output.DefaultPrinter()
		printer.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml, fzf")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (.yml, .yaml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			printVersion()
			return nil
		}

		if len(args) == 0 {
			return tuiCmd.RunE(cmd, args)
		}
		return cmd.Help()
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("mtodo version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Built:      %s\n", BuildDate)
}

// getContext returns a context for command execution
func getContext() context.Context {
	return context.Background()
}

// resolveTaskID resolves a full id or unique prefix. With no argument the
// reference is read from piped input, such as a line picked from
// "mtodo list -o fzf | fzf".
func resolveTaskID(args []string) (valueobject.TaskID, error) {
	var ref string
	if len(args) > 0 {
		ref = args[0]
	} else {
		piped, err := readPipedRef(os.Stdin)
		if err != nil {
			return valueobject.TaskID{}, err
		}
		if piped == "" {
			return valueobject.TaskID{}, fmt.Errorf("accepts 1 arg(s), received 0")
		}
		ref = piped
	}

	id, err := container.Session.Resolve(ref)
	if err != nil {
		return valueobject.TaskID{}, err
	}
	return id, nil
}

// reportChange prints the persistence warning of a command, if any
func reportChange(warning error) {
	if warning == nil {
		return
	}
	var perr *repository.PersistenceError
	if errors.As(warning, &perr) {
		printer.Warning("Change kept in memory but not saved (%s %s): %v", perr.Op, perr.Path, perr.Err)
		return
	}
	printer.Warning("%v", warning)
}

// describeError turns command errors into user-facing messages
func describeError(err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Errorf("invalid todo: %s", verr.Error())
	case errors.Is(err, entity.ErrTaskNotFound):
		return fmt.Errorf("todo not found: %w", err)
	default:
		return err
	}
}

// confirm asks for a yes/no answer on stdin
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// readPipedRef reads a task reference from stdin. It returns "" when
// stdin is a terminal.
func readPipedRef(stdin *os.File) (string, error) {
	stat, err := stdin.Stat()
	if err != nil {
		return "", err
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return taskRefFromInput(data), nil
}

// taskRefFromInput returns the leading id of the first line that starts
// with one. Works for tab-separated fzf rows and padded table rows alike.
func taskRefFromInput(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 && taskIDLikeRE.MatchString(fields[0]) {
			return fields[0]
		}
	}
	return ""
}
