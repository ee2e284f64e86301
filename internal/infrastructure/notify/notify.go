package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Notification is a message shown to the user outside the normal output
type Notification struct {
	Title string
	Body  string
}

// Notifier delivers notifications
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// ConsoleNotifier prints notifications as a bordered box
type ConsoleNotifier struct {
	writer io.Writer
	box    lipgloss.Style
	title  lipgloss.Style
}

// NewConsoleNotifier creates a notifier writing to w
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{
		writer: w,
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("11")).
			Padding(0, 1),
		title: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	}
}

// Notify implements Notifier
func (c *ConsoleNotifier) Notify(_ context.Context, n Notification) error {
	content := n.Body
	if n.Title != "" {
		content = c.title.Render(n.Title) + "\n" + n.Body
	}
	_, err := fmt.Fprintln(c.writer, c.box.Render(content))
	return err
}

// CommandRunner runs an external program
type CommandRunner func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// DesktopNotifier shows notifications through the desktop environment:
// notify-send on Linux, osascript on macOS, nothing elsewhere
type DesktopNotifier struct {
	goos string
	run  CommandRunner
}

// NewDesktopNotifier creates a notifier for the current platform
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{goos: runtime.GOOS, run: runCommand}
}

// NewDesktopNotifierWithRunner creates a notifier for goos that executes
// commands through run
func NewDesktopNotifierWithRunner(goos string, run CommandRunner) *DesktopNotifier {
	return &DesktopNotifier{goos: goos, run: run}
}

// Notify implements Notifier
func (d *DesktopNotifier) Notify(ctx context.Context, n Notification) error {
	switch d.goos {
	case "linux":
		return d.run(ctx, "notify-send", n.Title, n.Body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return d.run(ctx, "osascript", "-e", script)
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Multi sends each notification to every notifier and joins the errors
type Multi []Notifier

// Notify implements Notifier
func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
