package style

import (
	"github.com/charmbracelet/lipgloss"

	"mtodo/internal/infrastructure/config"
)

var (
	TitleStyle         lipgloss.Style
	TaskStyle          lipgloss.Style
	SelectedTaskStyle  lipgloss.Style
	CompletedTaskStyle lipgloss.Style
	CategoryStyle      lipgloss.Style
	StatsStyle         lipgloss.Style
	ReminderStyle      lipgloss.Style
	HelpStyle          lipgloss.Style
	ErrorStyle         lipgloss.Style
	LabelStyle         lipgloss.Style
	FormStyle          lipgloss.Style

	HighPriorityColor   lipgloss.Color
	MediumPriorityColor lipgloss.Color
	LowPriorityColor    lipgloss.Color
	OverdueColor        lipgloss.Color
	DueSoonColor        lipgloss.Color
	UpcomingColor       lipgloss.Color
)

func init() {
	InitStyles(config.Default())
}

// InitStyles initializes the styles from config
func InitStyles(cfg *config.Config) {
	styles := cfg.TUI.Styles

	TitleStyle = textStyle(styles.Title)
	TaskStyle = textStyle(styles.Task)
	SelectedTaskStyle = textStyle(styles.SelectedTask)
	CompletedTaskStyle = textStyle(styles.CompletedTask)
	CategoryStyle = textStyle(styles.Category)
	StatsStyle = textStyle(styles.Stats)
	HelpStyle = textStyle(styles.Help)

	ReminderStyle = textStyle(styles.Reminder).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Reminder.Foreground))

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Padding(0, 1)
	LabelStyle = lipgloss.NewStyle().Bold(true).Width(12)
	FormStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Title.Foreground)).
		Padding(0, 1)

	HighPriorityColor = lipgloss.Color(styles.Priority.High)
	MediumPriorityColor = lipgloss.Color(styles.Priority.Medium)
	LowPriorityColor = lipgloss.Color(styles.Priority.Low)
	OverdueColor = lipgloss.Color(styles.DueDateUrgency.Overdue)
	DueSoonColor = lipgloss.Color(styles.DueDateUrgency.DueSoon)
	UpcomingColor = lipgloss.Color(styles.DueDateUrgency.Upcoming)
}

// PriorityColor returns the configured color for a priority name
func PriorityColor(priority string) lipgloss.Color {
	switch priority {
	case "High":
		return HighPriorityColor
	case "Medium":
		return MediumPriorityColor
	default:
		return LowPriorityColor
	}
}

// DueColor returns the configured color for a due date's urgency
func DueColor(overdue, dueSoon bool) lipgloss.Color {
	switch {
	case overdue:
		return OverdueColor
	case dueSoon:
		return DueSoonColor
	default:
		return UpcomingColor
	}
}

func textStyle(ts config.TextStyle) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(ts.PaddingVertical, ts.PaddingHorizontal)
	if ts.Foreground != "" {
		s = s.Foreground(lipgloss.Color(ts.Foreground))
	}
	if ts.Background != "" {
		s = s.Background(lipgloss.Color(ts.Background))
	}
	if ts.Bold {
		s = s.Bold(true)
	}
	if ts.Italic {
		s = s.Italic(true)
	}
	if ts.Strikethrough {
		s = s.Strikethrough(true)
	}
	return s
}
