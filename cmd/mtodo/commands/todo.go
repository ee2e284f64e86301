package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mtodo/cmd/mtodo/output"
	"mtodo/internal/application/dto"
	"mtodo/internal/domain/valueobject"
)

// addCmd creates a todo
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo",
	Long: `Add a new todo.

The due date defaults to tomorrow and the priority to medium. Due dates in
the past are rejected.

Examples:
  # Add a todo due tomorrow
  mtodo add "Buy milk"

  # Add with all fields
  mtodo add "Quarterly report" --description "Numbers for Q1" \
    --category Work --due 2026-03-31 --priority high

  # Urgent always means high priority
  mtodo add "Call the bank" --urgent`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		description, _ := cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")
		due, _ := cmd.Flags().GetString("due")
		priority, _ := cmd.Flags().GetString("priority")
		urgent, _ := cmd.Flags().GetBool("urgent")

		change, err := container.Session.AddTodo(ctx, dto.CreateTodoRequest{
			Title:       strings.Join(args, " "),
			Description: description,
			Category:    category,
			DueDate:     due,
			Priority:    priority,
			Urgent:      urgent,
		})
		if err != nil {
			return describeError(err)
		}
		reportChange(change.Warning)

		todo, err := container.Session.Get(change.IDs[0])
		if err != nil {
			return err
		}
		if formatter.IsStructured() {
			return formatter.Print(todo)
		}
		printer.Success("Added %s - %s (due %s)", todo.ShortID, todo.Title, todo.DueDateText)
		return nil
	},
}

// editCmd updates a todo
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a todo",
	Long: `Edit the fields of an existing todo. Only the flags given are changed.

Past due dates are accepted so overdue todos stay editable.

Examples:
  mtodo edit 0b7e --title "Pay rent and bills"
  mtodo edit 0b7e --due 2026-02-01 --priority low
  mtodo edit 0b7e --category ""`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		id, err := resolveTaskID(args)
		if err != nil {
			return describeError(err)
		}

		req := dto.UpdateTodoRequest{}
		flags := cmd.Flags()
		if flags.Changed("title") {
			v, _ := flags.GetString("title")
			req.Title = &v
		}
		if flags.Changed("description") {
			v, _ := flags.GetString("description")
			req.Description = &v
		}
		if flags.Changed("category") {
			v, _ := flags.GetString("category")
			req.Category = &v
		}
		if flags.Changed("due") {
			v, _ := flags.GetString("due")
			req.DueDate = &v
		}
		if flags.Changed("priority") {
			v, _ := flags.GetString("priority")
			req.Priority = &v
		}
		req.Urgent, _ = flags.GetBool("urgent")

		if req.IsEmpty() {
			return fmt.Errorf("nothing to change: pass at least one of --title, --description, --category, --due, --priority, --urgent")
		}

		change, err := container.Session.EditTodo(ctx, id, req)
		if err != nil {
			return describeError(err)
		}
		reportChange(change.Warning)

		todo, err := container.Session.Get(id)
		if err != nil {
			return err
		}
		if formatter.IsStructured() {
			return formatter.Print(todo)
		}
		printer.Success("Updated %s - %s", todo.ShortID, todo.Title)
		return nil
	},
}

// deleteCmd removes a todo
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a todo",
	Long: `Delete a todo.

WARNING: This action cannot be undone.

Examples:
  # Delete a todo (with confirmation)
  mtodo delete 0b7e

  # Delete without confirmation
  mtodo delete 0b7e --yes

  # Pick the todo with fzf
  mtodo list -o fzf | fzf | mtodo delete --yes`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		id, err := resolveTaskID(args)
		if err != nil {
			return describeError(err)
		}
		todo, err := container.Session.Get(id)
		if err != nil {
			return describeError(err)
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			printer.Warning("About to delete: %s - %s", todo.ShortID, todo.Title)
			if !confirm("Delete this todo?") {
				printer.Info("Deletion cancelled")
				return nil
			}
		}

		change, err := container.Session.DeleteTodo(ctx, id)
		if err != nil {
			return describeError(err)
		}
		reportChange(change.Warning)
		if !quiet {
			printer.Success("Deleted %s - %s", todo.ShortID, todo.Title)
		}
		return nil
	},
}

// toggleCmd flips the completed flag
var toggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"done"},
	Short:   "Mark a todo completed or open again",
	Args:    cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		id, err := resolveTaskID(args)
		if err != nil {
			return describeError(err)
		}

		change, err := container.Session.ToggleComplete(ctx, id)
		if err != nil {
			return describeError(err)
		}
		reportChange(change.Warning)

		todo, err := container.Session.Get(id)
		if err != nil {
			return err
		}
		if formatter.IsStructured() {
			return formatter.Print(todo)
		}
		if todo.IsCompleted {
			printer.Success("Completed %s - %s", todo.ShortID, todo.Title)
		} else {
			printer.Success("Reopened %s - %s", todo.ShortID, todo.Title)
		}
		return nil
	},
}

// clearCompletedCmd removes all completed todos
var clearCompletedCmd = &cobra.Command{
	Use:   "clear-completed",
	Short: "Delete all completed todos",
	Long: `Delete every completed todo in one step.

Examples:
  mtodo clear-completed
  mtodo clear-completed --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		if !container.Session.CanClearCompleted() {
			printer.Info("No completed todos")
			return nil
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			stats := container.Session.Stats()
			if !confirm(fmt.Sprintf("Delete %d completed todo(s)?", stats.Completed)) {
				printer.Info("Cancelled")
				return nil
			}
		}

		change, err := container.Session.ClearCompleted(ctx)
		if err != nil {
			return describeError(err)
		}
		reportChange(change.Warning)
		printer.Success("Removed %d completed todo(s)", len(change.IDs))
		return nil
	},
}

// listCmd lists todos in display order
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos",
	Long: `List todos, open ones first, then by priority and due date.

Output formats:
  text - Human-readable table (default)
  json - JSON output for scripting
  yaml - YAML output
  fzf  - Todo ID and title (tab-separated)

Examples:
  # List everything
  mtodo list

  # Search title and description
  mtodo list --search rent

  # Filter by category and priority
  mtodo list --category Work --priority high

  # Only open or overdue todos
  mtodo list --pending
  mtodo list --overdue`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		category, _ := cmd.Flags().GetString("category")
		priority, _ := cmd.Flags().GetString("priority")
		pending, _ := cmd.Flags().GetBool("pending")
		overdue, _ := cmd.Flags().GetBool("overdue")

		s := container.Session
		s.SetSearch(search)
		s.SetCategory(category)
		if priority != "" {
			p, err := valueobject.ParsePriority(priority)
			if err != nil {
				return err
			}
			s.SetPriorityFilter(&p)
		}

		todos := make([]dto.TodoDTO, 0)
		for _, t := range s.Snapshot().Todos {
			if pending && t.IsCompleted {
				continue
			}
			if overdue && !t.IsOverdue {
				continue
			}
			todos = append(todos, t)
		}

		switch formatter.Format() {
		case output.FormatFZF:
			rows := make([][]string, len(todos))
			for i, t := range todos {
				rows[i] = []string{t.ShortID, t.Title}
			}
			return formatter.PrintFZF(rows)
		case output.FormatJSON, output.FormatYAML:
			return formatter.Print(todos)
		}

		if len(todos) == 0 {
			printer.Info("No todos found")
			return nil
		}
		rows := make([][]string, len(todos))
		for i, t := range todos {
			rows[i] = output.TodoRow(t)
		}
		printer.Table(output.TodoHeaders, rows)
		if !quiet {
			fmt.Println()
			printStats(dto.StatsToDTO(s.Stats()))
		}
		return nil
	},
}

// showCmd renders a single todo
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a todo",
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveTaskID(args)
		if err != nil {
			return describeError(err)
		}
		todo, err := container.Session.Get(id)
		if err != nil {
			return describeError(err)
		}
		if formatter.IsStructured() {
			return formatter.Print(todo)
		}

		printer.Raw(output.RenderMarkdown(output.TodoMarkdown(todo), terminalWidth()))
		return nil
	},
}

// statsCmd prints the collection summary
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show todo counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats := dto.StatsToDTO(container.Session.Stats())
		if formatter.IsStructured() {
			return formatter.Print(stats)
		}
		printStats(stats)
		return nil
	},
}

// categoriesCmd lists the categories in use
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Drop the "All" filter entry.
		categories := container.Session.Categories()[1:]
		if formatter.IsStructured() {
			return formatter.Print(categories)
		}
		if len(categories) == 0 {
			printer.Info("No categories")
			return nil
		}
		for _, c := range categories {
			printer.Println("%s", c)
		}
		return nil
	},
}

func printStats(stats dto.StatsDTO) {
	printer.Subtle("Total: %d  Completed: %d  Pending: %d  Overdue: %d",
		stats.Total, stats.Completed, stats.Pending, stats.Overdue)
}

func terminalWidth() int {
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return 80
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(clearCompletedCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(categoriesCmd)

	// addCmd flags
	addCmd.Flags().StringP("description", "d", "", "Description (up to 500 characters)")
	addCmd.Flags().String("category", "", "Category label")
	addCmd.Flags().String("due", "", "Due date YYYY-MM-DD (default: tomorrow)")
	addCmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high (default: medium)")
	addCmd.Flags().BoolP("urgent", "u", false, "Urgent, forces high priority")

	// editCmd flags
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().StringP("description", "d", "", "New description")
	editCmd.Flags().String("category", "", "New category")
	editCmd.Flags().String("due", "", "New due date YYYY-MM-DD")
	editCmd.Flags().StringP("priority", "p", "", "New priority: low, medium, high")
	editCmd.Flags().BoolP("urgent", "u", false, "Urgent, forces high priority")

	// confirmations
	deleteCmd.Flags().BoolP("yes", "y", false, "Delete without confirmation")
	clearCompletedCmd.Flags().BoolP("yes", "y", false, "Delete without confirmation")

	// listCmd flags
	listCmd.Flags().StringP("search", "s", "", "Case-insensitive text in title or description")
	listCmd.Flags().String("category", "", "Exact category (\"All\" disables the filter)")
	listCmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high")
	listCmd.Flags().Bool("pending", false, "Only open todos")
	listCmd.Flags().Bool("overdue", false, "Only overdue todos")
}
