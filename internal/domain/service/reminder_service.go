package service

import (
	"fmt"
	"strings"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/valueobject"
)

// DefaultMaxListed is the number of titles listed per reminder group
const DefaultMaxListed = 3

// ReminderGroup is one section of a reminder: how many tasks matched, the
// first few entries, and how many were left out
type ReminderGroup struct {
	Count   int
	Entries []string
	More    int
}

// ReminderReport describes overdue and due-soon tasks at one point in time
type ReminderReport struct {
	Overdue ReminderGroup
	DueSoon ReminderGroup
}

// Message renders the report as a multi-line notification text
func (r *ReminderReport) Message() string {
	var b strings.Builder
	if r.Overdue.Count > 0 {
		fmt.Fprintf(&b, "⚠️ %d overdue task(s):\n", r.Overdue.Count)
		writeGroup(&b, r.Overdue)
	}
	if r.DueSoon.Count > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "📅 %d task(s) due soon:\n", r.DueSoon.Count)
		writeGroup(&b, r.DueSoon)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeGroup(b *strings.Builder, g ReminderGroup) {
	for _, e := range g.Entries {
		fmt.Fprintf(b, "• %s\n", e)
	}
	if g.More > 0 {
		fmt.Fprintf(b, "... and %d more\n", g.More)
	}
}

// ReminderService evaluates which tasks need the user's attention
type ReminderService struct {
	maxListed int
}

// NewReminderService creates a new ReminderService. A non-positive
// maxListed falls back to DefaultMaxListed.
func NewReminderService(maxListed int) *ReminderService {
	if maxListed <= 0 {
		maxListed = DefaultMaxListed
	}
	return &ReminderService{maxListed: maxListed}
}

// Evaluate returns a report for the given day, or nil when nothing is
// overdue or due soon. Entries follow collection order.
func (s *ReminderService) Evaluate(tasks []*entity.Task, today valueobject.Date) *ReminderReport {
	var overdue, dueSoon []string
	for _, t := range tasks {
		switch {
		case t.IsOverdue(today):
			overdue = append(overdue, t.Title())
		case t.IsDueSoon(today):
			dueSoon = append(dueSoon, fmt.Sprintf("%s (due: %s)", t.Title(), t.DueDate().Display()))
		}
	}

	if len(overdue) == 0 && len(dueSoon) == 0 {
		return nil
	}

	return &ReminderReport{
		Overdue: s.group(overdue),
		DueSoon: s.group(dueSoon),
	}
}

func (s *ReminderService) group(entries []string) ReminderGroup {
	g := ReminderGroup{Count: len(entries)}
	if len(entries) > s.maxListed {
		g.Entries = entries[:s.maxListed]
		g.More = len(entries) - s.maxListed
	} else {
		g.Entries = entries
	}
	return g
}
