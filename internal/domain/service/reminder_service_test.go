package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateNothingDue(t *testing.T) {
	tasks := buildTasks(t,
		taskSpec{title: "later", due: 5},
		taskSpec{title: "done", due: -2, completed: true},
	)
	assert.Nil(t, NewReminderService(3).Evaluate(tasks, today))
	assert.Nil(t, NewReminderService(3).Evaluate(nil, today))
}

func TestEvaluateOneOverdue(t *testing.T) {
	tasks := buildTasks(t, taskSpec{title: "late", due: -1}, taskSpec{title: "later", due: 4})
	report := NewReminderService(3).Evaluate(tasks, today)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Overdue.Count)
	assert.Equal(t, []string{"late"}, report.Overdue.Entries)
	assert.Zero(t, report.DueSoon.Count)
	assert.Empty(t, report.DueSoon.Entries)
	assert.Equal(t, "⚠️ 1 overdue task(s):\n• late", report.Message())
}

func TestEvaluateOverflowAndDueSoonFormat(t *testing.T) {
	tasks := buildTasks(t,
		taskSpec{title: "o1", due: -1},
		taskSpec{title: "s1", due: 0},
		taskSpec{title: "o2", due: -4},
		taskSpec{title: "o3", due: -2},
		taskSpec{title: "o4", due: -1},
		taskSpec{title: "o5", due: -9},
		taskSpec{title: "s2", due: 1},
	)
	report := NewReminderService(0).Evaluate(tasks, today)
	require.NotNil(t, report)

	assert.Equal(t, 5, report.Overdue.Count)
	assert.Equal(t, []string{"o1", "o2", "o3"}, report.Overdue.Entries)
	assert.Equal(t, 2, report.Overdue.More)

	assert.Equal(t, 2, report.DueSoon.Count)
	assert.Equal(t, []string{"s1 (due: Feb 09, 2026)", "s2 (due: Feb 10, 2026)"}, report.DueSoon.Entries)
	assert.Zero(t, report.DueSoon.More)

	want := "⚠️ 5 overdue task(s):\n• o1\n• o2\n• o3\n... and 2 more\n\n" +
		"📅 2 task(s) due soon:\n• s1 (due: Feb 09, 2026)\n• s2 (due: Feb 10, 2026)"
	assert.Equal(t, want, report.Message())
}
