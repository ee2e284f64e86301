package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/valueobject"
)

var today = valueobject.NewDate(2026, 2, 9)

type taskSpec struct {
	title       string
	description string
	category    string
	due         int
	priority    valueobject.Priority
	completed   bool
}

func buildTasks(t *testing.T, specs ...taskSpec) []*entity.Task {
	t.Helper()
	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	out := make([]*entity.Task, 0, len(specs))
	for _, s := range specs {
		task, err := entity.ReconstructTask(valueobject.NewTaskID(), s.title, s.description, s.category,
			today.AddDays(s.due), s.priority, s.completed, created)
		require.NoError(t, err)
		out = append(out, task)
	}
	return out
}

func taskTitles(tasks []*entity.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title()
	}
	return out
}
