package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtodo/internal/domain/valueobject"
)

func titles(tasks []*Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title()
	}
	return out
}

func TestTaskListAddRejectsDuplicates(t *testing.T) {
	list := NewTaskList()
	task := newTestTask(t, "a", valueobject.NewDate(2026, 2, 10))
	require.NoError(t, list.Add(task))
	assert.ErrorIs(t, list.Add(task), ErrTaskAlreadyExists)
	assert.Equal(t, 1, list.Len())
}

func TestTaskListFindAndRemove(t *testing.T) {
	list := NewTaskList()
	a := newTestTask(t, "a", valueobject.NewDate(2026, 2, 10))
	b := newTestTask(t, "b", valueobject.NewDate(2026, 2, 10))
	require.NoError(t, list.Add(a))
	require.NoError(t, list.Add(b))

	found, err := list.Find(b.ID())
	require.NoError(t, err)
	assert.Same(t, b, found)

	assert.True(t, list.Remove(a.ID()))
	assert.False(t, list.Remove(a.ID()))
	_, err = list.Find(a.ID())
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, []string{"b"}, titles(list.Tasks()))
}

func TestTaskListRemoveCompletedKeepsOrder(t *testing.T) {
	list := NewTaskList()
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		task := newTestTask(t, name, valueobject.NewDate(2026, 2, 10))
		task.SetCompleted(i%2 == 1)
		require.NoError(t, list.Add(task))
	}

	assert.Equal(t, 2, list.CompletedCount())
	removed := list.RemoveCompleted()

	assert.Equal(t, []string{"b", "d"}, titles(removed))
	assert.Equal(t, []string{"a", "c", "e"}, titles(list.Tasks()))
	assert.Empty(t, list.RemoveCompleted())
}

func TestTaskListTasksIsACopy(t *testing.T) {
	list := NewTaskList()
	require.NoError(t, list.Add(newTestTask(t, "a", valueobject.NewDate(2026, 2, 10))))
	tasks := list.Tasks()
	tasks[0] = nil
	assert.NotNil(t, list.Tasks()[0])
}
