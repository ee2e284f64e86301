package entity

import (
	"fmt"

	"mtodo/internal/domain/valueobject"
)

// TaskList is the ordered set of all tasks. Order is insertion order and
// no two tasks share an ID.
type TaskList struct {
	tasks []*Task
}

// NewTaskList creates an empty task list
func NewTaskList() *TaskList {
	return &TaskList{tasks: make([]*Task, 0)}
}

// Len returns the number of tasks
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the task slice in collection order
func (l *TaskList) Tasks() []*Task {
	out := make([]*Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Add appends a task to the end of the list
func (l *TaskList) Add(task *Task) error {
	if _, err := l.Find(task.ID()); err == nil {
		return fmt.Errorf("%w: %s", ErrTaskAlreadyExists, task.ID())
	}
	l.tasks = append(l.tasks, task)
	return nil
}

// Find returns the task with the given ID
func (l *TaskList) Find(id valueobject.TaskID) (*Task, error) {
	for _, t := range l.tasks {
		if t.ID().Equal(id) {
			return t, nil
		}
	}
	return nil, ErrTaskNotFound
}

// Remove deletes the task with the given ID, reporting whether it existed
func (l *TaskList) Remove(id valueobject.TaskID) bool {
	for i, t := range l.tasks {
		if t.ID().Equal(id) {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveCompleted drops every completed task in one pass and returns them.
// Remaining tasks keep their relative order.
func (l *TaskList) RemoveCompleted() []*Task {
	kept := make([]*Task, 0, len(l.tasks))
	var removed []*Task
	for _, t := range l.tasks {
		if t.IsCompleted() {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	l.tasks = kept
	return removed
}

// CompletedCount returns the number of completed tasks
func (l *TaskList) CompletedCount() int {
	n := 0
	for _, t := range l.tasks {
		if t.IsCompleted() {
			n++
		}
	}
	return n
}
