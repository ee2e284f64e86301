package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/valueobject"
)

// CurrentSchemaVersion is written to every saved document
const CurrentSchemaVersion = 1

// createdLayouts are accepted for createdDate, newest format first
var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// DocumentStorage represents the stored task collection
type DocumentStorage struct {
	SchemaVersion int           `json:"schema_version" yaml:"schema_version"`
	Todos         []TodoStorage `json:"todos" yaml:"todos"`
}

// TodoStorage represents task storage format
type TodoStorage struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	DueDate     string        `json:"dueDate" yaml:"dueDate"`
	Category    string        `json:"category" yaml:"category"`
	Priority    PriorityField `json:"priority" yaml:"priority"`
	IsCompleted bool          `json:"isCompleted" yaml:"isCompleted"`
	CreatedDate string        `json:"createdDate" yaml:"createdDate"`
}

// PriorityField holds a priority name. Older files stored the level as a
// number, which is converted to its name when decoding.
type PriorityField string

// UnmarshalJSON accepts either a string or a numeric level
func (p *PriorityField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		n, err := strconv.Atoi(string(data))
		if err != nil {
			return fmt.Errorf("invalid priority level %s: %w", data, err)
		}
		level, err := valueobject.PriorityFromInt(n)
		if err != nil {
			return err
		}
		*p = PriorityField(level.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = PriorityField(s)
	return nil
}

// TaskToStorage converts a Task entity to storage format
func TaskToStorage(task *entity.Task) TodoStorage {
	return TodoStorage{
		ID:          task.ID().String(),
		Title:       task.Title(),
		Description: task.Description(),
		DueDate:     task.DueDate().String(),
		Category:    task.Category(),
		Priority:    PriorityField(task.Priority().String()),
		IsCompleted: task.IsCompleted(),
		CreatedDate: task.CreatedDate().Format(time.RFC3339Nano),
	}
}

// TaskFromStorage converts storage format to a Task entity
func TaskFromStorage(s TodoStorage) (*entity.Task, error) {
	id, err := valueobject.ParseTaskID(s.ID)
	if err != nil {
		return nil, err
	}

	dueDate, err := valueobject.ParseDate(s.DueDate)
	if err != nil {
		return nil, fmt.Errorf("task %s: invalid due date: %w", s.ID, err)
	}

	priority, err := valueobject.ParsePriority(string(s.Priority))
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", s.ID, err)
	}

	created, err := parseCreated(s.CreatedDate)
	if err != nil {
		return nil, fmt.Errorf("task %s: invalid created date: %w", s.ID, err)
	}

	task, err := entity.ReconstructTask(id, s.Title, s.Description, s.Category, dueDate, priority, s.IsCompleted, created)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", s.ID, err)
	}
	return task, nil
}

// TasksToDocument converts the whole collection to storage format
func TasksToDocument(tasks []*entity.Task) DocumentStorage {
	doc := DocumentStorage{
		SchemaVersion: CurrentSchemaVersion,
		Todos:         make([]TodoStorage, 0, len(tasks)),
	}
	for _, t := range tasks {
		doc.Todos = append(doc.Todos, TaskToStorage(t))
	}
	return doc
}

// TasksFromDocument converts a stored collection back to entities. Any
// invalid record or repeated ID fails the whole document.
func TasksFromDocument(doc DocumentStorage) ([]*entity.Task, error) {
	tasks := make([]*entity.Task, 0, len(doc.Todos))
	seen := make(map[string]struct{}, len(doc.Todos))
	for i, s := range doc.Todos {
		task, err := TaskFromStorage(s)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		key := task.ID().String()
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("record %d: %w: %s", i, entity.ErrTaskAlreadyExists, key)
		}
		seen[key] = struct{}{}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func parseCreated(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range createdLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
