package mapper

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/valueobject"
)

func TestTaskStorageRoundTrip(t *testing.T) {
	created := time.Date(2026, 2, 9, 10, 30, 15, 123456789, time.UTC)
	task, err := entity.ReconstructTask(valueobject.NewTaskID(), "Write report", "for Q1", "Work",
		valueobject.NewDate(2026, 2, 12), valueobject.PriorityHigh, true, created)
	require.NoError(t, err)

	storage := TaskToStorage(task)
	assert.Equal(t, "2026-02-12", storage.DueDate)
	assert.Equal(t, PriorityField("High"), storage.Priority)

	back, err := TaskFromStorage(storage)
	require.NoError(t, err)
	assert.True(t, task.ID().Equal(back.ID()))
	assert.Equal(t, task.Title(), back.Title())
	assert.Equal(t, task.Description(), back.Description())
	assert.Equal(t, task.Category(), back.Category())
	assert.True(t, task.DueDate().Equal(back.DueDate()))
	assert.Equal(t, task.Priority(), back.Priority())
	assert.True(t, back.IsCompleted())
	assert.True(t, created.Equal(back.CreatedDate()))
}

func TestTodoStorageJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(TodoStorage{ID: "x"})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, name := range []string{"id", "title", "description", "dueDate", "category", "priority", "isCompleted", "createdDate"} {
		assert.Contains(t, fields, name)
	}
	assert.Len(t, fields, 8)
}

func TestLegacyRecordDecoding(t *testing.T) {
	legacy := `{"Id":"5f0c7a8e-1111-4222-8333-444455556666","Title":"Old","Description":null,
		"DueDate":"2024-05-01T00:00:00","Category":null,"Priority":2,"IsCompleted":false,
		"CreatedDate":"2024-04-28T14:03:11.5470000"}`

	var s TodoStorage
	require.NoError(t, json.Unmarshal([]byte(legacy), &s))
	task, err := TaskFromStorage(s)
	require.NoError(t, err)

	assert.Equal(t, "Old", task.Title())
	assert.Equal(t, valueobject.PriorityHigh, task.Priority())
	assert.Equal(t, "2024-05-01", task.DueDate().String())
	assert.Equal(t, 2024, task.CreatedDate().Year())
}

func TestTaskFromStorageRejectsBadRecords(t *testing.T) {
	valid := TodoStorage{ID: "5f0c7a8e-1111-4222-8333-444455556666", Title: "ok", DueDate: "2026-02-10", Priority: "Low"}

	bad := valid
	bad.ID = "nope"
	_, err := TaskFromStorage(bad)
	assert.ErrorIs(t, err, valueobject.ErrInvalidTaskID)

	bad = valid
	bad.DueDate = "soon"
	_, err = TaskFromStorage(bad)
	assert.ErrorIs(t, err, valueobject.ErrInvalidDate)

	bad = valid
	bad.Priority = "urgent"
	_, err = TaskFromStorage(bad)
	assert.ErrorIs(t, err, valueobject.ErrInvalidPriority)
}

func TestTasksFromDocumentAcceptsOverLongText(t *testing.T) {
	long := TodoStorage{
		ID:          "6f0c7a8e-1111-4222-8333-444455556666",
		Title:       strings.Repeat("t", entity.MaxTitleLength+1),
		Description: strings.Repeat("d", entity.MaxDescriptionLength+1),
		DueDate:     "2026-02-10",
		Priority:    "High",
	}
	keep := TodoStorage{ID: "5f0c7a8e-1111-4222-8333-444455556666", Title: "keep me", DueDate: "2026-02-11", Priority: "Low"}

	tasks, err := TasksFromDocument(DocumentStorage{SchemaVersion: CurrentSchemaVersion, Todos: []TodoStorage{keep, long}})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "keep me", tasks[0].Title())
	assert.Equal(t, long.Title, tasks[1].Title())
	assert.Equal(t, long.Description, tasks[1].Description())
}

func TestTasksFromDocumentRejectsDuplicateIDs(t *testing.T) {
	rec := TodoStorage{ID: "5f0c7a8e-1111-4222-8333-444455556666", Title: "ok", DueDate: "2026-02-10"}
	_, err := TasksFromDocument(DocumentStorage{Todos: []TodoStorage{rec, rec}})
	assert.ErrorIs(t, err, entity.ErrTaskAlreadyExists)
}

func TestTasksToDocumentKeepsOrder(t *testing.T) {
	var tasks []*entity.Task
	for _, title := range []string{"c", "a", "b"} {
		task, err := entity.NewTask(valueobject.NewTaskID(), title, "", "", valueobject.NewDate(2026, 2, 10),
			valueobject.PriorityLow, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		tasks = append(tasks, task)
	}

	doc := TasksToDocument(tasks)
	assert.Equal(t, CurrentSchemaVersion, doc.SchemaVersion)

	back, err := TasksFromDocument(doc)
	require.NoError(t, err)
	require.Len(t, back, 3)
	for i := range tasks {
		assert.Equal(t, tasks[i].Title(), back[i].Title())
	}
}
