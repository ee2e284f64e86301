package serialization

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID       string      `json:"id" yaml:"id"`
	Title    string      `json:"title" yaml:"title"`
	Priority interface{} `json:"priority,omitempty" yaml:"priority,omitempty"`
}

type testDocument struct {
	SchemaVersion int          `json:"schema_version" yaml:"schema_version"`
	Todos         []testRecord `json:"todos" yaml:"todos"`
}

func newCodec(t *testing.T, f Format) *DocumentCodec {
	t.Helper()
	codec, err := NewDocumentCodec(f)
	require.NoError(t, err)
	return codec
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("/tmp/todos.json"))
	assert.Equal(t, FormatYAML, FormatFromPath("todos.YAML"))
	assert.Equal(t, FormatYAML, FormatFromPath("todos.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("todos"))
}

func TestCodecRoundTrip(t *testing.T) {
	doc := testDocument{SchemaVersion: 1, Todos: []testRecord{{ID: "a", Title: "one", Priority: "High"}, {ID: "b", Title: "two"}}}
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			codec := newCodec(t, f)
			data, err := codec.Encode(doc)
			require.NoError(t, err)

			var back testDocument
			require.NoError(t, codec.Decode(data, &back))
			require.Len(t, back.Todos, 2)
			assert.Equal(t, "one", back.Todos[0].Title)
			assert.Equal(t, "b", back.Todos[1].ID)
			assert.Equal(t, 1, back.SchemaVersion)
		})
	}
}

func TestDecodeWrapsBareList(t *testing.T) {
	var doc testDocument
	require.NoError(t, newCodec(t, FormatJSON).Decode([]byte(`[{"id":"a","title":"x","priority":1}]`), &doc))
	require.Len(t, doc.Todos, 1)
	assert.Equal(t, "a", doc.Todos[0].ID)

	var ydoc testDocument
	require.NoError(t, newCodec(t, FormatYAML).Decode([]byte("- id: b\n  title: y\n"), &ydoc))
	require.Len(t, ydoc.Todos, 1)
	assert.Equal(t, "y", ydoc.Todos[0].Title)
}

func TestDecodeEmpty(t *testing.T) {
	var doc testDocument
	assert.ErrorIs(t, newCodec(t, FormatJSON).Decode([]byte("  \n"), &doc), ErrEmptyDocument)
}

func TestDecodeRejectsSchemaViolations(t *testing.T) {
	codec := newCodec(t, FormatJSON)
	tests := map[string]string{
		"todos not a list":      `{"todos": {"id": "a"}}`,
		"missing todos":         `{"schema_version": 1}`,
		"completed not bool":    `{"todos": [{"id": "a", "isCompleted": "yes"}]}`,
		"unknown priority":      `{"todos": [{"id": "a", "priority": "urgent"}]}`,
		"priority out of range": `{"todos": [{"id": "a", "priority": 7}]}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			var doc testDocument
			err := codec.Decode([]byte(input), &doc)
			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr), "got %v", err)
			assert.NotEmpty(t, schemaErr.Violations)
		})
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	var doc testDocument
	assert.Error(t, newCodec(t, FormatJSON).Decode([]byte(`{"todos": [`), &doc))
	assert.Error(t, newCodec(t, FormatYAML).Decode([]byte("todos: [\n"), &doc))
}
