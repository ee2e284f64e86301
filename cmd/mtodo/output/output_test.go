package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtodo/internal/application/dto"
)

func sampleTodo() dto.TodoDTO {
	return dto.TodoDTO{
		ID:          "0b7e3a52-4c1d-4f7e-9a51-8f0c2d1e6b3a",
		ShortID:     "0b7e3a52",
		Title:       "Pay rent",
		Description: "Transfer before noon",
		DueDate:     "2026-02-09",
		DueDateText: "Feb 09, 2026",
		Category:    "Home",
		Priority:    "High",
		CreatedDate: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
		IsDueSoon:   true,
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":     FormatText,
		"text": FormatText,
		"JSON": FormatJSON,
		"yml":  FormatYAML,
		"fzf":  FormatFZF,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestFormatter_JSONAndYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON, &buf).Print(sampleTodo()))
	assert.Contains(t, buf.String(), `"short_id": "0b7e3a52"`)
	assert.Contains(t, buf.String(), `"is_due_soon": true`)

	buf.Reset()
	require.NoError(t, NewFormatter(FormatYAML, &buf).Print(sampleTodo()))
	assert.Contains(t, buf.String(), "title: Pay rent")
	assert.Contains(t, buf.String(), "2026-02-09")
}

func TestFormatter_FZF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatFZF, &buf).PrintFZF([][]string{{"0b7e3a52", "Pay rent"}, {"1c2d3e4f", "Walk"}}))
	assert.Equal(t, "0b7e3a52\tPay rent\n1c2d3e4f\tWalk\n", buf.String())
}

func TestDueTextAndStatusMark(t *testing.T) {
	todo := sampleTodo()
	assert.Equal(t, "Feb 09, 2026 (soon)", DueText(todo))
	assert.Equal(t, "•", StatusMark(todo))

	todo.IsDueSoon = false
	todo.IsOverdue = true
	assert.Equal(t, "Feb 09, 2026 (overdue)", DueText(todo))
	assert.Equal(t, "!", StatusMark(todo))

	todo.IsCompleted = true
	assert.Equal(t, "✓", StatusMark(todo))
}

func TestTodoMarkdown(t *testing.T) {
	md := TodoMarkdown(sampleTodo())
	assert.Contains(t, md, "# Pay rent\n")
	assert.Contains(t, md, "- **Priority:** High\n")
	assert.Contains(t, md, "- **Category:** Home\n")
	assert.Contains(t, md, "\nTransfer before noon\n")
}

func TestPrinter_TableAlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Table([]string{"A", "B"}, [][]string{{"✓", "x"}, {"ab", "y"}})

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "✓   x", string(lines[2]))
	assert.Equal(t, "ab  y", string(lines[3]))
}
