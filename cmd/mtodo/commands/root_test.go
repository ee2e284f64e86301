package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskRefFromInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"fzf row", "5f0c7a8e\tBuy milk\n", "5f0c7a8e"},
		{"table with header", "ID        TITLE\n--------  -----\n5f0c7a8e  ✓  Buy milk\n", "5f0c7a8e"},
		{"full id", "5f0c7a8e-1111-4222-8333-444455556666\n", "5f0c7a8e-1111-4222-8333-444455556666"},
		{"blank lines", "\n  \n6f0c\n", "6f0c"},
		{"no id", "Buy milk\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, taskRefFromInput([]byte(tt.input)))
		})
	}
}
