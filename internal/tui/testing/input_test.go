package testing

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []string{"tab", "shift+tab", "enter", "esc", "down", "right", "ctrl+c", "a", "?"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, Key(name).String())
		})
	}
}

func TestType(t *testing.T) {
	msgs := Type("dock")
	assert.Len(t, msgs, 4)
	assert.Equal(t, "d", msgs[0].(tea.KeyMsg).String())
}

func TestContainsInOrder(t *testing.T) {
	out := StripANSI("\x1b[1mTotal Owed\x1b[0m  $1.00\nFees  $0.00")
	assert.True(t, ContainsInOrder(out, "Total Owed", "$1.00", "Fees"))
	assert.False(t, ContainsInOrder(out, "Fees", "Total Owed"))
}

func TestKey_Space(t *testing.T) {
	assert.Equal(t, " ", Key("space").String())
}
