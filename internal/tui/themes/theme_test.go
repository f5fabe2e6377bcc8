package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByName(t *testing.T) {
	for _, name := range Names() {
		theme, ok := ByName(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, theme.Name)
	}

	_, ok := ByName("solarized")
	assert.False(t, ok)
	assert.Equal(t, []string{"default", "light", "mocha"}, Names())
}
