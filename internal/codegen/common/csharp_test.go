package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentifier(t *testing.T) {
	valid := []string{"Strings", "_x", "Grüße", "x1", "résumé", "Ω"}
	invalid := []string{"", "1x", "a-b", "a b", "@x", "a.b"}

	for _, s := range valid {
		assert.True(t, IsIdentifier(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsIdentifier(s), s)
	}
}

func TestEscapeKeyword(t *testing.T) {
	assert.Equal(t, "@class", EscapeKeyword("class"))
	assert.Equal(t, "@string", EscapeKeyword("string"))
	assert.Equal(t, "value", EscapeKeyword("value"))
	assert.Equal(t, "record", EscapeKeyword("record"))
	assert.Equal(t, "Strings", EscapeKeyword("Strings"))
}
