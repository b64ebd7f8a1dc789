package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase(t *testing.T) {
	var b Base
	assert.False(t, b.Sized())
	assert.False(t, b.IsFocused())

	b.SetSize(80, 0)
	assert.False(t, b.Sized(), "zero height is not drawable")

	b.SetSize(80, 24)
	b.SetFocused(true)
	assert.True(t, b.Sized())
	assert.True(t, b.IsFocused())
	assert.Equal(t, 80, b.Width())
	assert.Equal(t, 24, b.Height())
}
