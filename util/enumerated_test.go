package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumSetStartsAtOne(t *testing.T) {
	e := NewEnumSet(4)
	id, added := e.Add("a")
	require.True(t, added)
	assert.Equal(t, 1, id)
	id, added = e.Add("a")
	assert.False(t, added)
	assert.Equal(t, 1, id)
	id, _ = e.Add("b")
	assert.Equal(t, 2, id)

	value, exists := e.ValueOf(2)
	require.True(t, exists)
	assert.Equal(t, "b", value)
	_, exists = e.ValueOf(0)
	assert.False(t, exists)
	_, exists = e.ValueOf(3)
	assert.False(t, exists)

	assert.Equal(t, -1, e.Lookup("c", false))
	assert.Equal(t, 3, e.Lookup("c", true))
	assert.Equal(t, 4, e.Next())
}

func TestEnumSetAfter(t *testing.T) {
	base := NewEnumSetOf(1, []string{"x", "y"})
	tmp := NewEnumSetAfter(base, 0)
	id, _ := tmp.Add("z")
	assert.Equal(t, 3, id)
	_, exists := tmp.IndexOf("x")
	assert.False(t, exists)
}

func TestEnumSetFrozen(t *testing.T) {
	e := NewEnumSetOf(5, []string{"a"})
	e.Frozen = true
	assert.Panics(t, func() { e.Add("b") })
	id, exists := e.IndexOf("a")
	assert.True(t, exists)
	assert.Equal(t, 5, id)
	assert.Equal(t, []string{"a"}, e.Values())
}
