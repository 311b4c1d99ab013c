package lineedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_RecallClampsAtOldest(t *testing.T) {
	h := NewHistory()
	h.Add("a")
	h.Add("b")
	h.Add("c")
	require.Equal(t, 3, h.Cursor())

	var got []string
	for i := 0; i < 3; i++ {
		line, ok := h.Back()
		require.True(t, ok)
		got = append(got, line)
	}
	assert.Equal(t, []string{"c", "b", "a"}, got)

	line, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, "a", line)
	assert.Equal(t, 0, h.Cursor())

	assert.Equal(t, "b", h.Forward())
}

func TestHistory_ForwardPastEndClears(t *testing.T) {
	h := NewHistory()
	h.Add("a")
	h.Add("b")

	h.Back()
	assert.Equal(t, "", h.Forward())
	assert.Equal(t, 2, h.Cursor())
	assert.Equal(t, "", h.Forward())
	assert.Equal(t, 2, h.Cursor())
}

func TestHistory_EmptyLinesSkipped(t *testing.T) {
	h := NewHistory()
	h.Add("")
	h.Add("ls")
	h.Add("")

	assert.Equal(t, []string{"ls"}, h.Entries())
	assert.Equal(t, 1, h.Cursor())
}

func TestHistory_AddResetsCursor(t *testing.T) {
	h := NewHistory()
	h.Add("a")
	h.Add("b")
	h.Back()
	h.Back()
	h.Add("c")

	assert.Equal(t, 3, h.Cursor())
	line, _ := h.Back()
	assert.Equal(t, "c", line)
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory()

	_, ok := h.Back()
	assert.False(t, ok)
	assert.Equal(t, "", h.Forward())
	assert.Equal(t, 0, h.Cursor())
	assert.Equal(t, 0, h.Len())
}

func TestLine_Editing(t *testing.T) {
	var l Line
	l.InsertString("lss")
	l.Left()
	l.Backspace()
	assert.Equal(t, "ls", l.String())
	assert.Equal(t, 1, l.Pos())

	l.Insert('x')
	assert.Equal(t, "lxs", l.String())

	l.Right()
	l.Right()
	assert.Equal(t, 3, l.Pos())

	l.Set("pwd")
	assert.Equal(t, 3, l.Pos())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "pwd", l.Take())
	assert.Equal(t, "", l.String())
	assert.Equal(t, 0, l.Pos())

	l.Backspace()
	assert.Equal(t, "", l.String())
}
