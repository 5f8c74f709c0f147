package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_TakeUntil(t *testing.T) {
	c := NewCursor("Stats: 45 HP/49 Atk")

	next, out, err := c.TakeUntil("/")
	require.NoError(t, err)
	assert.Equal(t, "Stats: 45 HP", out)
	assert.Equal(t, "/49 Atk", next.Rest())
	assert.Equal(t, 12, next.Pos())

	// The receiver is not modified.
	assert.Equal(t, 0, c.Pos())

	_, _, err = c.TakeUntil("Type")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCursor_Take(t *testing.T) {
	c := NewCursor("-Mew")

	next, out, err := c.Take(1)
	require.NoError(t, err)
	assert.Equal(t, "-", out)
	assert.Equal(t, "Mew", next.Rest())

	_, _, err = next.Take(10)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestCursor_TakeWhile(t *testing.T) {
	c := NewCursor("Egg Moves:\nBelly Drum\n152- Chikorita")

	next, out := c.TakeWhile(isNotDigit)
	assert.Equal(t, "Egg Moves:\nBelly Drum\n", out)
	assert.Equal(t, "152- Chikorita", next.Rest())

	_, out = next.TakeWhile(isNotDigit)
	assert.Empty(t, out)
}

func TestCursor_TakeWhile1(t *testing.T) {
	_, _, err := NewCursor("").TakeWhile1(isDigit)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	_, _, err = NewCursor("abc").TakeWhile1(isDigit)
	assert.ErrorIs(t, err, ErrNotFound)

	next, out, err := NewCursor("029- Nidoran♀").TakeWhile1(isDigit)
	require.NoError(t, err)
	assert.Equal(t, "029", out)
	assert.True(t, next.HasPrefix("-"))
}

func TestCursor_TakeWhileMultibyte(t *testing.T) {
	next, out := NewCursor("Pokémon 12").TakeWhile(isNotDigit)
	assert.Equal(t, "Pokémon ", out)
	assert.Equal(t, "12", next.Rest())
}

func TestCursor_TakeAny(t *testing.T) {
	c := NewCursor("12abc")

	next, out, err := c.TakeAny(While1(isNotDigit), While1(isDigit))
	require.NoError(t, err)
	assert.Equal(t, "12", out)

	_, out, err = next.TakeAny(Until("z"), While1(isNotDigit))
	require.NoError(t, err)
	assert.Equal(t, "abc", out)

	_, _, err = c.TakeAny(Until("z"), Until("y"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = c.TakeAny()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCursor_Blank(t *testing.T) {
	assert.True(t, NewCursor("").Blank())
	assert.True(t, NewCursor(" \n\t").Blank())
	assert.False(t, NewCursor("\n1").Blank())
	assert.True(t, NewCursor("").Empty())
	assert.False(t, NewCursor(" ").Empty())
}
