package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldKey(t *testing.T) {
	assert.Equal(t, FoldKey("Bulbasaur"), FoldKey("  bULBASAUR "))
	assert.Equal(t, FoldKey("Nidoran♀"), FoldKey("NIDORAN♀"))
	assert.NotEqual(t, FoldKey("Nidoran♀"), FoldKey("Nidoran♂"))
}

func TestHash(t *testing.T) {
	assert.Len(t, Hash("Mew"), 64)
	assert.Equal(t, Hash("Mew"), Hash("Mew"))
	assert.NotEqual(t, Hash("Mew"), Hash("mew"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Pika", Truncate("Pika", 10))
	assert.Equal(t, "Poké...", Truncate("Pokémon", 4))
}
