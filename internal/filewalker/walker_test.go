package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"lumidex/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalker_Walk(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"Lumi Pokédex 152-251 Johto Pokémon.txt",
		"Lumi Pokédex 001-151 Kanto Pokémon.txt",
		"notes.md",
		filepath.Join("addons", "Forms.TXT"),
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(""), 0644))
	}

	entries, err := NewWalker(parser.Options{}).Walk(root)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Lumi Pokédex 001-151 Kanto Pokémon.txt", filepath.Base(entries[0].Path))
	assert.Equal(t, "Lumi Pokédex 152-251 Johto Pokémon.txt", filepath.Base(entries[1].Path))
	assert.Equal(t, "Forms.TXT", filepath.Base(entries[2].Path))
	assert.Equal(t, ".txt", entries[2].Ext)
}

func TestWalker_WalkNotDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanto.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := NewWalker(parser.Options{}).Walk(path)
	assert.Error(t, err)
}

func TestWalker_Entry(t *testing.T) {
	w := NewWalker(parser.Options{})

	entry, err := w.Entry("kanto.txt")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(entry.Path))

	_, err = w.Entry("kanto.json")
	assert.Error(t, err)
}
