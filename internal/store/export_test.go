package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lumidex/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := newTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, vulpixAlolan()))
	require.NoError(t, s.Insert(ctx, bulbasaur()))
	return s
}

func TestExportJSON(t *testing.T) {
	s := seededStore(t)
	path := filepath.Join(t.TempDir(), "dex.json")

	require.NoError(t, ExportJSON(context.Background(), s, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []parser.Record
	require.NoError(t, json.Unmarshal(raw, &records))
	require.Len(t, records, 2)
	assert.Equal(t, bulbasaur(), records[0])
	assert.Equal(t, vulpixAlolan(), records[1])
}

func TestExportTSV(t *testing.T) {
	s := seededStore(t)
	path := filepath.Join(t.TempDir(), "dex.tsv")

	require.NoError(t, ExportTSV(context.Background(), s, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "dex_num\tspecies\ttype\tabilities\thp\tatk\tdef\tspa\tspd\tspe\tbst", lines[0])
	assert.Equal(t, "001\tBulbasaur\tGrass/Poison\tOvergrow, Chlorophyll\t45\t49\t49\t65\t65\t45\t318", lines[1])
	assert.Equal(t, "037\tVulpix-A\tIce\tSnow Cloak\t38\t41\t40\t50\t65\t70\t304", lines[2])
}

func TestEscapeTSV(t *testing.T) {
	assert.Equal(t, `a\tb\nc`, escapeTSV("a\tb\nc"))
}
