package store

import (
	"context"
	"testing"

	"lumidex/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulbasaur() parser.Record {
	return parser.Record{
		DexNum:    1,
		Species:   "Bulbasaur",
		Type:      parser.Typing{Primary: "Grass", Secondary: "Poison"},
		Stats:     parser.Stats{HP: parser.Fixed(45), Atk: parser.Fixed(49), Def: parser.Fixed(49), SpA: parser.Fixed(65), SpD: parser.Fixed(65), Spe: parser.Fixed(45)},
		Abilities: []string{"Overgrow", "Chlorophyll"},
		Locations: []string{"Route 1"},
		LevelUp:   []parser.LevelMove{{Level: 1, Name: "Tackle"}, {Level: 3, Name: "Growl"}},
		TMs:       []parser.TMMove{{Num: 6, Name: "Toxic"}},
		EggMoves:  []string{"Petal Dance"},
	}
}

func vulpixAlolan() parser.Record {
	return parser.Record{
		DexNum:    37,
		Species:   "Vulpix-A",
		Type:      parser.Typing{Primary: "Ice"},
		Stats:     parser.Stats{HP: parser.Fixed(38), Atk: parser.Fixed(41), Def: parser.Fixed(40), SpA: parser.Fixed(50), SpD: parser.Fixed(65), Spe: parser.Transitioned(65, 70)},
		Abilities: []string{"Snow Cloak"},
		Locations: []string{},
		LevelUp:   []parser.LevelMove{{Level: 1, Name: "Powder Snow"}},
		TMs:       []parser.TMMove{{Num: 6, Name: "Toxic"}},
		EggMoves:  []string{},
	}
}

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMoveRows(t *testing.T) {
	rows := moveRows(bulbasaur())
	require.Len(t, rows, 4)

	assert.Equal(t, moveRow{MoveKey: "tackle", Move: "Tackle", Method: parser.LearnLevel, Level: 1}, rows[0])
	assert.Equal(t, moveRow{MoveKey: "toxic", Move: "Toxic", Method: parser.LearnTM, Level: 6}, rows[2])
	assert.Equal(t, moveRow{MoveKey: "petal dance", Move: "Petal Dance", Method: parser.LearnEgg}, rows[3])
}

func TestNewRecordRow(t *testing.T) {
	row, err := newRecordRow(bulbasaur())
	require.NoError(t, err)

	assert.NotEmpty(t, row.ID)
	assert.Equal(t, "bulbasaur", row.SpeciesKey)

	rec, err := decodeRecord(row.Doc)
	require.NoError(t, err)
	assert.Equal(t, bulbasaur(), rec)
}
