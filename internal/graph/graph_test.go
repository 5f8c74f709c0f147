package graph

import (
	"testing"

	"lumidex/internal/parser"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func charizard() parser.Record {
	return parser.Record{
		DexNum:    6,
		Species:   "Charizard",
		Type:      parser.Typing{Primary: "Fire", Secondary: "Flying"},
		NewType:   &parser.Typing{Primary: "Fire", Secondary: "Dragon"},
		Stats:     parser.Stats{HP: parser.Fixed(78), Atk: parser.Fixed(84), Def: parser.Fixed(78), SpA: parser.Transitioned(109, 119), SpD: parser.Fixed(85), Spe: parser.Fixed(100)},
		Abilities: []string{"Blaze", "Solar Power"},
		Locations: []string{"Evolve Charmeleon"},
		LevelUp:   []parser.LevelMove{{Level: 1, Name: "Dragon Claw"}},
		TMs:       []parser.TMMove{{Num: 2, Name: "Dragon Claw"}},
		EggMoves:  []string{},
	}
}

func TestRecordParams(t *testing.T) {
	params := recordParams(charizard())

	assert.Equal(t, "charizard", params["key"])
	assert.Equal(t, "Charizard", params["name"])
	assert.Equal(t, int64(6), params["dex_num"])
	assert.Equal(t, int64(544), params["bst"])
	assert.Equal(t, []any{"Fire", "Dragon"}, params["types"])
	assert.Equal(t, []any{"Evolve Charmeleon"}, params["locations"])

	abilities := params["abilities"].([]any)
	require.Len(t, abilities, 2)
	assert.Equal(t, map[string]any{"key": "solar power", "name": "Solar Power"}, abilities[1])

	moves := params["moves"].([]any)
	require.Len(t, moves, 2)
	assert.Equal(t, map[string]any{"key": "dragon claw", "name": "Dragon Claw", "method": parser.LearnLevel, "level": int64(1)}, moves[0])
	assert.Equal(t, map[string]any{"key": "dragon claw", "name": "Dragon Claw", "method": parser.LearnTM, "level": int64(2)}, moves[1])
}

func TestRecordParams_MonoType(t *testing.T) {
	rec := charizard()
	rec.NewType = nil
	rec.Type = parser.Typing{Primary: "Fire"}

	params := recordParams(rec)
	assert.Equal(t, []any{"Fire"}, params["types"])
}

func TestLearnerFrom(t *testing.T) {
	record := &neo4j.Record{
		Keys:   []string{"species", "dex_num", "method", "level"},
		Values: []any{"Charizard", int64(6), "tm", int64(2)},
	}

	assert.Equal(t, Learner{Species: "Charizard", DexNum: 6, Method: "tm", Level: 2}, learnerFrom(record))
}
