package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Learnset(t *testing.T) {
	rec := Record{
		LevelUp:  []LevelMove{{Level: 1, Name: "Tackle"}},
		TMs:      []TMMove{{Num: 6, Name: "Toxic"}},
		EggMoves: []string{"Petal Dance"},
	}

	assert.Equal(t, []Learn{
		{Move: "Tackle", Method: LearnLevel, Num: 1},
		{Move: "Toxic", Method: LearnTM, Num: 6},
		{Move: "Petal Dance", Method: LearnEgg},
	}, rec.Learnset())

	assert.Empty(t, Record{}.Learnset())
}

func TestTyping_String(t *testing.T) {
	assert.Equal(t, "Fire/Flying", Typing{Primary: "Fire", Secondary: "Flying"}.String())
	assert.Equal(t, "Psychic", Typing{Primary: "Psychic"}.String())
}
