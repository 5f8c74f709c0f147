package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStat(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		label   string
		want    Stat
		wantErr error
	}{
		{name: "fixed", field: "45 HP", label: "HP", want: Fixed(45)},
		{name: "transition", field: "109>110 SpA", label: "SpA", want: Transitioned(109, 110)},
		{name: "spaces around mark", field: " 80 > 95 Spe", label: "Spe", want: Transitioned(80, 95)},
		{name: "aggregate", field: "534>535 BST\n", label: "BST", want: Transitioned(534, 535)},
		{name: "missing label", field: "45", label: "HP", wantErr: ErrNotFound},
		{name: "not a number", field: "xx HP", label: "HP", wantErr: ErrInvalidNumber},
		{name: "bad after", field: "45>? Atk", label: "Atk", wantErr: ErrInvalidNumber},
		{name: "negative", field: "-5 Def", label: "Def", wantErr: ErrInvalidNumber},
		{name: "overflow", field: "70000 HP", label: "HP", wantErr: ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStat(tt.field, tt.label)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStat_Current(t *testing.T) {
	assert.Equal(t, uint16(45), Fixed(45).Current())
	assert.Equal(t, uint16(110), Transitioned(109, 110).Current())
}

func TestStats_Totals(t *testing.T) {
	s := Stats{
		HP: Fixed(78), Atk: Fixed(84), Def: Fixed(78),
		SpA: Transitioned(109, 110), SpD: Fixed(85), Spe: Fixed(100),
	}

	assert.True(t, s.Transitioned())
	assert.Equal(t, 534, Total(s.Base()))
	assert.Equal(t, 535, Total(s.Current()))
	assert.False(t, Stats{}.Transitioned())
}
